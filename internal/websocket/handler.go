package websocket

import (
	"log"
	"net/http"

	"logmed-backend/internal/middleware"
	"logmed-backend/pkg/utils"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleWebSocket authenticates the ?token= query parameter against the
// session store and upgrades the connection.
func HandleWebSocket(hub *Hub, secret string, sessions middleware.SessionValidator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenString := r.URL.Query().Get("token")
		if tokenString == "" {
			utils.RespondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		claims, err := middleware.Authenticate(secret, sessions, tokenString)
		if err != nil {
			log.Printf("❌ WebSocket auth failed: %v", err)
			utils.RespondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("❌ WebSocket upgrade failed: %v", err)
			return
		}

		client := NewClient(claims.ProfileID, claims.Role, conn, hub)
		hub.register <- client

		go client.WritePump()
		go client.ReadPump()
	}
}
