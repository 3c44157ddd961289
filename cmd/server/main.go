package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"logmed-backend/internal/config"
	"logmed-backend/internal/database"
	"logmed-backend/internal/handlers"
	"logmed-backend/internal/jobs"
	"logmed-backend/internal/matching"
	"logmed-backend/internal/middleware"
	"logmed-backend/internal/models"
	"logmed-backend/internal/reports"
	"logmed-backend/internal/services"
	"logmed-backend/internal/websocket"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func main() {
	log.Println("═══════════════════════════════════════════════════════════════════")
	log.Println("🚀 LOGMED BACKEND SERVER STARTING")
	log.Println("═══════════════════════════════════════════════════════════════════")

	log.Println("📂 Loading configuration...")
	cfg, err := config.Load()
	if err != nil {
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Println("❌ FATAL ERROR: Invalid configuration")
		log.Printf("   Error: %v", err)
		log.Println("   Please set the variables in the environment or .env file")
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Fatal(err)
	}
	if cfg.JWTSecret == "" {
		log.Fatal("❌ FATAL ERROR: APP_JWT_SECRET environment variable is required")
	}
	log.Println("✅ Configuration loaded")

	log.Println("🔌 Connecting to database...")
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Println("❌ FATAL ERROR: Database connection failed")
		log.Printf("   Error: %v", err)
		log.Println("   This is usually caused by:")
		log.Println("   1. Wrong DATABASE_URL format")
		log.Println("   2. PostgreSQL service is down")
		log.Println("   3. Invalid credentials")
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Fatal(err)
	}
	defer db.Close()
	log.Println("✅ Database connection established")

	log.Println("🔄 Running database migrations...")
	if err := database.Migrate(db); err != nil {
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Println("❌ FATAL ERROR: Database migrations failed")
		log.Printf("   Error: %v", err)
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Fatal(err)
	}
	log.Println("✅ Database migrations completed")

	log.Println("🌱 Seeding admin profile...")
	if err := database.SeedAdmin(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Printf("❌ FATAL ERROR: Admin seeding failed: %v", err)
		log.Fatal(err)
	}

	// Push notifications are optional; tasks are still created without them
	var notifier services.Notifier
	var fcmService *services.FCMService
	if cfg.FirebaseCredentialsBase64 != "" {
		fcmService, err = services.NewFCMServiceFromBase64(cfg.FirebaseCredentialsBase64)
	} else {
		fcmService, err = services.NewFCMService(cfg.FirebaseCredentialsFile)
	}
	if err != nil {
		log.Printf("⚠️  Failed to initialize FCM: %v (push notifications disabled)", err)
	} else {
		notifier = fcmService
		log.Println("✅ Firebase Cloud Messaging initialized")
	}

	var advisor services.Advisor = services.DisabledAdvisor{}
	if cfg.GeminiAPIKey != "" {
		gemini, err := services.NewGeminiAdvisor(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Printf("⚠️  Failed to initialize Gemini advisor: %v (AI summary disabled)", err)
		} else {
			advisor = gemini
			log.Printf("✅ Gemini advisor initialized (%s)", cfg.GeminiModel)
		}
	}

	wsHub := websocket.NewHub()
	go wsHub.Run()
	log.Println("✅ WebSocket hub started")

	drafts := reports.NewStore(matching.NewNameMatcher())

	scheduler, err := jobs.Start(jobs.Config{
		DraftPurgeSchedule:     cfg.DraftPurgeSchedule,
		DraftMaxIdle:           cfg.DraftMaxIdle,
		SessionCleanupSchedule: cfg.SessionCleanupSchedule,
		Location:               cfg.Location,
	}, drafts, func(now time.Time) (int64, error) {
		return database.DeleteStaleSessions(db, now)
	})
	if err != nil {
		log.Fatalf("❌ FATAL ERROR: Scheduler failed to start: %v", err)
	}

	sessions := middleware.SessionLookup{
		Session: func(id string) (*models.Session, error) { return database.GetSession(db, id) },
		Profile: func(id string) (*models.Profile, error) { return database.GetProfile(db, id) },
	}
	catalog := handlers.DBCatalog{DB: db}
	imports := &handlers.ImportHandler{
		Drafts:  drafts,
		Catalog: catalog,
		Cities:  matching.NewCityMatcher(),
		Events:  wsHub,
	}
	dash := &handlers.DashboardHandler{Source: catalog, Advisor: advisor}

	r := chi.NewRouter()

	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// WebSocket endpoint (authentication handled in handler via query param)
	r.Get("/ws", websocket.HandleWebSocket(wsHub, cfg.JWTSecret, sessions))

	r.Route("/api", func(r chi.Router) {
		// Authentication routes (no auth required)
		r.Post("/auth/signup", handlers.SignUp(db, cfg.JWTSecret, cfg.SessionTTL))
		r.Post("/auth/login", handlers.Login(db, cfg.JWTSecret, cfg.SessionTTL))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWTSecret, sessions))

			r.Post("/auth/logout", handlers.Logout(db))
			r.Get("/auth/session", handlers.GetSession(db))
			r.Patch("/profile", handlers.UpdateMe(db))
			r.Post("/profile/fcm-token", handlers.RegisterFCMToken(db))

			// Drivers
			r.Get("/drivers", handlers.GetDrivers(db))
			r.Get("/drivers/{id}", handlers.GetDriver(db))
			r.Post("/drivers", handlers.CreateDriver(db, wsHub))
			r.Patch("/drivers/{id}", handlers.UpdateDriver(db, wsHub))
			r.Delete("/drivers/{id}", handlers.DeleteDriver(db, wsHub))

			// Routes
			r.Get("/routes", handlers.GetRoutes(db))
			r.Get("/routes/{id}", handlers.GetRoute(db))
			r.Post("/routes", handlers.CreateRoute(db, wsHub))
			r.Patch("/routes/{id}", handlers.UpdateRoute(db, wsHub))
			r.Delete("/routes/{id}", handlers.DeleteRoute(db, wsHub))

			// City surcharges
			r.Get("/cities", handlers.GetCities(db))
			r.Post("/cities", handlers.CreateCity(db, wsHub))
			r.Patch("/cities/{id}", handlers.UpdateCity(db, wsHub))
			r.Delete("/cities/{id}", handlers.DeleteCity(db, wsHub))

			// Fleet
			r.Get("/fleet", handlers.GetVehicles(db))
			r.Post("/fleet", handlers.CreateVehicle(db))
			r.Get("/fleet/{id}", handlers.GetVehicle(db))
			r.Patch("/fleet/{id}", handlers.UpdateVehicle(db))
			r.Delete("/fleet/{id}", handlers.DeleteVehicle(db))

			// Freights (register exact paths before {id})
			r.Get("/freights", handlers.GetFreights(db))
			r.Post("/freights", handlers.CreateFreight(db, drafts, wsHub))
			r.Post("/freights/quote", handlers.QuoteFreight(db))
			r.Get("/freights/export/pdf", handlers.ExportFreightsPDF(db))
			r.Get("/freights/export/xlsx", handlers.ExportFreightsXLSX(db))
			r.Get("/freights/{id}", handlers.GetFreight(db))
			r.Patch("/freights/{id}", handlers.UpdateFreight(db, wsHub))
			r.Patch("/freights/{id}/status", handlers.UpdateFreightStatus(db, wsHub))
			r.Delete("/freights/{id}", handlers.DeleteFreight(db, wsHub))

			// Report imports (drafts are per profile)
			r.Get("/imports", imports.List)
			r.Post("/imports", imports.Upload)
			r.Delete("/imports", imports.Clear)
			r.Get("/imports/{id}/prefill", imports.Prefill)
			r.Delete("/imports/{id}", imports.Remove)

			// Closures
			r.Get("/closures", handlers.GetClosures(db))
			r.Post("/closures", handlers.CreateClosure(db, wsHub))
			r.Post("/closures/preview", handlers.PreviewClosure(db))
			r.Get("/closures/{id}", handlers.GetClosure(db))
			r.Get("/closures/{id}/pdf", handlers.ClosurePaymentSlip(db))
			r.Patch("/closures/{id}/status", handlers.UpdateClosureStatus(db, wsHub))
			r.Delete("/closures/{id}", handlers.DeleteClosure(db, wsHub))

			// Financial
			r.Get("/financial", handlers.GetTransactions(db))
			r.Get("/financial/summary", handlers.GetFinancialSummary(db))
			r.Post("/financial", handlers.CreateTransaction(db, wsHub))
			r.Patch("/financial/{id}/status", handlers.UpdateTransactionStatus(db, wsHub))
			r.Delete("/financial/{id}", handlers.DeleteTransaction(db, wsHub))

			// Tasks
			r.Get("/tasks", handlers.GetTasks(db))
			r.Post("/tasks", handlers.CreateTask(db, notifier, wsHub))
			r.Patch("/tasks/{id}", handlers.UpdateTask(db, notifier, wsHub))
			r.Patch("/tasks/{id}/status", handlers.UpdateTaskStatus(db))
			r.Delete("/tasks/{id}", handlers.DeleteTask(db))

			// Calendar
			r.Get("/calendar", handlers.GetCalendarEvents(db))
			r.Post("/calendar", handlers.CreateCalendarEvent(db, wsHub))
			r.Patch("/calendar/{id}", handlers.UpdateCalendarEvent(db, wsHub))
			r.Delete("/calendar/{id}", handlers.DeleteCalendarEvent(db, wsHub))

			// Dashboard
			r.Get("/dashboard", dash.Metrics)
			r.Post("/dashboard/ai-summary", dash.AISummary)

			// Profile management (admin only)
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(models.RoleAdmin))

				r.Get("/profiles", handlers.ListProfiles(db))
				r.Patch("/profiles/{id}/role", handlers.UpdateProfileRole(db))
			})
		})
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Println("═══════════════════════════════════════════════════════════════════")
		log.Println("✅ ALL INITIALIZATION COMPLETE")
		log.Printf("🚀 Server starting on http://localhost:%s", cfg.Port)
		log.Println("🔌 Ready to accept requests!")
		log.Println("═══════════════════════════════════════════════════════════════════")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
			log.Println("❌ FATAL ERROR: Server failed to start")
			log.Printf("   Error: %v", err)
			log.Printf("   Port: %s", cfg.Port)
			log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
			log.Fatal(err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("🛑 Shutting down...")
	<-scheduler.Stop().Done()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("❌ Graceful shutdown failed: %v", err)
	}
	log.Println("👋 Server stopped")
}
