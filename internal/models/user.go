package models

const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
)

// Profile is a back-office account
type Profile struct {
	ID        string  `json:"id" db:"id"`
	Email     string  `json:"email" db:"email"`
	Password  string  `json:"-" db:"password"` // Never return password in JSON
	Name      string  `json:"name" db:"name"`
	Role      string  `json:"role" db:"role"` // "operator" or "admin"
	AvatarURL *string `json:"avatar_url" db:"avatar_url"`
	CreatedAt int64   `json:"created_at" db:"created_at"`
	UpdatedAt int64   `json:"updated_at" db:"updated_at"`
}

type ProfileResponse struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Name      string  `json:"name"`
	Role      string  `json:"role"`
	AvatarURL *string `json:"avatar_url"`
	CreatedAt int64   `json:"created_at"`
}

func (p *Profile) ToProfileResponse() ProfileResponse {
	return ProfileResponse{
		ID:        p.ID,
		Email:     p.Email,
		Name:      p.Name,
		Role:      p.Role,
		AvatarURL: p.AvatarURL,
		CreatedAt: p.CreatedAt,
	}
}

// Session is a signed-in period of a profile. Tokens carry the session id and
// stop working once the session is revoked or expired.
type Session struct {
	ID        string `json:"id" db:"id"`
	ProfileID string `json:"profile_id" db:"profile_id"`
	CreatedAt int64  `json:"created_at" db:"created_at"`
	ExpiresAt int64  `json:"expires_at" db:"expires_at"`
	RevokedAt *int64 `json:"revoked_at,omitempty" db:"revoked_at"`
}

// Active reports whether the session can still authenticate requests at now.
func (s *Session) Active(now int64) bool {
	return s.RevokedAt == nil && now < s.ExpiresAt
}

// FCMToken represents a Firebase Cloud Messaging token for a profile
type FCMToken struct {
	ID         int    `json:"id" db:"id"`
	ProfileID  string `json:"profile_id" db:"profile_id"`
	Token      string `json:"token" db:"token"`
	DeviceType string `json:"device_type" db:"device_type"` // "web", "ios" or "android"
	CreatedAt  int64  `json:"created_at" db:"created_at"`
	UpdatedAt  int64  `json:"updated_at" db:"updated_at"`
}

type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type UpdateProfileRequest struct {
	Name      *string `json:"name,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	Password  *string `json:"password,omitempty"`
}

type UpdateRoleRequest struct {
	Role string `json:"role"`
}
