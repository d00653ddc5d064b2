package db_models

// User is one registered end user, one row per identity-provider identity.
// ClerkUserID is the external id; bulk-imported users get a synthetic one
// until their first real sign-in.
type User struct {
	BaseModel
	ClerkUserID     string `gorm:"uniqueIndex;size:191" json:"clerk_user_id"`
	Email           string `gorm:"index" json:"email"`
	Credits         int    `json:"credits"`
	IsActive        bool   `json:"is_active"`
	IsAuthenticated bool   `json:"is_authenticated"`
	IsAdmin         bool   `json:"is_admin"`
}

func (User) TableName() string { return "users" }
