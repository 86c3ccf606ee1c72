package schema

// UsersTable represents the 'users' table
type UsersTable struct {
	Table        string
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Roles        string
	Active       string
	CreatedAt    string
	UpdatedAt    string

	// Constraint names surfaced as conflicts
	UsernameKey string
	EmailKey    string
}

// Users is the schema definition for users
var Users = UsersTable{
	Table:        "users",
	ID:           "id",
	Username:     "username",
	Email:        "email",
	PasswordHash: "password_hash",
	Roles:        "roles",
	Active:       "active",
	CreatedAt:    "created_at",
	UpdatedAt:    "updated_at",
	UsernameKey:  "users_username_key",
	EmailKey:     "users_email_key",
}
