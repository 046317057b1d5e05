package models

// User represents a user account in the system.
type User struct {
	ID             int64  `db:"id" json:"id"`
	Email          string `db:"email" json:"email"`
	Username       string `db:"username" json:"username"`
	FirstName      string `db:"first_name" json:"first_name"`
	LastName       string `db:"last_name" json:"last_name"`
	HashedPassword string `db:"hashed_password" json:"-"` // Never expose this to the client
	PhoneNumber    int64  `db:"phone_number" json:"phone_number"`
	IsActive       bool   `db:"is_active" json:"is_active"`
}

// PublicUser is the client-facing view of a user account.
type PublicUser struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	IsActive bool   `json:"is_active"`
}

// Public returns the view of the user that is safe to serialize.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Email:    u.Email,
		Username: u.Username,
		IsActive: u.IsActive,
	}
}

// RegisterPayload defines the structure for registration requests.
type RegisterPayload struct {
	Email       string `json:"email" validate:"required,email"`
	Username    string `json:"username" validate:"required"`
	FirstName   string `json:"first_name" validate:"required"`
	LastName    string `json:"last_name" validate:"required"`
	Password    string `json:"password" validate:"required"`
	PhoneNumber int64  `json:"phone_number" validate:"required"`
}

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
