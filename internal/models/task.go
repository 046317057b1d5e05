package models

// Task represents a single to-do item owned by a user.
type Task struct {
	ID          int64   `db:"id" json:"id"`
	Title       string  `db:"title" json:"title"`
	Description *string `db:"description" json:"description"`
	Priority    int     `db:"priority" json:"priority"`
	Complete    bool    `db:"complete" json:"complete"`
	UserID      int64   `db:"user_id" json:"-"` // Internal use
}

// CreateTaskPayload defines the structure for task creation requests.
// Priority is a pointer so that an explicit 0 passes the required check.
type CreateTaskPayload struct {
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description"`
	Priority    *int    `json:"priority" validate:"required"`
}
