package entity

import "time"

// Todo is a task record owned by exactly one user. Every read and write is
// scoped by UserID; nothing outside the owner's session can observe it,
// except the expiry sweep which flips Completed on overdue records.
type Todo struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Completed   bool       `json:"completed"`
	UserID      string     `json:"user"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Overdue reports whether the todo's due date has passed while it is still
// incomplete.
func (t *Todo) Overdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && !t.Completed
}
