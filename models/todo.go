package models

// Todo is a single task owned by one user. CompletedAt is set (epoch
// milliseconds) exactly while Completed is true, otherwise it stays null.
type Todo struct {
	ID          string `json:"_id"`
	Text        string `json:"text"`
	Completed   bool   `json:"completed"`
	CompletedAt *int64 `json:"completedAt"`
	Creator     string `json:"_creator"`
}

// TodoUpdate is the PATCH body for a todo. Nil fields are left untouched.
type TodoUpdate struct {
	Text      *string `json:"text"`
	Completed *bool   `json:"completed"`
}
