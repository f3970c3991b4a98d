package models

// Todo represents a row in the PostgreSQL todos table. Every todo belongs
// to exactly one user and is only ever visible to that user.
type Todo struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	OwnerID   int64  `json:"owner_id"`
}

// CreateTodoRequest is the JSON body for POST /todos. The field is named
// "task" to stay compatible with the original front-end.
type CreateTodoRequest struct {
	Task string `json:"task"`
}

// CreateTodoResponse echoes the created todo back to the client.
type CreateTodoResponse struct {
	ID   int64  `json:"id"`
	Task string `json:"task"`
}
