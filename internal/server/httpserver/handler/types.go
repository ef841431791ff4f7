package handler

// ErrorResponse is the envelope used for all error bodies.
type ErrorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// RegisterRequest is the body for POST /auth/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body for POST /auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RefreshRequest is the body for POST /auth/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// AuthResponse is the body for successful register and login calls.
type AuthResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Username     string `json:"username"`
}

// TokenPairResponse is the body for POST /auth/refresh.
type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// NoteRequest is the body for POST /notes and PUT /notes/{id}.
type NoteRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// TodoListRequest is the body for POST /todolists and
// PATCH /todolists/{id}.
type TodoListRequest struct {
	Title string `json:"title"`
}

// TodoRequest is the body for POST /todolists/{id}/todos and
// PUT /todolists/{id}/todos/{todo_id}.
type TodoRequest struct {
	Title    string `json:"title"`
	Status   bool   `json:"status"`
	Priority string `json:"priority"`
}
