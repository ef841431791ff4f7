package domain

import "strings"

// Priority is the fixed three-value priority of a todo. The store
// attaches no ordering semantics to it.
type Priority string

// Todo priorities.
const (
	PriorityHigh   Priority = "high"
	PriorityNormal Priority = "normal"
	PriorityLow    Priority = "low"
)

// ParsePriority validates a priority string. The empty string defaults
// to PriorityNormal.
func ParsePriority(s string) (Priority, error) {
	switch Priority(strings.ToLower(s)) {
	case PriorityHigh:
		return PriorityHigh, nil
	case PriorityNormal, "":
		return PriorityNormal, nil
	case PriorityLow:
		return PriorityLow, nil
	}
	return "", ErrInvalidArgument.WithDetails("priority must be one of high, normal, low")
}

// Todo is embedded in exactly one TodoList. Its ID is unique within
// that list and is used to locate it during modify and delete.
type Todo struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Status   bool     `json:"status"`
	Priority Priority `json:"priority"`
}

// NewTodo creates a Todo with a fresh ID.
func NewTodo(title string, status bool, priority Priority) Todo {
	return Todo{
		ID:       NewID(),
		Title:    title,
		Status:   status,
		Priority: priority,
	}
}

// TodoList is an owner-scoped document holding an ordered sequence of
// embedded todos.
type TodoList struct {
	ID      string `json:"id"`
	OwnerID string `json:"owner_id"`
	Title   string `json:"title"`
	Todos   []Todo `json:"todos"`
}

// NewTodoList creates a TodoList with a fresh ID and no todos.
func NewTodoList(ownerID, title string) *TodoList {
	return &TodoList{
		ID:      NewID(),
		OwnerID: ownerID,
		Title:   title,
		Todos:   []Todo{},
	}
}

// Validate checks structural invariants.
func (l *TodoList) Validate() error {
	if l.ID == "" {
		return ErrInvalidArgument.WithDetails("todo list id is required")
	}
	if l.OwnerID == "" {
		return ErrInvalidArgument.WithDetails("todo list owner id is required")
	}
	if strings.TrimSpace(l.Title) == "" {
		return ErrInvalidArgument.WithDetails("todo list title is required")
	}
	return nil
}

// FindTodo returns the index of the embedded todo with the given id,
// or -1 if no todo matches.
func (l *TodoList) FindTodo(todoID string) int {
	for i := range l.Todos {
		if l.Todos[i].ID == todoID {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy.
func (l *TodoList) Clone() *TodoList {
	clone := *l
	clone.Todos = append([]Todo(nil), l.Todos...)
	return &clone
}
