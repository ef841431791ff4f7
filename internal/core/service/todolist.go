package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/flexnotes/flexnotes-go/internal/core/domain"
)

// TodoListRepository defines the storage interface for todo lists and
// their embedded todos. Embedded todos are addressed by their stable
// id, never by array index.
type TodoListRepository interface {
	// Create persists a new todo list.
	Create(ctx context.Context, list *domain.TodoList) error

	// Get retrieves a list by id under the owner filter.
	Get(ctx context.Context, listID, ownerID string) (*domain.TodoList, error)

	// GetAllByOwner returns all the owner's lists. An owner with no
	// lists gets domain.ErrTodoListNotFound, not an empty result.
	GetAllByOwner(ctx context.Context, ownerID string) ([]*domain.TodoList, error)

	// GetMany looks up each id independently under the owner filter.
	// Ids that don't resolve are silently omitted.
	GetMany(ctx context.Context, ids []string, ownerID string) ([]*domain.TodoList, error)

	// Rename updates the list title.
	Rename(ctx context.Context, listID, ownerID, title string) error

	// Delete removes the list matched by id and owner.
	Delete(ctx context.Context, listID, ownerID string) error

	// CreateTodo appends a todo to the list's embedded sequence.
	CreateTodo(ctx context.Context, listID, ownerID string, todo domain.Todo) error

	// ModifyTodo replaces title, status and priority of the embedded
	// todo matched by id, in place. No reordering.
	ModifyTodo(ctx context.Context, listID, ownerID, todoID, title string, status bool, priority domain.Priority) error

	// DeleteTodo removes the embedded todo matched by id.
	DeleteTodo(ctx context.Context, listID, ownerID, todoID string) error
}

// TodoListService provides owner-scoped todo list operations.
type TodoListService struct {
	lists  TodoListRepository
	logger *slog.Logger
}

// NewTodoListService creates a TodoListService.
func NewTodoListService(lists TodoListRepository, logger *slog.Logger) *TodoListService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TodoListService{
		lists:  lists,
		logger: logger,
	}
}

// Create persists a new todo list with no todos and returns it.
func (s *TodoListService) Create(ctx context.Context, ownerID, title string) (*domain.TodoList, error) {
	list := domain.NewTodoList(ownerID, title)
	if err := list.Validate(); err != nil {
		return nil, err
	}
	if err := s.lists.Create(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// Get retrieves one of the owner's lists.
func (s *TodoListService) Get(ctx context.Context, listID, ownerID string) (*domain.TodoList, error) {
	return s.lists.Get(ctx, listID, ownerID)
}

// GetAll returns all the owner's lists; an owner with no lists gets
// domain.ErrTodoListNotFound.
func (s *TodoListService) GetAll(ctx context.Context, ownerID string) ([]*domain.TodoList, error) {
	return s.lists.GetAllByOwner(ctx, ownerID)
}

// Rename verifies the list exists under the owner, then updates the
// title.
func (s *TodoListService) Rename(ctx context.Context, listID, ownerID, title string) error {
	if strings.TrimSpace(title) == "" {
		return domain.ErrInvalidArgument.WithDetails("todo list title is required")
	}
	return s.lists.Rename(ctx, listID, ownerID, title)
}

// Delete removes one of the owner's lists.
func (s *TodoListService) Delete(ctx context.Context, listID, ownerID string) error {
	return s.lists.Delete(ctx, listID, ownerID)
}

// CreateTodo appends a new todo with a fresh id to the list.
func (s *TodoListService) CreateTodo(ctx context.Context, listID, ownerID, title string, status bool, priority domain.Priority) (*domain.Todo, error) {
	if strings.TrimSpace(title) == "" {
		return nil, domain.ErrInvalidArgument.WithDetails("todo title is required")
	}
	todo := domain.NewTodo(title, status, priority)
	if err := s.lists.CreateTodo(ctx, listID, ownerID, todo); err != nil {
		return nil, err
	}
	return &todo, nil
}

// ModifyTodo replaces title, status and priority of an embedded todo,
// located by its id within the list matched by list id and owner.
func (s *TodoListService) ModifyTodo(ctx context.Context, listID, ownerID, todoID, title string, status bool, priority domain.Priority) error {
	if strings.TrimSpace(title) == "" {
		return domain.ErrInvalidArgument.WithDetails("todo title is required")
	}
	return s.lists.ModifyTodo(ctx, listID, ownerID, todoID, title, status, priority)
}

// DeleteTodo removes an embedded todo by id.
func (s *TodoListService) DeleteTodo(ctx context.Context, listID, ownerID, todoID string) error {
	return s.lists.DeleteTodo(ctx, listID, ownerID, todoID)
}
