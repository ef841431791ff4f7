package memory

import (
	"context"
	"sync"

	"github.com/flexnotes/flexnotes-go/internal/core/domain"
	"github.com/flexnotes/flexnotes-go/pkg/cmap"
)

// TodoListStore provides in-memory todo list storage. Mutations
// replace the stored value with a modified clone.
type TodoListStore struct {
	lists *cmap.Map[string, *domain.TodoList] // listID -> list

	mu sync.Mutex // guards check-then-delete
}

// NewTodoListStore creates an empty TodoListStore.
func NewTodoListStore() *TodoListStore {
	return &TodoListStore{lists: cmap.New[string, *domain.TodoList]()}
}

// Create persists a new todo list.
func (s *TodoListStore) Create(_ context.Context, list *domain.TodoList) error {
	s.lists.Set(list.ID, list.Clone())
	return nil
}

// Get retrieves a list by id under the owner filter.
func (s *TodoListStore) Get(_ context.Context, listID, ownerID string) (*domain.TodoList, error) {
	list, ok := s.lists.Get(listID)
	if !ok || list.OwnerID != ownerID {
		return nil, domain.ErrTodoListNotFound
	}
	return list.Clone(), nil
}

// GetAllByOwner returns all the owner's lists. An owner with no lists
// gets domain.ErrTodoListNotFound.
func (s *TodoListStore) GetAllByOwner(_ context.Context, ownerID string) ([]*domain.TodoList, error) {
	var out []*domain.TodoList
	s.lists.Range(func(_ string, list *domain.TodoList) bool {
		if list.OwnerID == ownerID {
			out = append(out, list.Clone())
		}
		return true
	})
	if len(out) == 0 {
		return nil, domain.ErrTodoListNotFound
	}
	return out, nil
}

// GetMany looks up each id independently under the owner filter. Ids
// that don't resolve are silently omitted.
func (s *TodoListStore) GetMany(_ context.Context, ids []string, ownerID string) ([]*domain.TodoList, error) {
	out := []*domain.TodoList{}
	for _, id := range ids {
		if list, ok := s.lists.Get(id); ok && list.OwnerID == ownerID {
			out = append(out, list.Clone())
		}
	}
	return out, nil
}

// Rename updates the list title.
func (s *TodoListStore) Rename(_ context.Context, listID, ownerID, title string) error {
	return s.mutate(listID, ownerID, func(list *domain.TodoList) error {
		list.Title = title
		return nil
	})
}

// Delete removes the list matched by id and owner.
func (s *TodoListStore) Delete(_ context.Context, listID, ownerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, ok := s.lists.Get(listID)
	if !ok || list.OwnerID != ownerID {
		return domain.ErrTodoListNotFound
	}
	s.lists.Delete(listID)
	return nil
}

// CreateTodo appends a todo to the list's embedded sequence.
func (s *TodoListStore) CreateTodo(_ context.Context, listID, ownerID string, todo domain.Todo) error {
	return s.mutate(listID, ownerID, func(list *domain.TodoList) error {
		list.Todos = append(list.Todos, todo)
		return nil
	})
}

// ModifyTodo replaces title, status and priority of the embedded todo
// matched by id, in place.
func (s *TodoListStore) ModifyTodo(_ context.Context, listID, ownerID, todoID, title string, status bool, priority domain.Priority) error {
	return s.mutate(listID, ownerID, func(list *domain.TodoList) error {
		i := list.FindTodo(todoID)
		if i < 0 {
			return domain.ErrTodoNotFound
		}
		list.Todos[i].Title = title
		list.Todos[i].Status = status
		list.Todos[i].Priority = priority
		return nil
	})
}

// DeleteTodo removes the embedded todo matched by id.
func (s *TodoListStore) DeleteTodo(_ context.Context, listID, ownerID, todoID string) error {
	return s.mutate(listID, ownerID, func(list *domain.TodoList) error {
		i := list.FindTodo(todoID)
		if i < 0 {
			return domain.ErrTodoNotFound
		}
		list.Todos = append(list.Todos[:i], list.Todos[i+1:]...)
		return nil
	})
}

// mutate applies fn to a clone of the list under the shard lock and
// stores the result when fn succeeds.
func (s *TodoListStore) mutate(listID, ownerID string, fn func(list *domain.TodoList) error) error {
	var err error = domain.ErrTodoListNotFound
	s.lists.UpdateIfPresent(listID, func(list *domain.TodoList) *domain.TodoList {
		if list.OwnerID != ownerID {
			return list
		}
		next := list.Clone()
		if fnErr := fn(next); fnErr != nil {
			err = fnErr
			return list
		}
		err = nil
		return next
	})
	return err
}
