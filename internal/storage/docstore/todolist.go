package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/flexnotes/flexnotes-go/internal/core/domain"
	"github.com/flexnotes/flexnotes-go/internal/storage"
)

// TodoListStore persists todo lists under owner-prefixed keys. Todos
// live embedded in their list document, so every todo operation is a
// read-modify-write of one document.
type TodoListStore struct {
	engine storage.KVEngine
}

// NewTodoListStore creates a TodoListStore.
func NewTodoListStore(engine storage.KVEngine) *TodoListStore {
	return &TodoListStore{engine: engine}
}

// Create persists a new todo list.
func (s *TodoListStore) Create(ctx context.Context, list *domain.TodoList) error {
	raw, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode todo list: %w", err)
	}
	return s.engine.Update(ctx, func(tx storage.Tx) error {
		return tx.Set(listKey(list.OwnerID, list.ID), raw)
	})
}

// Get retrieves a list by id under the owner filter.
func (s *TodoListStore) Get(ctx context.Context, listID, ownerID string) (*domain.TodoList, error) {
	var list domain.TodoList

	err := s.engine.View(ctx, func(tx storage.Tx) error {
		return s.load(tx, ownerID, listID, &list)
	})
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// GetAllByOwner returns all the owner's lists. An owner with no lists
// gets domain.ErrTodoListNotFound.
func (s *TodoListStore) GetAllByOwner(ctx context.Context, ownerID string) ([]*domain.TodoList, error) {
	var lists []*domain.TodoList
	var decodeErr error

	err := s.engine.View(ctx, func(tx storage.Tx) error {
		return tx.Scan(listPrefix(ownerID), func(key, value []byte) bool {
			var list domain.TodoList
			if err := json.Unmarshal(value, &list); err != nil {
				decodeErr = fmt.Errorf("decode todo list %s: %w", key, err)
				return false
			}
			lists = append(lists, &list)
			return true
		})
	})
	if err != nil {
		return nil, err
	}
	if decodeErr != nil {
		return nil, decodeErr
	}
	if len(lists) == 0 {
		return nil, domain.ErrTodoListNotFound
	}
	return lists, nil
}

// GetMany looks up each id independently under the owner filter. Ids
// that don't resolve are silently omitted.
func (s *TodoListStore) GetMany(ctx context.Context, ids []string, ownerID string) ([]*domain.TodoList, error) {
	lists := []*domain.TodoList{}

	err := s.engine.View(ctx, func(tx storage.Tx) error {
		for _, id := range ids {
			var list domain.TodoList
			if err := s.load(tx, ownerID, id, &list); err != nil {
				if errors.Is(err, domain.ErrTodoListNotFound) {
					continue
				}
				return err
			}
			lists = append(lists, &list)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return lists, nil
}

// Rename updates the list title.
func (s *TodoListStore) Rename(ctx context.Context, listID, ownerID, title string) error {
	return s.mutate(ctx, listID, ownerID, func(list *domain.TodoList) error {
		list.Title = title
		return nil
	})
}

// Delete removes the list matched by id and owner.
func (s *TodoListStore) Delete(ctx context.Context, listID, ownerID string) error {
	return s.engine.Update(ctx, func(tx storage.Tx) error {
		key := listKey(ownerID, listID)
		if _, err := tx.Get(key); err != nil {
			if errors.Is(err, storage.ErrKeyNotFound) {
				return domain.ErrTodoListNotFound
			}
			return err
		}
		return tx.Delete(key)
	})
}

// CreateTodo appends a todo to the list's embedded sequence.
func (s *TodoListStore) CreateTodo(ctx context.Context, listID, ownerID string, todo domain.Todo) error {
	return s.mutate(ctx, listID, ownerID, func(list *domain.TodoList) error {
		list.Todos = append(list.Todos, todo)
		return nil
	})
}

// ModifyTodo replaces title, status and priority of the embedded todo
// matched by id, in place.
func (s *TodoListStore) ModifyTodo(ctx context.Context, listID, ownerID, todoID, title string, status bool, priority domain.Priority) error {
	return s.mutate(ctx, listID, ownerID, func(list *domain.TodoList) error {
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
func (s *TodoListStore) DeleteTodo(ctx context.Context, listID, ownerID, todoID string) error {
	return s.mutate(ctx, listID, ownerID, func(list *domain.TodoList) error {
		i := list.FindTodo(todoID)
		if i < 0 {
			return domain.ErrTodoNotFound
		}
		list.Todos = append(list.Todos[:i], list.Todos[i+1:]...)
		return nil
	})
}

// mutate runs fn against the list inside a single transaction and
// writes the result back.
func (s *TodoListStore) mutate(ctx context.Context, listID, ownerID string, fn func(list *domain.TodoList) error) error {
	return s.engine.Update(ctx, func(tx storage.Tx) error {
		var list domain.TodoList
		if err := s.load(tx, ownerID, listID, &list); err != nil {
			return err
		}
		if err := fn(&list); err != nil {
			return err
		}
		raw, err := json.Marshal(&list)
		if err != nil {
			return fmt.Errorf("encode todo list: %w", err)
		}
		return tx.Set(listKey(ownerID, listID), raw)
	})
}

func (s *TodoListStore) load(tx storage.Tx, ownerID, listID string, list *domain.TodoList) error {
	raw, err := tx.Get(listKey(ownerID, listID))
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return domain.ErrTodoListNotFound
		}
		return err
	}
	if err := json.Unmarshal(raw, list); err != nil {
		return fmt.Errorf("decode todo list: %w", err)
	}
	return nil
}
