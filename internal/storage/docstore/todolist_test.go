package docstore

import (
	"context"
	"errors"
	"testing"

	"github.com/flexnotes/flexnotes-go/internal/core/domain"
)

func TestTodoListStore_CRUD(t *testing.T) {
	ctx := context.Background()

	t.Run("create and get", func(t *testing.T) {
		store := NewTodoListStore(newTestEngine(t))

		list := domain.NewTodoList("owner-1", "chores")
		if err := store.Create(ctx, list); err != nil {
			t.Fatalf("Create: %v", err)
		}

		got, err := store.Get(ctx, list.ID, "owner-1")
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if got.Title != "chores" {
			t.Errorf("Title = %q, want chores", got.Title)
		}
		if got.Todos == nil {
			t.Error("todos should decode to an empty slice, not nil")
		}
	})

	t.Run("owner scoping", func(t *testing.T) {
		store := NewTodoListStore(newTestEngine(t))

		list := domain.NewTodoList("owner-1", "mine")
		_ = store.Create(ctx, list)

		if _, err := store.Get(ctx, list.ID, "owner-2"); !errors.Is(err, domain.ErrTodoListNotFound) {
			t.Errorf("Get(foreign owner) error = %v, want ErrTodoListNotFound", err)
		}
	})

	t.Run("get all with no lists is not found", func(t *testing.T) {
		store := NewTodoListStore(newTestEngine(t))

		_, err := store.GetAllByOwner(ctx, "owner-1")
		if !errors.Is(err, domain.ErrTodoListNotFound) {
			t.Errorf("GetAllByOwner(empty) error = %v, want ErrTodoListNotFound", err)
		}
	})

	t.Run("get all returns only the owner's lists", func(t *testing.T) {
		store := NewTodoListStore(newTestEngine(t))

		mine := domain.NewTodoList("owner-1", "mine")
		_ = store.Create(ctx, mine)
		_ = store.Create(ctx, domain.NewTodoList("owner-2", "theirs"))

		lists, err := store.GetAllByOwner(ctx, "owner-1")
		if err != nil {
			t.Fatalf("GetAllByOwner: %v", err)
		}
		if len(lists) != 1 || lists[0].ID != mine.ID {
			t.Errorf("lists = %v, want only the owner's one", lists)
		}
	})

	t.Run("get many omits unresolved ids", func(t *testing.T) {
		store := NewTodoListStore(newTestEngine(t))

		a := domain.NewTodoList("owner-1", "a")
		b := domain.NewTodoList("owner-1", "b")
		foreign := domain.NewTodoList("owner-2", "foreign")
		_ = store.Create(ctx, a)
		_ = store.Create(ctx, b)
		_ = store.Create(ctx, foreign)

		lists, err := store.GetMany(ctx, []string{a.ID, "no-such-id", foreign.ID, b.ID}, "owner-1")
		if err != nil {
			t.Fatalf("GetMany: %v", err)
		}
		if len(lists) != 2 || lists[0].ID != a.ID || lists[1].ID != b.ID {
			t.Errorf("GetMany = %v, want [a b] in request order", lists)
		}
	})

	t.Run("rename", func(t *testing.T) {
		store := NewTodoListStore(newTestEngine(t))

		list := domain.NewTodoList("owner-1", "old")
		_ = store.Create(ctx, list)

		if err := store.Rename(ctx, list.ID, "owner-1", "new"); err != nil {
			t.Fatalf("Rename: %v", err)
		}
		got, _ := store.Get(ctx, list.ID, "owner-1")
		if got.Title != "new" {
			t.Errorf("Title = %q, want new", got.Title)
		}

		if err := store.Rename(ctx, "no-such-id", "owner-1", "x"); !errors.Is(err, domain.ErrTodoListNotFound) {
			t.Errorf("Rename(missing) error = %v, want ErrTodoListNotFound", err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		store := NewTodoListStore(newTestEngine(t))

		list := domain.NewTodoList("owner-1", "ephemeral")
		_ = store.Create(ctx, list)

		if err := store.Delete(ctx, list.ID, "owner-1"); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if err := store.Delete(ctx, list.ID, "owner-1"); !errors.Is(err, domain.ErrTodoListNotFound) {
			t.Errorf("second Delete error = %v, want ErrTodoListNotFound", err)
		}
	})
}

func TestTodoListStore_Todos(t *testing.T) {
	ctx := context.Background()

	t.Run("create, modify, delete in place", func(t *testing.T) {
		store := NewTodoListStore(newTestEngine(t))

		list := domain.NewTodoList("owner-1", "chores")
		_ = store.Create(ctx, list)

		first := domain.NewTodo("dishes", false, domain.PriorityNormal)
		second := domain.NewTodo("laundry", false, domain.PriorityLow)
		if err := store.CreateTodo(ctx, list.ID, "owner-1", first); err != nil {
			t.Fatalf("CreateTodo: %v", err)
		}
		if err := store.CreateTodo(ctx, list.ID, "owner-1", second); err != nil {
			t.Fatalf("CreateTodo: %v", err)
		}

		if err := store.ModifyTodo(ctx, list.ID, "owner-1", first.ID, "dishes (done)", true, domain.PriorityHigh); err != nil {
			t.Fatalf("ModifyTodo: %v", err)
		}

		got, _ := store.Get(ctx, list.ID, "owner-1")
		if len(got.Todos) != 2 {
			t.Fatalf("todos = %v, want 2", got.Todos)
		}
		if got.Todos[0].ID != first.ID || got.Todos[1].ID != second.ID {
			t.Fatal("modify must not reorder the todos")
		}
		if !got.Todos[0].Status || got.Todos[0].Priority != domain.PriorityHigh {
			t.Errorf("first todo = %+v, want completed high priority", got.Todos[0])
		}

		if err := store.DeleteTodo(ctx, list.ID, "owner-1", first.ID); err != nil {
			t.Fatalf("DeleteTodo: %v", err)
		}
		got, _ = store.Get(ctx, list.ID, "owner-1")
		if len(got.Todos) != 1 || got.Todos[0].ID != second.ID {
			t.Errorf("todos = %v, want only the second", got.Todos)
		}
	})

	t.Run("missing todo", func(t *testing.T) {
		store := NewTodoListStore(newTestEngine(t))

		list := domain.NewTodoList("owner-1", "chores")
		_ = store.Create(ctx, list)

		if err := store.ModifyTodo(ctx, list.ID, "owner-1", "no-such-todo", "x", false, domain.PriorityNormal); !errors.Is(err, domain.ErrTodoNotFound) {
			t.Errorf("ModifyTodo(missing) error = %v, want ErrTodoNotFound", err)
		}
		if err := store.DeleteTodo(ctx, list.ID, "owner-1", "no-such-todo"); !errors.Is(err, domain.ErrTodoNotFound) {
			t.Errorf("DeleteTodo(missing) error = %v, want ErrTodoNotFound", err)
		}
	})

	t.Run("missing list", func(t *testing.T) {
		store := NewTodoListStore(newTestEngine(t))

		todo := domain.NewTodo("x", false, domain.PriorityNormal)
		if err := store.CreateTodo(ctx, "no-such-list", "owner-1", todo); !errors.Is(err, domain.ErrTodoListNotFound) {
			t.Errorf("CreateTodo(missing list) error = %v, want ErrTodoListNotFound", err)
		}
	})
}
