package service

import (
	"context"
	"errors"
	"testing"

	"github.com/flexnotes/flexnotes-go/internal/core/domain"
)

func newTestTodoListService() (*TodoListService, *mockTodoListRepo) {
	repo := newMockTodoListRepo()
	return NewTodoListService(repo, nil), repo
}

func TestTodoListService_Lists(t *testing.T) {
	ctx := context.Background()

	t.Run("create and get", func(t *testing.T) {
		svc, _ := newTestTodoListService()

		list, err := svc.Create(ctx, "owner-1", "chores")
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if list.ID == "" {
			t.Fatal("created list has no id")
		}
		if list.Todos == nil || len(list.Todos) != 0 {
			t.Error("new list should start with an empty todo slice")
		}

		got, err := svc.Get(ctx, list.ID, "owner-1")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got.Title != "chores" {
			t.Errorf("Title = %q, want chores", got.Title)
		}
	})

	t.Run("create rejects blank title", func(t *testing.T) {
		svc, _ := newTestTodoListService()

		if _, err := svc.Create(ctx, "owner-1", "  "); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("Create(blank title) error = %v, want ErrInvalidArgument", err)
		}
	})

	t.Run("get all with no lists is not found", func(t *testing.T) {
		svc, _ := newTestTodoListService()

		_, err := svc.GetAll(ctx, "owner-1")
		if !errors.Is(err, domain.ErrTodoListNotFound) {
			t.Errorf("GetAll(empty owner) error = %v, want ErrTodoListNotFound", err)
		}
	})

	t.Run("get all returns only the owner's lists", func(t *testing.T) {
		svc, _ := newTestTodoListService()

		mine, _ := svc.Create(ctx, "owner-1", "mine")
		_, _ = svc.Create(ctx, "owner-2", "theirs")

		lists, err := svc.GetAll(ctx, "owner-1")
		if err != nil {
			t.Fatalf("GetAll failed: %v", err)
		}
		if len(lists) != 1 || lists[0].ID != mine.ID {
			t.Errorf("GetAll returned %d lists, want exactly the owner's one", len(lists))
		}
	})

	t.Run("rename", func(t *testing.T) {
		svc, repo := newTestTodoListService()

		list, _ := svc.Create(ctx, "owner-1", "old")
		if err := svc.Rename(ctx, list.ID, "owner-1", "new"); err != nil {
			t.Fatalf("Rename failed: %v", err)
		}
		if repo.lists[list.ID].Title != "new" {
			t.Errorf("Title = %q, want new", repo.lists[list.ID].Title)
		}
	})

	t.Run("rename rejects blank title", func(t *testing.T) {
		svc, _ := newTestTodoListService()

		list, _ := svc.Create(ctx, "owner-1", "old")
		if err := svc.Rename(ctx, list.ID, "owner-1", " "); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("Rename(blank) error = %v, want ErrInvalidArgument", err)
		}
	})

	t.Run("rename a foreign list", func(t *testing.T) {
		svc, _ := newTestTodoListService()

		list, _ := svc.Create(ctx, "owner-1", "mine")
		if err := svc.Rename(ctx, list.ID, "owner-2", "stolen"); !errors.Is(err, domain.ErrTodoListNotFound) {
			t.Errorf("Rename(foreign owner) error = %v, want ErrTodoListNotFound", err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		svc, _ := newTestTodoListService()

		list, _ := svc.Create(ctx, "owner-1", "ephemeral")
		if err := svc.Delete(ctx, list.ID, "owner-1"); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if _, err := svc.Get(ctx, list.ID, "owner-1"); !errors.Is(err, domain.ErrTodoListNotFound) {
			t.Errorf("Get(deleted) error = %v, want ErrTodoListNotFound", err)
		}
	})
}

func TestTodoListService_Todos(t *testing.T) {
	ctx := context.Background()

	t.Run("create todo appends with a fresh id", func(t *testing.T) {
		svc, repo := newTestTodoListService()

		list, _ := svc.Create(ctx, "owner-1", "chores")
		todo, err := svc.CreateTodo(ctx, list.ID, "owner-1", "dishes", false, domain.PriorityHigh)
		if err != nil {
			t.Fatalf("CreateTodo failed: %v", err)
		}
		if todo.ID == "" {
			t.Fatal("created todo has no id")
		}
		if todo.Priority != domain.PriorityHigh {
			t.Errorf("Priority = %q, want high", todo.Priority)
		}

		stored := repo.lists[list.ID]
		if len(stored.Todos) != 1 || stored.Todos[0].ID != todo.ID {
			t.Errorf("stored todos = %v, want exactly the new todo", stored.Todos)
		}
	})

	t.Run("create todo rejects blank title", func(t *testing.T) {
		svc, _ := newTestTodoListService()

		list, _ := svc.Create(ctx, "owner-1", "chores")
		if _, err := svc.CreateTodo(ctx, list.ID, "owner-1", " ", false, domain.PriorityNormal); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("CreateTodo(blank) error = %v, want ErrInvalidArgument", err)
		}
	})

	t.Run("modify todo in place", func(t *testing.T) {
		svc, repo := newTestTodoListService()

		list, _ := svc.Create(ctx, "owner-1", "chores")
		first, _ := svc.CreateTodo(ctx, list.ID, "owner-1", "dishes", false, domain.PriorityNormal)
		second, _ := svc.CreateTodo(ctx, list.ID, "owner-1", "laundry", false, domain.PriorityLow)

		if err := svc.ModifyTodo(ctx, list.ID, "owner-1", first.ID, "dishes (done)", true, domain.PriorityLow); err != nil {
			t.Fatalf("ModifyTodo failed: %v", err)
		}

		stored := repo.lists[list.ID]
		if stored.Todos[0].ID != first.ID || stored.Todos[1].ID != second.ID {
			t.Fatal("modify must not reorder the todos")
		}
		if !stored.Todos[0].Status || stored.Todos[0].Title != "dishes (done)" {
			t.Errorf("first todo = %+v, want completed dishes (done)", stored.Todos[0])
		}
	})

	t.Run("modify a missing todo", func(t *testing.T) {
		svc, _ := newTestTodoListService()

		list, _ := svc.Create(ctx, "owner-1", "chores")
		err := svc.ModifyTodo(ctx, list.ID, "owner-1", "no-such-todo", "x", false, domain.PriorityNormal)
		if !errors.Is(err, domain.ErrTodoNotFound) {
			t.Errorf("ModifyTodo(missing) error = %v, want ErrTodoNotFound", err)
		}
	})

	t.Run("delete todo", func(t *testing.T) {
		svc, repo := newTestTodoListService()

		list, _ := svc.Create(ctx, "owner-1", "chores")
		first, _ := svc.CreateTodo(ctx, list.ID, "owner-1", "dishes", false, domain.PriorityNormal)
		second, _ := svc.CreateTodo(ctx, list.ID, "owner-1", "laundry", false, domain.PriorityNormal)

		if err := svc.DeleteTodo(ctx, list.ID, "owner-1", first.ID); err != nil {
			t.Fatalf("DeleteTodo failed: %v", err)
		}

		stored := repo.lists[list.ID]
		if len(stored.Todos) != 1 || stored.Todos[0].ID != second.ID {
			t.Errorf("stored todos = %v, want only the second", stored.Todos)
		}
	})

	t.Run("todo ops on a foreign list", func(t *testing.T) {
		svc, _ := newTestTodoListService()

		list, _ := svc.Create(ctx, "owner-1", "mine")
		if _, err := svc.CreateTodo(ctx, list.ID, "owner-2", "sneak", false, domain.PriorityNormal); !errors.Is(err, domain.ErrTodoListNotFound) {
			t.Errorf("CreateTodo(foreign owner) error = %v, want ErrTodoListNotFound", err)
		}
	})
}
