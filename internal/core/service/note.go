package service

import (
	"context"
	"log/slog"

	"github.com/flexnotes/flexnotes-go/internal/core/domain"
)

// NoteRepository defines the storage interface for notes. Every
// operation filters by owner id; an id owned by someone else behaves
// exactly like an absent id.
type NoteRepository interface {
	// Create persists a new note.
	Create(ctx context.Context, note *domain.Note) error

	// Get retrieves a note by id under the owner filter.
	Get(ctx context.Context, noteID, ownerID string) (*domain.Note, error)

	// Update replaces title, content and tags. TodoListRefs is never
	// touched by this operation. Returns domain.ErrNothingChanged if
	// the write matched zero documents.
	Update(ctx context.Context, ownerID, noteID, title, content string, tags []string) error

	// Delete removes the note matched by id and owner.
	Delete(ctx context.Context, noteID, ownerID string) error

	// ListByOwner returns summaries of all the owner's notes. An owner
	// with no notes gets an empty slice. Documents that fail to decode
	// are skipped, not fatal.
	ListByOwner(ctx context.Context, ownerID string) ([]domain.NoteSummary, error)

	// AppendRef appends listID to the note's todo list refs.
	AppendRef(ctx context.Context, noteID, ownerID, listID string) error

	// RemoveRef removes listID from the note's todo list refs. The
	// match requires the ref to be present; its absence (or the
	// note's) is domain.ErrNoteNotFound.
	RemoveRef(ctx context.Context, noteID, ownerID, listID string) error
}

// NoteService provides owner-scoped note operations, including the
// pinning relation that links notes to todo lists.
type NoteService struct {
	notes  NoteRepository
	lists  TodoListRepository
	logger *slog.Logger
}

// NewNoteService creates a NoteService.
func NewNoteService(notes NoteRepository, lists TodoListRepository, logger *slog.Logger) *NoteService {
	if logger == nil {
		logger = slog.Default()
	}
	return &NoteService{
		notes:  notes,
		lists:  lists,
		logger: logger,
	}
}

// Create persists a new note with no pinned lists and returns it.
func (s *NoteService) Create(ctx context.Context, ownerID, title, content string, tags []string) (*domain.Note, error) {
	note := domain.NewNote(ownerID, title, content, tags)
	if err := note.Validate(); err != nil {
		return nil, err
	}
	if err := s.notes.Create(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// Get retrieves one of the owner's notes.
func (s *NoteService) Get(ctx context.Context, noteID, ownerID string) (*domain.Note, error) {
	return s.notes.Get(ctx, noteID, ownerID)
}

// Update replaces the note's title, content and tags.
func (s *NoteService) Update(ctx context.Context, ownerID, noteID, title, content string, tags []string) error {
	if tags == nil {
		tags = []string{}
	}
	return s.notes.Update(ctx, ownerID, noteID, title, content, tags)
}

// Delete removes one of the owner's notes.
func (s *NoteService) Delete(ctx context.Context, noteID, ownerID string) error {
	return s.notes.Delete(ctx, noteID, ownerID)
}

// List returns summaries of all the owner's notes.
func (s *NoteService) List(ctx context.Context, ownerID string) ([]domain.NoteSummary, error) {
	return s.notes.ListByOwner(ctx, ownerID)
}

// Pin links a todo list onto a note by reference. The list must
// resolve under the same owner before anything is written; a missing
// or foreign list fails with domain.ErrTodoListNotFound and leaves the
// note untouched. The existence check and the append are two separate
// store calls, not a transaction: a concurrent delete of the list in
// between can leave a dangling ref, which is an accepted race.
//
// Pinning appends unconditionally, so pinning the same list twice
// produces a duplicate ref.
func (s *NoteService) Pin(ctx context.Context, ownerID, noteID, listID string) error {
	if _, err := s.lists.Get(ctx, listID, ownerID); err != nil {
		return err
	}
	return s.notes.AppendRef(ctx, noteID, ownerID, listID)
}

// Unpin removes a todo list reference from a note. The match requires
// note id, owner and the presence of the ref; anything else is
// domain.ErrNoteNotFound.
func (s *NoteService) Unpin(ctx context.Context, ownerID, noteID, listID string) error {
	return s.notes.RemoveRef(ctx, noteID, ownerID, listID)
}

// PinnedLists resolves the todo lists currently pinned onto a note.
// Refs that no longer resolve are silently omitted.
func (s *NoteService) PinnedLists(ctx context.Context, ownerID, noteID string) ([]*domain.TodoList, error) {
	note, err := s.notes.Get(ctx, noteID, ownerID)
	if err != nil {
		return nil, err
	}
	return s.lists.GetMany(ctx, note.TodoListRefs, ownerID)
}
