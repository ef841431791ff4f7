package memory

import (
	"context"
	"sync"

	"github.com/flexnotes/flexnotes-go/internal/core/domain"
	"github.com/flexnotes/flexnotes-go/pkg/cmap"
)

// NoteStore provides in-memory note storage. Stored notes are treated
// as immutable; every mutation replaces the stored value with a
// modified clone, so readers never observe a partial write.
type NoteStore struct {
	notes *cmap.Map[string, *domain.Note] // noteID -> note

	mu sync.Mutex // guards check-then-delete
}

// NewNoteStore creates an empty NoteStore.
func NewNoteStore() *NoteStore {
	return &NoteStore{notes: cmap.New[string, *domain.Note]()}
}

// Create persists a new note.
func (s *NoteStore) Create(_ context.Context, note *domain.Note) error {
	s.notes.Set(note.ID, note.Clone())
	return nil
}

// Get retrieves a note by id under the owner filter.
func (s *NoteStore) Get(_ context.Context, noteID, ownerID string) (*domain.Note, error) {
	note, ok := s.notes.Get(noteID)
	if !ok || note.OwnerID != ownerID {
		return nil, domain.ErrNoteNotFound
	}
	return note.Clone(), nil
}

// Update replaces title, content and tags, leaving the pinned list
// refs untouched.
func (s *NoteStore) Update(_ context.Context, ownerID, noteID, title, content string, tags []string) error {
	var err error = domain.ErrNothingChanged
	s.notes.UpdateIfPresent(noteID, func(note *domain.Note) *domain.Note {
		if note.OwnerID != ownerID {
			return note
		}
		next := note.Clone()
		next.Title = title
		next.Content = content
		next.Tags = tags
		err = nil
		return next
	})
	return err
}

// Delete removes the note matched by id and owner.
func (s *NoteStore) Delete(_ context.Context, noteID, ownerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	note, ok := s.notes.Get(noteID)
	if !ok || note.OwnerID != ownerID {
		return domain.ErrNoteNotFound
	}
	s.notes.Delete(noteID)
	return nil
}

// ListByOwner returns summaries of all the owner's notes.
func (s *NoteStore) ListByOwner(_ context.Context, ownerID string) ([]domain.NoteSummary, error) {
	summaries := []domain.NoteSummary{}
	s.notes.Range(func(_ string, note *domain.Note) bool {
		if note.OwnerID == ownerID {
			summaries = append(summaries, note.Summary())
		}
		return true
	})
	return summaries, nil
}

// AppendRef appends listID to the note's pinned list refs,
// unconditionally; duplicates are kept.
func (s *NoteStore) AppendRef(_ context.Context, noteID, ownerID, listID string) error {
	var err error = domain.ErrNoteNotFound
	s.notes.UpdateIfPresent(noteID, func(note *domain.Note) *domain.Note {
		if note.OwnerID != ownerID {
			return note
		}
		next := note.Clone()
		next.TodoListRefs = append(next.TodoListRefs, listID)
		err = nil
		return next
	})
	return err
}

// RemoveRef removes every occurrence of listID from the note's pinned
// list refs. A note without the ref behaves like an absent note.
func (s *NoteStore) RemoveRef(_ context.Context, noteID, ownerID, listID string) error {
	var err error = domain.ErrNoteNotFound
	s.notes.UpdateIfPresent(noteID, func(note *domain.Note) *domain.Note {
		if note.OwnerID != ownerID || !note.HasRef(listID) {
			return note
		}
		next := note.Clone()
		refs := next.TodoListRefs[:0]
		for _, ref := range next.TodoListRefs {
			if ref != listID {
				refs = append(refs, ref)
			}
		}
		next.TodoListRefs = refs
		err = nil
		return next
	})
	return err
}
