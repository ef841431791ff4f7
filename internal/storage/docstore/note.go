package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/flexnotes/flexnotes-go/internal/core/domain"
	"github.com/flexnotes/flexnotes-go/internal/storage"
)

// NoteStore persists notes under owner-prefixed keys.
type NoteStore struct {
	engine storage.KVEngine
	logger *slog.Logger
}

// NewNoteStore creates a NoteStore.
func NewNoteStore(engine storage.KVEngine, logger *slog.Logger) *NoteStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &NoteStore{engine: engine, logger: logger}
}

// Create persists a new note.
func (s *NoteStore) Create(ctx context.Context, note *domain.Note) error {
	raw, err := json.Marshal(note)
	if err != nil {
		return fmt.Errorf("encode note: %w", err)
	}
	return s.engine.Update(ctx, func(tx storage.Tx) error {
		return tx.Set(noteKey(note.OwnerID, note.ID), raw)
	})
}

// Get retrieves a note by id under the owner filter.
func (s *NoteStore) Get(ctx context.Context, noteID, ownerID string) (*domain.Note, error) {
	var note domain.Note

	err := s.engine.View(ctx, func(tx storage.Tx) error {
		return s.load(tx, ownerID, noteID, &note)
	})
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// Update replaces title, content and tags, leaving the pinned list
// refs untouched. A write that matches nothing reports
// domain.ErrNothingChanged.
func (s *NoteStore) Update(ctx context.Context, ownerID, noteID, title, content string, tags []string) error {
	err := s.engine.Update(ctx, func(tx storage.Tx) error {
		var note domain.Note
		if err := s.load(tx, ownerID, noteID, &note); err != nil {
			return err
		}
		note.Title = title
		note.Content = content
		note.Tags = tags
		return s.save(tx, &note)
	})
	if errors.Is(err, domain.ErrNoteNotFound) {
		return domain.ErrNothingChanged
	}
	return err
}

// Delete removes the note matched by id and owner.
func (s *NoteStore) Delete(ctx context.Context, noteID, ownerID string) error {
	return s.engine.Update(ctx, func(tx storage.Tx) error {
		key := noteKey(ownerID, noteID)
		if _, err := tx.Get(key); err != nil {
			if errors.Is(err, storage.ErrKeyNotFound) {
				return domain.ErrNoteNotFound
			}
			return err
		}
		return tx.Delete(key)
	})
}

// ListByOwner returns summaries of all the owner's notes. Documents
// that fail to decode are logged and skipped.
func (s *NoteStore) ListByOwner(ctx context.Context, ownerID string) ([]domain.NoteSummary, error) {
	summaries := []domain.NoteSummary{}

	err := s.engine.View(ctx, func(tx storage.Tx) error {
		return tx.Scan(notePrefix(ownerID), func(key, value []byte) bool {
			var note domain.Note
			if err := json.Unmarshal(value, &note); err != nil {
				s.logger.Warn("skipping undecodable note document",
					"key", string(key), "error", err)
				return true
			}
			summaries = append(summaries, note.Summary())
			return true
		})
	})
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

// AppendRef appends listID to the note's pinned list refs. The append
// is unconditional; duplicates are kept.
func (s *NoteStore) AppendRef(ctx context.Context, noteID, ownerID, listID string) error {
	return s.engine.Update(ctx, func(tx storage.Tx) error {
		var note domain.Note
		if err := s.load(tx, ownerID, noteID, &note); err != nil {
			return err
		}
		note.TodoListRefs = append(note.TodoListRefs, listID)
		return s.save(tx, &note)
	})
}

// RemoveRef removes every occurrence of listID from the note's pinned
// list refs. A note without the ref behaves like an absent note.
func (s *NoteStore) RemoveRef(ctx context.Context, noteID, ownerID, listID string) error {
	return s.engine.Update(ctx, func(tx storage.Tx) error {
		var note domain.Note
		if err := s.load(tx, ownerID, noteID, &note); err != nil {
			return err
		}
		if !note.HasRef(listID) {
			return domain.ErrNoteNotFound
		}

		refs := note.TodoListRefs[:0]
		for _, ref := range note.TodoListRefs {
			if ref != listID {
				refs = append(refs, ref)
			}
		}
		note.TodoListRefs = refs
		return s.save(tx, &note)
	})
}

func (s *NoteStore) load(tx storage.Tx, ownerID, noteID string, note *domain.Note) error {
	raw, err := tx.Get(noteKey(ownerID, noteID))
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return domain.ErrNoteNotFound
		}
		return err
	}
	if err := json.Unmarshal(raw, note); err != nil {
		return fmt.Errorf("decode note: %w", err)
	}
	return nil
}

func (s *NoteStore) save(tx storage.Tx, note *domain.Note) error {
	raw, err := json.Marshal(note)
	if err != nil {
		return fmt.Errorf("encode note: %w", err)
	}
	return tx.Set(noteKey(note.OwnerID, note.ID), raw)
}
