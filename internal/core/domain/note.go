package domain

import "strings"

// Note is an owner-scoped document. TodoListRefs holds the IDs of todo
// lists pinned onto the note; every ref must resolve under the same
// owner at pin time.
type Note struct {
	ID           string   `json:"id"`
	OwnerID      string   `json:"owner_id"`
	Title        string   `json:"title"`
	Content      string   `json:"content"`
	Tags         []string `json:"tags"`
	TodoListRefs []string `json:"todo_lists"`
}

// NoteSummary is the owner-listing projection of a note.
type NoteSummary struct {
	ID    string   `json:"id"`
	Title string   `json:"title"`
	Tags  []string `json:"tags"`
}

// NewNote creates a Note with a fresh ID and no pinned lists.
func NewNote(ownerID, title, content string, tags []string) *Note {
	if tags == nil {
		tags = []string{}
	}
	return &Note{
		ID:           NewID(),
		OwnerID:      ownerID,
		Title:        title,
		Content:      content,
		Tags:         tags,
		TodoListRefs: []string{},
	}
}

// Validate checks structural invariants.
func (n *Note) Validate() error {
	if n.ID == "" {
		return ErrInvalidArgument.WithDetails("note id is required")
	}
	if n.OwnerID == "" {
		return ErrInvalidArgument.WithDetails("note owner id is required")
	}
	if strings.TrimSpace(n.Title) == "" {
		return ErrInvalidArgument.WithDetails("note title is required")
	}
	return nil
}

// HasRef reports whether listID is currently pinned onto the note.
func (n *Note) HasRef(listID string) bool {
	for _, ref := range n.TodoListRefs {
		if ref == listID {
			return true
		}
	}
	return false
}

// Summary returns the listing projection of the note.
func (n *Note) Summary() NoteSummary {
	tags := n.Tags
	if tags == nil {
		tags = []string{}
	}
	return NoteSummary{ID: n.ID, Title: n.Title, Tags: tags}
}

// Clone returns a deep copy.
func (n *Note) Clone() *Note {
	clone := *n
	clone.Tags = append([]string(nil), n.Tags...)
	clone.TodoListRefs = append([]string(nil), n.TodoListRefs...)
	return &clone
}
