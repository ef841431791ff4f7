package handler

import "net/http"

// handleCreateNote handles POST /notes.
func (h *Handler) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var req NoteRequest
	if err := h.decode(r, &req); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	note, err := h.noteSvc.Create(r.Context(), user.ID, req.Title, req.Content, req.Tags)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusCreated, note)
}

// handleListNotes handles GET /notes. The list holds summaries only;
// an owner with no notes gets an empty array, not an error.
func (h *Handler) handleListNotes(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	notes, err := h.noteSvc.List(r.Context(), user.ID)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, notes)
}

// handleGetNote handles GET /notes/{id}.
func (h *Handler) handleGetNote(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	note, err := h.noteSvc.Get(r.Context(), r.PathValue("id"), user.ID)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, note)
}

// handleUpdateNote handles PUT /notes/{id}.
func (h *Handler) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var req NoteRequest
	if err := h.decode(r, &req); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	if err := h.noteSvc.Update(r.Context(), user.ID, r.PathValue("id"), req.Title, req.Content, req.Tags); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusNoContent, nil)
}

// handleDeleteNote handles DELETE /notes/{id}.
func (h *Handler) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	if err := h.noteSvc.Delete(r.Context(), r.PathValue("id"), user.ID); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusNoContent, nil)
}

// handlePinnedLists handles GET /notes/{id}/todolists. Pinned refs
// that no longer resolve are omitted from the response.
func (h *Handler) handlePinnedLists(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	lists, err := h.noteSvc.PinnedLists(r.Context(), user.ID, r.PathValue("id"))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, lists)
}

// handlePinNote handles POST /notes/{id}/pin/{list_id}.
func (h *Handler) handlePinNote(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	if err := h.noteSvc.Pin(r.Context(), user.ID, r.PathValue("id"), r.PathValue("list_id")); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusNoContent, nil)
}

// handleUnpinNote handles DELETE /notes/{id}/pin/{list_id}.
func (h *Handler) handleUnpinNote(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	if err := h.noteSvc.Unpin(r.Context(), user.ID, r.PathValue("id"), r.PathValue("list_id")); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusNoContent, nil)
}
