package handler

import (
	"net/http"

	"github.com/flexnotes/flexnotes-go/internal/core/domain"
)

// handleCreateTodoList handles POST /todolists.
func (h *Handler) handleCreateTodoList(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var req TodoListRequest
	if err := h.decode(r, &req); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	list, err := h.listSvc.Create(r.Context(), user.ID, req.Title)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusCreated, list)
}

// handleListTodoLists handles GET /todolists. An owner with no lists
// gets a 404, unlike the notes listing.
func (h *Handler) handleListTodoLists(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	lists, err := h.listSvc.GetAll(r.Context(), user.ID)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, lists)
}

// handleGetTodoList handles GET /todolists/{id}.
func (h *Handler) handleGetTodoList(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	list, err := h.listSvc.Get(r.Context(), r.PathValue("id"), user.ID)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, list)
}

// handleRenameTodoList handles PATCH /todolists/{id}.
func (h *Handler) handleRenameTodoList(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var req TodoListRequest
	if err := h.decode(r, &req); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	if err := h.listSvc.Rename(r.Context(), r.PathValue("id"), user.ID, req.Title); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusNoContent, nil)
}

// handleDeleteTodoList handles DELETE /todolists/{id}. Notes that pin
// the deleted list keep their refs; readers skip refs that no longer
// resolve.
func (h *Handler) handleDeleteTodoList(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	if err := h.listSvc.Delete(r.Context(), r.PathValue("id"), user.ID); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusNoContent, nil)
}

// handleCreateTodo handles POST /todolists/{id}/todos.
func (h *Handler) handleCreateTodo(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var req TodoRequest
	if err := h.decode(r, &req); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	priority, err := domain.ParsePriority(req.Priority)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	todo, err := h.listSvc.CreateTodo(r.Context(), r.PathValue("id"), user.ID, req.Title, req.Status, priority)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusCreated, todo)
}

// handleModifyTodo handles PUT /todolists/{id}/todos/{todo_id}. The
// todo keeps its position in the list.
func (h *Handler) handleModifyTodo(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var req TodoRequest
	if err := h.decode(r, &req); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	priority, err := domain.ParsePriority(req.Priority)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	if err := h.listSvc.ModifyTodo(r.Context(), r.PathValue("id"), user.ID, r.PathValue("todo_id"), req.Title, req.Status, priority); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusNoContent, nil)
}

// handleDeleteTodo handles DELETE /todolists/{id}/todos/{todo_id}.
func (h *Handler) handleDeleteTodo(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	if err := h.listSvc.DeleteTodo(r.Context(), r.PathValue("id"), user.ID, r.PathValue("todo_id")); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusNoContent, nil)
}
