// Package client provides the HTTP API client used by flexnotes-cli.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/flexnotes/flexnotes-go/internal/core/domain"
)

// Client talks to a flexnotes-server over its JSON API.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithToken sets the bearer token sent on authenticated calls.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// New creates a client for the given server address. A bare host:port
// is treated as http.
func New(server string, opts ...Option) *Client {
	baseURL := server
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "http://" + baseURL
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the resolved server URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SetToken replaces the bearer token, e.g. after a login.
func (c *Client) SetToken(token string) {
	c.token = token
}

// APIError is an error envelope returned by the server.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// do performs a request and decodes the response into out (nil to
// discard the body).
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("User-Agent", "flexnotes-cli/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode}
		json.NewDecoder(resp.Body).Decode(apiErr)
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("parse response: %w", err)
		}
	}
	return nil
}

// AuthResult carries the tokens returned by register and login.
type AuthResult struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Username     string `json:"username"`
}

// Register creates an account. The returned tokens are also installed
// on the client.
func (c *Client) Register(ctx context.Context, username, email, password string) (*AuthResult, error) {
	var res AuthResult
	err := c.do(ctx, http.MethodPost, "/auth/register", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, &res)
	if err != nil {
		return nil, err
	}
	c.token = res.AccessToken
	return &res, nil
}

// Login authenticates and installs the returned access token.
func (c *Client) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	var res AuthResult
	err := c.do(ctx, http.MethodPost, "/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, &res)
	if err != nil {
		return nil, err
	}
	c.token = res.AccessToken
	return &res, nil
}

// Refresh exchanges a refresh token for a fresh pair.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	var res AuthResult
	err := c.do(ctx, http.MethodPost, "/auth/refresh", map[string]string{
		"refresh_token": refreshToken,
	}, &res)
	if err != nil {
		return nil, err
	}
	c.token = res.AccessToken
	return &res, nil
}

// Check probes whether the installed token is accepted.
func (c *Client) Check(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/auth/check", nil, nil)
}

// ListNotes returns the note summaries of the authenticated user.
func (c *Client) ListNotes(ctx context.Context) ([]domain.NoteSummary, error) {
	var notes []domain.NoteSummary
	if err := c.do(ctx, http.MethodGet, "/notes", nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// GetNote fetches one note.
func (c *Client) GetNote(ctx context.Context, id string) (*domain.Note, error) {
	var note domain.Note
	if err := c.do(ctx, http.MethodGet, "/notes/"+id, nil, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

// CreateNote creates a note.
func (c *Client) CreateNote(ctx context.Context, title, content string, tags []string) (*domain.Note, error) {
	var note domain.Note
	err := c.do(ctx, http.MethodPost, "/notes", map[string]any{
		"title": title, "content": content, "tags": tags,
	}, &note)
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// UpdateNote replaces a note's title, content, and tags.
func (c *Client) UpdateNote(ctx context.Context, id, title, content string, tags []string) error {
	return c.do(ctx, http.MethodPut, "/notes/"+id, map[string]any{
		"title": title, "content": content, "tags": tags,
	}, nil)
}

// DeleteNote removes a note.
func (c *Client) DeleteNote(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/notes/"+id, nil, nil)
}

// Pin attaches a todo list to a note.
func (c *Client) Pin(ctx context.Context, noteID, listID string) error {
	return c.do(ctx, http.MethodPost, "/notes/"+noteID+"/pin/"+listID, nil, nil)
}

// Unpin detaches a todo list from a note.
func (c *Client) Unpin(ctx context.Context, noteID, listID string) error {
	return c.do(ctx, http.MethodDelete, "/notes/"+noteID+"/pin/"+listID, nil, nil)
}

// PinnedLists resolves the todo lists pinned to a note.
func (c *Client) PinnedLists(ctx context.Context, noteID string) ([]domain.TodoList, error) {
	var lists []domain.TodoList
	if err := c.do(ctx, http.MethodGet, "/notes/"+noteID+"/todolists", nil, &lists); err != nil {
		return nil, err
	}
	return lists, nil
}

// ListTodoLists returns every todo list of the authenticated user.
func (c *Client) ListTodoLists(ctx context.Context) ([]domain.TodoList, error) {
	var lists []domain.TodoList
	if err := c.do(ctx, http.MethodGet, "/todolists", nil, &lists); err != nil {
		return nil, err
	}
	return lists, nil
}

// GetTodoList fetches one todo list with its todos.
func (c *Client) GetTodoList(ctx context.Context, id string) (*domain.TodoList, error) {
	var list domain.TodoList
	if err := c.do(ctx, http.MethodGet, "/todolists/"+id, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// CreateTodoList creates an empty todo list.
func (c *Client) CreateTodoList(ctx context.Context, title string) (*domain.TodoList, error) {
	var list domain.TodoList
	if err := c.do(ctx, http.MethodPost, "/todolists", map[string]string{"title": title}, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// RenameTodoList changes a list's title.
func (c *Client) RenameTodoList(ctx context.Context, id, title string) error {
	return c.do(ctx, http.MethodPatch, "/todolists/"+id, map[string]string{"title": title}, nil)
}

// DeleteTodoList removes a list. Notes that pinned it keep their refs.
func (c *Client) DeleteTodoList(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/todolists/"+id, nil, nil)
}

// AddTodo appends a todo to a list.
func (c *Client) AddTodo(ctx context.Context, listID, title string, done bool, priority string) (*domain.Todo, error) {
	var todo domain.Todo
	err := c.do(ctx, http.MethodPost, "/todolists/"+listID+"/todos", map[string]any{
		"title": title, "status": done, "priority": priority,
	}, &todo)
	if err != nil {
		return nil, err
	}
	return &todo, nil
}

// ModifyTodo replaces a todo's title, status, and priority in place.
func (c *Client) ModifyTodo(ctx context.Context, listID, todoID, title string, done bool, priority string) error {
	return c.do(ctx, http.MethodPut, "/todolists/"+listID+"/todos/"+todoID, map[string]any{
		"title": title, "status": done, "priority": priority,
	}, nil)
}

// RemoveTodo deletes a todo from its list.
func (c *Client) RemoveTodo(ctx context.Context, listID, todoID string) error {
	return c.do(ctx, http.MethodDelete, "/todolists/"+listID+"/todos/"+todoID, nil, nil)
}

// Health checks the server health endpoint.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}
