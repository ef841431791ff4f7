// Package service provides the domain services for FlexNotes.
//
// TokenService issues and verifies signed access/refresh tokens,
// AuthService implements the registration and login protocols,
// NoteService and TodoListService provide owner-scoped operations over
// their repositories. Storage is abstracted behind repository
// interfaces defined next to the services that consume them.
package service
