// Package domain defines the core domain models for FlexNotes:
// users, notes, todo lists and the error taxonomy shared by the
// service and storage layers.
package domain
