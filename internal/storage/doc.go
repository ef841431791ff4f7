// Package storage provides the embedded key-value layer for FlexNotes.
//
// The KVEngine interface exposes transactional access to an embedded
// store; BadgerEngine is the production implementation. The document
// repositories in storage/docstore map domain objects onto it, and
// storage/memory provides a volatile alternative for development.
package storage
