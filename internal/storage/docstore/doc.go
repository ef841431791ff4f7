// Package docstore implements the service repository interfaces on top
// of a storage.KVEngine.
//
// Documents are stored as JSON under owner-prefixed keys, so every
// lookup is scoped to its owner by key construction. Read-modify-write
// operations run inside a single engine transaction.
package docstore
