// Package store is the persistence layer: whole-document collections
// loaded and rewritten in full on every access. The interface is the seam
// for swapping the flat-file backend for a real database later without
// touching repository logic.
package store

import "context"

const (
	CollectionUsers    = "users"
	CollectionLikes    = "likes"
	CollectionComments = "comments"
)

// Store reads and rewrites entire collection documents.
//
// Load fills dest with the collection content, leaving dest at its zero
// value when the collection does not exist yet. Update runs mutate with
// dest filled the same way and, when mutate reports dirty, persists dest
// back as the new document. The load-mutate-save sequence is serialized
// per collection so concurrent writers cannot lose updates.
type Store interface {
	Load(ctx context.Context, collection string, dest interface{}) error
	Update(ctx context.Context, collection string, dest interface{}, mutate func() (dirty bool, err error)) error
}
