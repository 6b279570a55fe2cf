// Package store provides GORM-backed persistence for users, conversations
// and messages. All methods take a context and operate on the shared
// connection handle passed in at construction.
package store

import "errors"

// ErrNotFound is returned when the requested row does not exist.
var ErrNotFound = errors.New("record not found")
