// Package storage is the client's local persistence layer.
//
// It opens an SQLite database (pure-Go modernc.org/sqlite driver), applies
// the embedded goose migrations and exposes a key/value repository over the
// metadata table. Store layers JSON encoding on top so callers can persist
// structured values (the current session, the saved-account list) under
// string keys. No business rules live here.
package storage
