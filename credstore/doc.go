// Package credstore defines credential persistence for push
// verification enrollments and ships an in-memory store plus a
// PostgreSQL store. The engine only depends on the Store interface.
package credstore
