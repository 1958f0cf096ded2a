// Package session supplies note backings for the engine's re-entrant
// flows: an in-memory map for hosts that already carry attempt state,
// and a redis-backed store for hosts that poll through stateless
// frontends.
package session
