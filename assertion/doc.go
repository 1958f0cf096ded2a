// Package assertion issues short-lived signed tokens attesting that a
// push challenge was approved, so downstream services can trust the
// second factor without re-checking the remote service.
package assertion
