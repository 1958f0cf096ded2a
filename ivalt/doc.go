// Package ivalt implements the HTTP client contract for the iVALT biometric
// verification API: submitting a push challenge to a user's mobile device and
// checking its asynchronous outcome.
//
// # Architecture boundaries
//
// The client is stateless and retry-free. Polling cadence, attempt budgets,
// and timeout policy belong to the state machines in the root package; this
// package only performs single request/response exchanges and classifies the
// raw responses through [Classify].
//
// # What this package must NOT do
//
//   - Retry or poll on its own.
//   - Persist transaction state.
//   - Import the root package or any sibling package.
package ivalt
