// Package ivaltauth provides a re-entrant push-verification engine for
// out-of-band multi-factor authentication: it submits biometric push
// challenges to the iVALT service, classifies the polled outcomes, and
// manages enrollment of the mobile identity each user verifies against.
//
// The engine is built for host flow engines that drive the user
// interaction themselves (a login form, a waiting page, a capture
// form). Every Engine method runs exactly one step of a flow and
// returns; all in-flight state rides in the caller's session notes, so
// the same attempt can resume on any process after any invocation.
//
// # Architecture boundaries
//
// ivaltauth is the public surface. It exposes [Engine], [Builder],
// [Config], and value types (AuthResult, EnrollResult,
// MetricsSnapshot). The remote wire protocol lives in the ivalt
// sub-package, credential persistence behind [credstore.Store], and
// audit dispatch under internal/.
//
// # What this package must NOT do
//
//   - Sleep, tick, or spawn pollers. The host owns the cadence; the
//     engine performs at most one remote call per invocation.
//   - Surface raw transport failures. Every remote outcome is
//     classified into a FailureReason before it reaches the host.
//   - Store per-attempt state anywhere but the caller's session notes.
package ivaltauth
