// Package audit defines the audit event model and the sink
// implementations the engine dispatcher fans out to. Sinks must be safe
// for concurrent use; the dispatcher serializes emission but tests may
// call sinks directly.
package audit
