// Package audit provides the buffered audit event dispatcher and the sink
// implementations shared through the root package.
//
// # What this package must NOT do
//
//   - Block callers on sink latency unless DropIfFull is disabled.
//   - Import authgate or any sibling package.
package audit
