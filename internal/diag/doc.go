// Package diag defines the diagnostic model shared by all pipeline phases.
//
//   - Diagnostic is the central record: Severity, Code, Message, a primary
//     source.Span and optional Notes.
//   - Bag aggregates diagnostics with a cap, sorting and deduplication.
//   - Reporter decouples emission from storage; BagReporter is the default
//     implementation.
//
// Package diag performs no formatting or IO. Rendering lives in
// internal/diagfmt; orchestration lives in internal/driver.
//
// Every failure of the caption pipeline is reported through this package:
// syntax errors from the directive parser, validation errors from the
// document builder, encoding errors from the serializer and unsupported
// format errors from the interop adapters. Nothing here terminates the
// process — diagnostics are data handed back to the caller.
package diag
