// Package diag defines the diagnostic model shared by the scanner, the driver
// and the output formatters.
//
// # Purpose
//
//   - Provide deterministic, serialisable data structures that capture bracket
//     findings and I/O failures produced while checking files.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to concrete storage or formatting layers.
//
// # Scope
//
// Package diag does not perform any formatting, IO, or CLI integration.
// Rendering responsibilities live in internal/checkfmt; orchestration lives
// in internal/driver.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – the canonical source.Span pointing to the offending byte.
//   - Notes – optional secondary spans/messages for additional context, e.g.
//     the position of the open bracket a mismatched closer conflicts with.
//
// Notes should be used sparingly: each note must add new context rather than
// repeating the diagnostic message.
//
// # Emitting diagnostics
//
// Producers use a diag.Reporter to decouple emission from storage. The
// scanner constructs a ReportBuilder via NewReportBuilder (or the helper
// functions ReportError/ReportWarning/ReportInfo) and chains WithNote before
// calling Emit. When no metadata is needed, producers may call
// Reporter.Report(...) directly. diag.BagReporter aggregates diagnostics
// into a Bag, which supports sorting, deduplication and merging.
//
// Keep the data model deterministic and side-effect free so the CLI and the
// driver's disk cache can safely serialise diagnostics.
package diag
