// Package audit provides the append-only security event ledger.
//
// Every state mutation in the governance core produces exactly one security
// event (pure reads excepted, with the deliberate exception of recovery
// phrase and credential access, which are forensically interesting reads).
//
// # Severity
//
// Events are classified at write time from their type:
//
//   - CRITICAL: phrase generation/restore, seat revocation
//   - HIGH: unauthorized access attempts, non-partner declarations, rate breaches
//   - MEDIUM: phrase/credential access, key revocation (and unknown types)
//   - LOW: routine lifecycle events (enrollment, acknowledgement, key usage)
//
// # Storage
//
// Two sinks, written together:
//
//   - a hot JSON store capped at the most recent 1000 events, queryable by
//     severity, newest first
//   - an unbounded day-partitioned file (audit-logs/governance-YYYY-MM-DD.log)
//     with one formatted line per event
//
// # Failure Handling
//
// Recording is best-effort. If a sink fails (permissions, disk full), the
// operation that produced the event continues without error; an unauthorized
// access attempt is still rejected even when it cannot be logged.
package audit
