// Package store provides SQLite-backed storage for checker run history.
//
// Each harness execution can be recorded as one run plus its ordered
// diagnostics, giving CI a queryable ledger of how the checker's
// behavior moved over time.
//
// Tables:
//   - runs: one row per scenario execution (pass/fail, target, config)
//   - diagnostics: the parsed report, positionally indexed per run
//
// Ordering discipline: all queries order by seq ASC, id ASC COLLATE
// BINARY. Logical seq, never wall time, drives ordering so test
// fixtures and replays are deterministic; created_at exists only for
// humans reading the ledger.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: diagnostics cannot outlive their run
package store
