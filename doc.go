// Package holdings computes, per (client account, security), a running
// equity position from an unordered bag of buy/sell transactions
// interleaved with corporate actions (bonus issues, stock splits). It is
// designed to sit inside reporting and export pipelines that must never
// abort on one bad record, so it degrades deterministically instead of
// raising errors.
//
// The core functionalities include:
//   - Record Adaptation: Converting loosely shaped transaction, bonus and
//     split objects (inconsistent field naming, ambiguous date formats)
//     into one canonical record shape at the data-access boundary.
//   - Event Sequencing: Merging the three record kinds into one
//     chronologically ordered stream with an explicit, documented
//     tie-break for same-date events.
//   - Lot Ledger: A FIFO queue of open purchase lots folded over the
//     event stream, tracking holdings, cost basis, weighted average price
//     and realized profit/loss, and re-lotting every open position when a
//     split occurs.
//   - Projection: Rendering either the full per-event ledger or a single
//     summary card from the same computed state, so the two views are
//     always consistent.
//   - Data Persistence: Encoding and decoding record sets to and from
//     JSONL streams.
//
// This package serves as the foundational logic for the `eql`
// command-line tool.
package holdings
