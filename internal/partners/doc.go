// Package partners manages the governance collective's roster: capacity-
// bounded enrollment, recovery phrase distribution and acknowledgement,
// named seat assignment, and merit-based succession when a seat is revoked.
//
// Succession ranks partners by burned trust descending, tally accumulated
// descending as tiebreaker, and assigns the first candidate not already
// holding an active seat. The ordering is exposed via RankByBurnedTrust so
// the ranking used internally is auditable.
package partners
