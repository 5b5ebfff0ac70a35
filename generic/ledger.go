/*
ledger.go - Chronological event stream

PURPOSE:
  The engine never looks at obligations and payments as two separate lists.
  It merges them into one stream of dated events and replays that stream.
  Debits and credits are immutable inputs; balances are always derived by
  replay, there is no stored balance that can get out of sync.

ORDERING:
  Obligations are appended first, then payments, each in caller order, and
  the stream is stably sorted by date. On a shared date every debit is
  therefore processed before any credit, and same-kind events keep the
  caller's order. The sort must stay stable.

EXAMPLE FLOW:
  obligations: [rent Q1 due 04-10, rent Q2 due 07-10]
  payments:    [1000 on 04-10, 500 on 05-02]

  stream: debit(Q1, 04-10), credit(1000, 04-10), credit(500, 05-02), debit(Q2, 07-10)

SEE ALSO:
  - waterfall.go: Replays the stream
*/
package generic

import "sort"

// =============================================================================
// LEDGER EVENT
// =============================================================================

type EventKind int

const (
	EventDebit  EventKind = iota // An obligation falls due
	EventCredit                  // A payment is received
)

func (k EventKind) String() string {
	if k == EventDebit {
		return "debit"
	}
	return "credit"
}

// LedgerEvent points back into the caller's slices by index.
type LedgerEvent struct {
	At    Date
	Kind  EventKind
	Index int
}

// BuildEventStream merges obligations and payments into one stably sorted stream.
func BuildEventStream(obligations []Obligation, payments []Payment) []LedgerEvent {
	events := make([]LedgerEvent, 0, len(obligations)+len(payments))
	for i, o := range obligations {
		events = append(events, LedgerEvent{At: o.DueDate, Kind: EventDebit, Index: i})
	}
	for i, p := range payments {
		events = append(events, LedgerEvent{At: p.ReceivedDate, Kind: EventCredit, Index: i})
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].At.Before(events[j].At)
	})
	return events
}
