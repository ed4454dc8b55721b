// Package feed parses the line-oriented command stream into the typed
// commands the ledger consumes. All field-shape validation lives here:
// the book trusts whatever the parser lets through.
package feed

import "lob/domain/book"

// TotalKind selects which execution counter a totals query reads.
type TotalKind uint8

const (
	TotalShares TotalKind = iota
	TotalExecutions
)

// Command is the closed set of inputs the processor applies in arrival
// order.
type Command interface {
	IsCommand()
}

// AddOrder rests a new order. Price arrives already scaled by
// book.PriceScale.
type AddOrder struct {
	ID     string
	Side   book.Side
	Symbol string
	Shares int64
	Price  int64
}

// Execute reports that shares of a resting order were filled
// elsewhere. MatchID identifies the fill on the wire; it is carried
// for event publishing but plays no part in book mutation.
type Execute struct {
	ID      string
	Shares  int64
	MatchID string
}

// Cancel withdraws shares of a resting order.
type Cancel struct {
	ID     string
	Shares int64
}

// QueryBestBidOffer asks for the best quote on each side.
type QueryBestBidOffer struct{}

// QueryLevel asks for the n-th distinct price level from the best end
// of one side.
type QueryLevel struct {
	Side book.Side
	N    int
}

// QueryTotals asks for one of the execution counters.
type QueryTotals struct {
	Kind TotalKind
}

// QueryHighestSymbolDepth asks for the depth report of the symbol with
// the largest combined remaining volume.
type QueryHighestSymbolDepth struct{}

// Terminate ends the stream; the processor emits the final report and
// stops.
type Terminate struct{}

func (AddOrder) IsCommand()                {}
func (Execute) IsCommand()                 {}
func (Cancel) IsCommand()                  {}
func (QueryBestBidOffer) IsCommand()       {}
func (QueryLevel) IsCommand()              {}
func (QueryTotals) IsCommand()             {}
func (QueryHighestSymbolDepth) IsCommand() {}
func (Terminate) IsCommand()               {}
