// Package render turns structured query results into console text.
// Nothing in here mutates or reads the book directly; the processor
// hands over values and unavailability signals and this package only
// formats them.
package render

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"lob/domain/book"
	"lob/feed"
)

// Console writes human-readable query results to one writer.
type Console struct {
	w io.Writer
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

// Price renders a scaled price as a 4-decimal string. The scaled
// integer is carried everywhere else; decimal conversion happens only
// here.
func Price(scaled int64) string {
	return decimal.New(scaled, -4).StringFixed(4)
}

func (c *Console) BestBidOffer(bid book.Quote, bidOK bool, ask book.Quote, askOK bool) {
	if bidOK {
		fmt.Fprintf(c.w, "Highest bid: %s (order %s)\n", Price(bid.Price), bid.OrderID)
	} else {
		fmt.Fprintln(c.w, "No bid orders remaining")
	}
	if askOK {
		fmt.Fprintf(c.w, "Lowest ask: %s (order %s)\n", Price(ask.Price), ask.OrderID)
	} else {
		fmt.Fprintln(c.w, "No ask orders remaining")
	}
}

func (c *Console) Level(side book.Side, n int, price int64, ok bool, available int) {
	name := "BUY"
	if side == book.Ask {
		name = "SELL"
	}
	if ok {
		fmt.Fprintf(c.w, "%s LEVEL %d: %s\n", name, n, Price(price))
		return
	}
	fmt.Fprintf(c.w, "%s LEVEL %d: only %d price levels\n", name, n, available)
}

func (c *Console) Totals(kind feed.TotalKind, value int64) {
	if kind == feed.TotalShares {
		fmt.Fprintf(c.w, "Total shares executed: %d\n", value)
		return
	}
	fmt.Fprintf(c.w, "Total number of executions: %d\n", value)
}

// Depth prints the report for one symbol: ask levels first, then bid
// levels, both in ascending price order.
func (c *Console) Depth(symbol string, asks, bids []book.LevelSummary) {
	fmt.Fprintf(c.w, "Depth for %s:\n", symbol)
	for _, l := range asks {
		c.depthRow("ASK", l)
	}
	for _, l := range bids {
		c.depthRow("BID", l)
	}
}

// EmptyBook covers the depth query on an empty book, which the ledger
// itself refuses to answer.
func (c *Console) EmptyBook() {
	fmt.Fprintln(c.w, "No orders remaining")
}

func (c *Console) depthRow(side string, l book.LevelSummary) {
	unit := "orders"
	if l.Orders == 1 {
		unit = "order"
	}
	fmt.Fprintf(c.w, "  %s %s x%d (%d %s)\n", side, Price(l.Price), l.Shares, l.Orders, unit)
}
