package book

// Side selects one half of a BookPair.
type Side uint8

const (
	Bid Side = iota
	Ask
)

func (s Side) String() string {
	if s == Bid {
		return "bid"
	}
	return "ask"
}

// PriceScale is the fixed-point denominator for Order.Price. A raw
// feed price of 1000000 means 100.0000.
const PriceScale = 10_000

// Order is a single resting order. Price is an integer scaled by
// PriceScale so level grouping and comparison stay exact. Only Shares
// ever changes after insertion, only downward, and only through
// SideBook.ReduceOrRemove.
type Order struct {
	ID     string
	Symbol string
	Shares int64
	Price  int64
	Side   Side

	next, prev *Order // queue inside a price level
}

// Next walks the intra-level queue. Read-only access for iteration.
func (o *Order) Next() *Order { return o.next }
