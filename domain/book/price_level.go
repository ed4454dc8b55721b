package book

import "fmt"

// PriceLevel holds all resting orders at a given scaled price.
// Arrival order within a level is kept but carries no priority
// guarantee.
type PriceLevel struct {
	Price       int64
	head        *Order
	tail        *Order
	TotalShares int64
	Count       int
}

// Enqueue appends an order at the end of this price level.
func (lvl *PriceLevel) Enqueue(o *Order) {
	if lvl.tail != nil {
		lvl.tail.next = o
		o.prev = lvl.tail
	} else {
		lvl.head = o
	}
	lvl.tail = o
	lvl.TotalShares += o.Shares
	lvl.Count++
}

// Unlink removes an order from the level queue. The order must belong
// to this level.
func (lvl *PriceLevel) Unlink(o *Order) {
	if o.prev != nil {
		o.prev.next = o.next
	} else {
		lvl.head = o.next
	}
	if o.next != nil {
		o.next.prev = o.prev
	} else {
		lvl.tail = o.prev
	}
	lvl.TotalShares -= o.Shares
	lvl.Count--
	o.next, o.prev = nil, nil
}

// Head returns the first order in the level queue, nil when empty.
func (lvl *PriceLevel) Head() *Order { return lvl.head }

// SymbolTotals sums shares and counts orders at this level whose
// symbol matches.
func (lvl *PriceLevel) SymbolTotals(symbol string) (shares int64, count int) {
	for o := lvl.head; o != nil; o = o.next {
		if o.Symbol == symbol {
			shares += o.Shares
			count++
		}
	}
	return shares, count
}

// String formats this price level for logging.
func (lvl *PriceLevel) String() string {
	return fmt.Sprintf("PriceLevel{Price=%d, Orders=%d, TotalShares=%d}", lvl.Price, lvl.Count, lvl.TotalShares)
}
