package book

// LevelSummary is one distinct price level as seen by a symbol-filtered
// traversal: aggregate remaining shares and order count for that symbol
// only.
type LevelSummary struct {
	Price  int64
	Shares int64
	Orders int
}

// Quote is a best-price report: the level's price plus the ID of one
// order resting there.
type Quote struct {
	Price   int64
	OrderID string
}

// SideBook is one half of the ledger. It keeps every resting order
// under two views of the same set: byID for O(1) lookup and an ordered
// price tree for traversal. All mutation goes through Insert and
// ReduceOrRemove so the two views cannot diverge.
//
// Which end of the tree is "best" is fixed per side at construction:
// highest price for bids, lowest for asks.
type SideBook struct {
	side   Side
	byID   map[string]*Order
	levels *rbTree
}

// NewSideBook constructs an empty book for one market side.
func NewSideBook(side Side) *SideBook {
	return &SideBook{
		side:   side,
		byID:   make(map[string]*Order),
		levels: newRBTree(),
	}
}

func (b *SideBook) Side() Side { return b.side }

// Len is the number of resting orders.
func (b *SideBook) Len() int { return len(b.byID) }

// Levels is the number of distinct price levels.
func (b *SideBook) Levels() int { return b.levels.Size() }

// Insert adds a new resting order to both views. The order's ID must
// not already be present on this side; the upstream validator rejects
// duplicate adds, the book does not re-check.
func (b *SideBook) Insert(o *Order) {
	o.Side = b.side
	b.byID[o.ID] = o
	b.levels.UpsertLevel(o.Price).Enqueue(o)
}

// FindByID returns the resting order holding id, if any.
func (b *SideBook) FindByID(id string) (*Order, bool) {
	o, ok := b.byID[id]
	return o, ok
}

// ReduceOrRemove consumes up to qty shares from the order holding id.
// A partial consume decrements shares in place; consuming the full
// remaining size removes the order from both views, dropping its price
// level when it empties. Returns the shares actually consumed, 0 when
// id is absent.
func (b *SideBook) ReduceOrRemove(id string, qty int64) int64 {
	o, ok := b.byID[id]
	if !ok {
		return 0
	}
	if o.Shares > qty {
		o.Shares -= qty
		lvl := b.levels.FindLevel(o.Price)
		lvl.TotalShares -= qty
		return qty
	}

	consumed := o.Shares
	lvl := b.levels.FindLevel(o.Price)
	lvl.Unlink(o)
	if lvl.head == nil {
		b.levels.DeleteLevel(o.Price)
	}
	delete(b.byID, id)
	return consumed
}

// BestQuote reports the best price level for this side and one order
// resting at it. ok is false when the side is empty.
func (b *SideBook) BestQuote() (Quote, bool) {
	var lvl *PriceLevel
	if b.side == Bid {
		lvl = b.levels.MaxLevel()
	} else {
		lvl = b.levels.MinLevel()
	}
	if lvl == nil {
		return Quote{}, false
	}
	return Quote{Price: lvl.Price, OrderID: lvl.head.ID}, true
}

// BestPrice is BestQuote without the order ID.
func (b *SideBook) BestPrice() (int64, bool) {
	q, ok := b.BestQuote()
	return q.Price, ok
}

// NthLevelPrice returns the price of the n-th distinct level counting
// from the best end, 1-indexed. A level is a distinct price, not a
// distinct order. When fewer than n levels exist, ok is false and
// available reports how many there are.
func (b *SideBook) NthLevelPrice(n int) (price int64, ok bool, available int) {
	available = b.levels.Size()
	if n < 1 || n > available {
		return 0, false, available
	}

	walk := b.levels.ForEachAscending
	if b.side == Bid {
		walk = b.levels.ForEachDescending
	}
	i := 0
	walk(func(lvl *PriceLevel) bool {
		i++
		if i == n {
			price = lvl.Price
			ok = true
			return false
		}
		return true
	})
	return price, ok, available
}

// LevelsForSymbol walks all distinct price levels in ascending price
// order, reporting aggregate shares and order count for orders whose
// symbol matches. Levels with no matching order are skipped. The walk
// stops early when fn returns false; calling again restarts from the
// lowest price.
func (b *SideBook) LevelsForSymbol(symbol string, fn func(LevelSummary) bool) {
	b.levels.ForEachAscending(func(lvl *PriceLevel) bool {
		shares, count := lvl.SymbolTotals(symbol)
		if count == 0 {
			return true
		}
		return fn(LevelSummary{Price: lvl.Price, Shares: shares, Orders: count})
	})
}

// forEachOrder visits every resting order on this side in ascending
// price order.
func (b *SideBook) forEachOrder(fn func(*Order)) {
	b.levels.ForEachAscending(func(lvl *PriceLevel) bool {
		for o := lvl.head; o != nil; o = o.next {
			fn(o)
		}
		return true
	})
}
