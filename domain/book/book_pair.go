package book

// Execution describes the effect of a successful execute command,
// captured before the order may be removed.
type Execution struct {
	OrderID  string
	Symbol   string
	Side     Side
	Price    int64
	Consumed int64
	Removed  bool
}

// BookPair joins the bid and ask ledgers for one symbol universe and
// owns the execution counters they feed.
//
// Execute and cancel commands carry only an order ID, no side, so the
// pair relies on IDs being unique across both sides. Lookup policy:
// the bid side is checked first, then the ask side, first match wins.
// Inserting the same ID on both sides is a precondition violation; if
// it ever happens the bid entry shadows the ask entry until removed.
type BookPair struct {
	bids   *SideBook
	asks   *SideBook
	ledger *ExecutionLedger
}

// NewBookPair wires a fresh pair of side books to the given ledger.
func NewBookPair(ledger *ExecutionLedger) *BookPair {
	return &BookPair{
		bids:   NewSideBook(Bid),
		asks:   NewSideBook(Ask),
		ledger: ledger,
	}
}

func (p *BookPair) Ledger() *ExecutionLedger { return p.ledger }

// Empty reports whether no orders rest on either side.
func (p *BookPair) Empty() bool {
	return p.bids.Len() == 0 && p.asks.Len() == 0
}

// AddOrder rests a new order on the given side.
func (p *BookPair) AddOrder(side Side, o *Order) {
	p.sideBook(side).Insert(o)
}

// FindByID resolves an ID to its resting order, bid side first.
func (p *BookPair) FindByID(id string) (*Order, bool) {
	if o, ok := p.bids.FindByID(id); ok {
		return o, true
	}
	return p.asks.FindByID(id)
}

// Execute applies an external fill notification for id. On a hit it
// consumes min(resting shares, qty), bumps the ledger by one execution
// and the consumed shares, and reports what happened. An unknown ID is
// a silent no-op: found is false and the ledger is untouched.
func (p *BookPair) Execute(id string, qty int64) (exec Execution, found bool) {
	side := p.bids
	o, ok := side.FindByID(id)
	if !ok {
		side = p.asks
		o, ok = side.FindByID(id)
	}
	if !ok {
		return Execution{}, false
	}

	exec = Execution{
		OrderID: id,
		Symbol:  o.Symbol,
		Side:    o.Side,
		Price:   o.Price,
		Removed: o.Shares <= qty,
	}
	exec.Consumed = side.ReduceOrRemove(id, qty)
	p.ledger.recordExecution(exec.Consumed)
	return exec, true
}

// Cancel reduces or removes the order holding id without touching the
// ledger. Unknown IDs are a silent no-op.
func (p *BookPair) Cancel(id string, qty int64) (consumed int64, found bool) {
	if _, ok := p.bids.FindByID(id); ok {
		return p.bids.ReduceOrRemove(id, qty), true
	}
	if _, ok := p.asks.FindByID(id); ok {
		return p.asks.ReduceOrRemove(id, qty), true
	}
	return 0, false
}

// BestBidOffer reports the best quote on each side. A false flag means
// that side has no orders remaining.
func (p *BookPair) BestBidOffer() (bid Quote, bidOK bool, ask Quote, askOK bool) {
	bid, bidOK = p.bids.BestQuote()
	ask, askOK = p.asks.BestQuote()
	return bid, bidOK, ask, askOK
}

// Level returns the n-th distinct price level from the best end of the
// given side. On a shortfall ok is false and available carries the
// actual level count.
func (p *BookPair) Level(side Side, n int) (price int64, ok bool, available int) {
	return p.sideBook(side).NthLevelPrice(n)
}

// TopSymbolByVolume scans every resting order on both sides and picks
// the symbol with the largest total remaining shares; ties go to the
// lexicographically smallest symbol. Precondition: the book is not
// empty — callers must check Empty first, the result is meaningless
// otherwise.
func (p *BookPair) TopSymbolByVolume() string {
	totals := make(map[string]int64)
	accumulate := func(o *Order) {
		totals[o.Symbol] += o.Shares
	}
	p.bids.forEachOrder(accumulate)
	p.asks.forEachOrder(accumulate)

	var top string
	var topShares int64
	for sym, shares := range totals {
		if shares > topShares || (shares == topShares && (top == "" || sym < top)) {
			top = sym
			topShares = shares
		}
	}
	return top
}

// DepthReport walks the symbol's populated price levels, ask side
// first, both sides in ascending price order. The bid side is not
// flipped best-to-worst; downstream consumers rely on this exact
// ordering.
func (p *BookPair) DepthReport(symbol string, fn func(Side, LevelSummary) bool) {
	stopped := false
	p.asks.LevelsForSymbol(symbol, func(l LevelSummary) bool {
		if !fn(Ask, l) {
			stopped = true
			return false
		}
		return true
	})
	if stopped {
		return
	}
	p.bids.LevelsForSymbol(symbol, func(l LevelSummary) bool {
		return fn(Bid, l)
	})
}

func (p *BookPair) sideBook(side Side) *SideBook {
	if side == Bid {
		return p.bids
	}
	return p.asks
}
