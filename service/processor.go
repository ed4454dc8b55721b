package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"lob/api/wire"
	"lob/domain/book"
	"lob/feed"
	"lob/infra/sequence"
)

// ResultSink receives the structured result of each feed-borne query.
// The render package implements it for the console.
type ResultSink interface {
	BestBidOffer(bid book.Quote, bidOK bool, ask book.Quote, askOK bool)
	Level(side book.Side, n int, price int64, ok bool, available int)
	Totals(kind feed.TotalKind, value int64)
	Depth(symbol string, asks, bids []book.LevelSummary)
	EmptyBook()
}

// ExecutionJournal records execution events durably before they are
// broadcast. The pebble outbox satisfies it.
type ExecutionJournal interface {
	Append(seq uint64, payload []byte) error
}

// DepthSink publishes depth snapshots. The Kafka depth publisher
// satisfies it.
type DepthSink interface {
	Publish(ctx context.Context, symbol string, asks, bids []book.LevelSummary) error
}

// ErrStopped is returned to queries arriving after the loop ended.
var ErrStopped = errors.New("service: processor stopped")

// Query results handed back over the API path.

type BBOResult struct {
	Bid   book.Quote
	BidOK bool
	Ask   book.Quote
	AskOK bool
}

type LevelResult struct {
	Price     int64
	Found     bool
	Available int
}

type DepthResult struct {
	Symbol string
	Asks   []book.LevelSummary
	Bids   []book.LevelSummary
	Empty  bool
}

type request struct {
	cmd   feed.Command
	reply chan any // nil: render to the sink instead
}

// Processor applies commands strictly sequentially.
type Processor struct {
	log     *zap.Logger
	pair    *book.BookPair
	seq     *sequence.Sequencer
	sink    ResultSink
	journal ExecutionJournal // optional
	depth   DepthSink        // optional

	reqs chan request
	done chan struct{}
}

// NewProcessor wires all dependencies. journal and depth may be nil
// when publishing is disabled.
func NewProcessor(
	log *zap.Logger,
	pair *book.BookPair,
	seq *sequence.Sequencer,
	sink ResultSink,
	journal ExecutionJournal,
	depth DepthSink,
) *Processor {
	return &Processor{
		log:     log,
		pair:    pair,
		seq:     seq,
		sink:    sink,
		journal: journal,
		depth:   depth,
		reqs:    make(chan request),
		done:    make(chan struct{}),
	}
}

// Run consumes commands until a Terminate arrives or ctx is cancelled.
// The final aggregate report goes out before returning.
func (p *Processor) Run(ctx context.Context) error {
	defer close(p.done)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case req := <-p.reqs:
			if _, stop := req.cmd.(feed.Terminate); stop {
				p.finalReport(ctx)
				if req.reply != nil {
					req.reply <- nil
				}
				return nil
			}
			res := p.apply(ctx, req.cmd)
			if req.reply != nil {
				req.reply <- res
			} else {
				p.render(res)
			}
		}
	}
}

// Done is closed once the loop has exited.
func (p *Processor) Done() <-chan struct{} { return p.done }

// Submit hands a feed command to the loop. Query results are rendered
// to the sink. Returns false once the processor has stopped.
func (p *Processor) Submit(cmd feed.Command) bool {
	select {
	case p.reqs <- request{cmd: cmd}:
		return true
	case <-p.done:
		return false
	}
}

// ask funnels an API query through the loop so it observes the book
// between commands, never mid-mutation.
func (p *Processor) ask(ctx context.Context, cmd feed.Command) (any, error) {
	reply := make(chan any, 1)
	select {
	case p.reqs <- request{cmd: cmd, reply: reply}:
	case <-p.done:
		return nil, ErrStopped
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case res := <-reply:
		return res, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// QueryBBO answers a best-bid-offer query on the API path.
func (p *Processor) QueryBBO(ctx context.Context) (BBOResult, error) {
	res, err := p.ask(ctx, feed.QueryBestBidOffer{})
	if err != nil {
		return BBOResult{}, err
	}
	return res.(BBOResult), nil
}

// QueryLevel answers an n-th level query on the API path.
func (p *Processor) QueryLevel(ctx context.Context, side book.Side, n int) (LevelResult, error) {
	res, err := p.ask(ctx, feed.QueryLevel{Side: side, N: n})
	if err != nil {
		return LevelResult{}, err
	}
	return res.(levelResult).LevelResult, nil
}

// QueryTotals answers a counter query on the API path.
func (p *Processor) QueryTotals(ctx context.Context, kind feed.TotalKind) (int64, error) {
	res, err := p.ask(ctx, feed.QueryTotals{Kind: kind})
	if err != nil {
		return 0, err
	}
	return res.(totalsResult).value, nil
}

// QueryDepth answers a depth query on the API path. An empty symbol
// selects the symbol with the largest combined remaining volume.
func (p *Processor) QueryDepth(ctx context.Context, symbol string) (DepthResult, error) {
	var cmd feed.Command = feed.QueryHighestSymbolDepth{}
	if symbol != "" {
		cmd = depthForSymbol{symbol: symbol}
	}
	res, err := p.ask(ctx, cmd)
	if err != nil {
		return DepthResult{}, err
	}
	return res.(DepthResult), nil
}

// depthForSymbol is an API-only command: a depth report for an
// explicit symbol rather than the highest-volume one.
type depthForSymbol struct{ symbol string }

func (depthForSymbol) IsCommand() {}

/******************** loop internals ********************/

func (p *Processor) apply(ctx context.Context, cmd feed.Command) any {
	switch c := cmd.(type) {
	case feed.AddOrder:
		p.applyAdd(c)
	case feed.Execute:
		p.applyExecute(ctx, c)
	case feed.Cancel:
		if _, found := p.pair.Cancel(c.ID, c.Shares); !found {
			p.log.Debug("cancel for unknown order", zap.String("id", c.ID))
		}
	case feed.QueryBestBidOffer:
		bid, bidOK, ask, askOK := p.pair.BestBidOffer()
		return BBOResult{Bid: bid, BidOK: bidOK, Ask: ask, AskOK: askOK}
	case feed.QueryLevel:
		price, ok, available := p.pair.Level(c.Side, c.N)
		return levelResult{side: c.Side, n: c.N, LevelResult: LevelResult{Price: price, Found: ok, Available: available}}
	case feed.QueryTotals:
		return totalsResult{kind: c.Kind, value: p.total(c.Kind)}
	case feed.QueryHighestSymbolDepth:
		return p.depthResult("")
	case depthForSymbol:
		return p.depthResult(c.symbol)
	}
	return nil
}

func (p *Processor) applyAdd(c feed.AddOrder) {
	// duplicate IDs are rejected here, before they can corrupt the
	// cross-side lookup; the book itself does not re-check
	if _, exists := p.pair.FindByID(c.ID); exists {
		p.log.Warn("duplicate order ID dropped", zap.String("id", c.ID))
		return
	}
	p.pair.AddOrder(c.Side, &book.Order{
		ID:     c.ID,
		Symbol: c.Symbol,
		Shares: c.Shares,
		Price:  c.Price,
	})
}

func (p *Processor) applyExecute(ctx context.Context, c feed.Execute) {
	exec, found := p.pair.Execute(c.ID, c.Shares)
	if !found {
		p.log.Debug("execute for unknown order", zap.String("id", c.ID))
		return
	}
	if p.journal == nil {
		return
	}

	seq := p.seq.Next()
	event := wire.ExecutionEvent{
		Seq:     seq,
		OrderID: exec.OrderID,
		Symbol:  exec.Symbol,
		Side:    uint32(exec.Side),
		Price:   exec.Price,
		Shares:  exec.Consumed,
		MatchID: c.MatchID,
		Removed: exec.Removed,
	}
	if err := p.journal.Append(seq, event.MarshalWire()); err != nil {
		p.log.Error("journal append failed",
			zap.Uint64("seq", seq),
			zap.String("id", exec.OrderID),
			zap.Error(err),
		)
	}
}

func (p *Processor) total(kind feed.TotalKind) int64 {
	if kind == feed.TotalShares {
		return p.pair.Ledger().SharesExecuted
	}
	return p.pair.Ledger().Executions
}

func (p *Processor) depthResult(symbol string) DepthResult {
	if symbol == "" {
		if p.pair.Empty() {
			return DepthResult{Empty: true}
		}
		symbol = p.pair.TopSymbolByVolume()
	}
	asks, bids := p.collectDepth(symbol)
	return DepthResult{Symbol: symbol, Asks: asks, Bids: bids}
}

func (p *Processor) collectDepth(symbol string) (asks, bids []book.LevelSummary) {
	p.pair.DepthReport(symbol, func(side book.Side, l book.LevelSummary) bool {
		if side == book.Ask {
			asks = append(asks, l)
		} else {
			bids = append(bids, l)
		}
		return true
	})
	return asks, bids
}

// levelResult and totalsResult carry the query context needed for
// console rendering; the API path unwraps the inner values.
type levelResult struct {
	side book.Side
	n    int
	LevelResult
}

type totalsResult struct {
	kind  feed.TotalKind
	value int64
}

func (p *Processor) render(res any) {
	switch r := res.(type) {
	case BBOResult:
		p.sink.BestBidOffer(r.Bid, r.BidOK, r.Ask, r.AskOK)
	case levelResult:
		p.sink.Level(r.side, r.n, r.Price, r.Found, r.Available)
	case totalsResult:
		p.sink.Totals(r.kind, r.value)
	case DepthResult:
		if r.Empty {
			p.sink.EmptyBook()
			return
		}
		p.sink.Depth(r.Symbol, r.Asks, r.Bids)
	}
}

// finalReport emits the highest-volume depth report on shutdown, both
// to the console sink and to the depth publisher when one is wired.
func (p *Processor) finalReport(ctx context.Context) {
	res := p.depthResult("")
	p.render(res)
	if res.Empty || p.depth == nil {
		return
	}
	if err := p.depth.Publish(ctx, res.Symbol, res.Asks, res.Bids); err != nil {
		p.log.Error("depth publish failed",
			zap.String("symbol", res.Symbol),
			zap.Error(err),
		)
	}
}
