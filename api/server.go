// Package api exposes the ledger's read-side queries over gRPC using
// the hand-rolled lobwire codec. Every handler funnels through the
// processor's query channel, so replies observe the book exactly as of
// the last applied command.
package api

import (
	"context"
	"net"

	"go.uber.org/zap"
	"google.golang.org/grpc"

	"lob/api/wire"
	"lob/domain/book"
	"lob/feed"
	"lob/service"
)

const ServiceName = "lob.Query"

// QueryBackend is what the server needs from the processor.
type QueryBackend interface {
	QueryBBO(ctx context.Context) (service.BBOResult, error)
	QueryLevel(ctx context.Context, side book.Side, n int) (service.LevelResult, error)
	QueryTotals(ctx context.Context, kind feed.TotalKind) (int64, error)
	QueryDepth(ctx context.Context, symbol string) (service.DepthResult, error)
}

// Server adapts a QueryBackend to the lob.Query gRPC service.
type Server struct {
	log     *zap.Logger
	backend QueryBackend
	grpc    *grpc.Server
}

func NewServer(log *zap.Logger, backend QueryBackend) *Server {
	s := &Server{log: log, backend: backend}
	s.grpc = grpc.NewServer(grpc.ForceServerCodec(wire.Codec{}))
	s.grpc.RegisterService(&queryServiceDesc, s)
	return s
}

// Serve blocks on the listener until Stop is called.
func (s *Server) Serve(lis net.Listener) error {
	s.log.Info("query server listening", zap.String("addr", lis.Addr().String()))
	return s.grpc.Serve(lis)
}

func (s *Server) Stop() {
	s.grpc.GracefulStop()
}

// -------------------- handlers --------------------

// queryHandler pins the handler surface the descriptor registers.
type queryHandler interface {
	bestBidOffer(context.Context, *wire.BBORequest) (*wire.BBOReply, error)
	level(context.Context, *wire.LevelRequest) (*wire.LevelReply, error)
	totals(context.Context, *wire.TotalsRequest) (*wire.TotalsReply, error)
	depth(context.Context, *wire.DepthRequest) (*wire.DepthReply, error)
}

func (s *Server) bestBidOffer(ctx context.Context, _ *wire.BBORequest) (*wire.BBOReply, error) {
	res, err := s.backend.QueryBBO(ctx)
	if err != nil {
		return nil, err
	}
	reply := &wire.BBOReply{}
	if res.BidOK {
		reply.Bid = &wire.Quote{Price: res.Bid.Price, OrderID: res.Bid.OrderID}
	}
	if res.AskOK {
		reply.Ask = &wire.Quote{Price: res.Ask.Price, OrderID: res.Ask.OrderID}
	}
	return reply, nil
}

func (s *Server) level(ctx context.Context, req *wire.LevelRequest) (*wire.LevelReply, error) {
	res, err := s.backend.QueryLevel(ctx, book.Side(req.Side), int(req.N))
	if err != nil {
		return nil, err
	}
	return &wire.LevelReply{
		Price:     res.Price,
		Found:     res.Found,
		Available: uint32(res.Available),
	}, nil
}

func (s *Server) totals(ctx context.Context, req *wire.TotalsRequest) (*wire.TotalsReply, error) {
	v, err := s.backend.QueryTotals(ctx, feed.TotalKind(req.Kind))
	if err != nil {
		return nil, err
	}
	return &wire.TotalsReply{Value: uint64(v)}, nil
}

func (s *Server) depth(ctx context.Context, req *wire.DepthRequest) (*wire.DepthReply, error) {
	res, err := s.backend.QueryDepth(ctx, req.Symbol)
	if err != nil {
		return nil, err
	}
	reply := &wire.DepthReply{
		Symbol: res.Symbol,
		Empty:  res.Empty,
		Asks:   toWireLevels(res.Asks),
		Bids:   toWireLevels(res.Bids),
	}
	return reply, nil
}

func toWireLevels(in []book.LevelSummary) []wire.DepthLevel {
	out := make([]wire.DepthLevel, 0, len(in))
	for _, l := range in {
		out = append(out, wire.DepthLevel{
			Price:  l.Price,
			Shares: l.Shares,
			Orders: uint32(l.Orders),
		})
	}
	return out
}

// -------------------- service descriptor --------------------

// The service descriptor is hand-written: the wire format is the
// in-house lobwire codec, not generated protobuf stubs.

func unary[Req, Resp wire.Message](
	newReq func() Req,
	call func(*Server, context.Context, Req) (Resp, error),
) func(srv any, ctx context.Context, dec func(any) error, _ grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, _ grpc.UnaryServerInterceptor) (any, error) {
		req := newReq()
		if err := dec(req); err != nil {
			return nil, err
		}
		return call(srv.(*Server), ctx, req)
	}
}

var queryServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*queryHandler)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "BestBidOffer",
			Handler: unary(func() *wire.BBORequest { return new(wire.BBORequest) },
				(*Server).bestBidOffer),
		},
		{
			MethodName: "Level",
			Handler: unary(func() *wire.LevelRequest { return new(wire.LevelRequest) },
				(*Server).level),
		},
		{
			MethodName: "Totals",
			Handler: unary(func() *wire.TotalsRequest { return new(wire.TotalsRequest) },
				(*Server).totals),
		},
		{
			MethodName: "Depth",
			Handler: unary(func() *wire.DepthRequest { return new(wire.DepthRequest) },
				(*Server).depth),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "lobwire",
}
