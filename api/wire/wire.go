// Package wire defines the protobuf wire encoding for the query API
// and the journaled execution events. The messages are small and the
// schema is owned here, so they are encoded by hand with protowire
// instead of carrying generated bindings.
package wire

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// Message is anything that can cross the wire.
type Message interface {
	MarshalWire() []byte
	UnmarshalWire(b []byte) error
}

// ExecutionEvent is the payload journaled in the outbox and published
// by the broadcaster for every successful execute command.
type ExecutionEvent struct {
	Seq     uint64
	OrderID string
	Symbol  string
	Side    uint32 // 0 bid, 1 ask
	Price   int64  // scaled
	Shares  int64  // consumed
	MatchID string
	Removed bool
}

func (e *ExecutionEvent) MarshalWire() []byte {
	var b []byte
	b = appendVarint(b, 1, e.Seq)
	b = appendString(b, 2, e.OrderID)
	b = appendString(b, 3, e.Symbol)
	b = appendVarint(b, 4, uint64(e.Side))
	b = appendVarint(b, 5, uint64(e.Price))
	b = appendVarint(b, 6, uint64(e.Shares))
	b = appendString(b, 7, e.MatchID)
	b = appendBool(b, 8, e.Removed)
	return b
}

func (e *ExecutionEvent) UnmarshalWire(b []byte) error {
	*e = ExecutionEvent{}
	return walkFields(b, func(num protowire.Number, typ protowire.Type, v value) error {
		switch num {
		case 1:
			e.Seq = v.varint
		case 2:
			e.OrderID = v.str
		case 3:
			e.Symbol = v.str
		case 4:
			e.Side = uint32(v.varint)
		case 5:
			e.Price = int64(v.varint)
		case 6:
			e.Shares = int64(v.varint)
		case 7:
			e.MatchID = v.str
		case 8:
			e.Removed = v.varint != 0
		}
		return nil
	})
}

// Quote mirrors book.Quote for one side of a BBO reply.
type Quote struct {
	Price   int64
	OrderID string
}

func (q *Quote) MarshalWire() []byte {
	var b []byte
	b = appendVarint(b, 1, uint64(q.Price))
	b = appendString(b, 2, q.OrderID)
	return b
}

func (q *Quote) UnmarshalWire(b []byte) error {
	*q = Quote{}
	return walkFields(b, func(num protowire.Number, typ protowire.Type, v value) error {
		switch num {
		case 1:
			q.Price = int64(v.varint)
		case 2:
			q.OrderID = v.str
		}
		return nil
	})
}

// BBORequest has no fields.
type BBORequest struct{}

func (*BBORequest) MarshalWire() []byte        { return nil }
func (*BBORequest) UnmarshalWire([]byte) error { return nil }

// BBOReply reports each side's best quote; a nil side means no orders
// remaining there.
type BBOReply struct {
	Bid *Quote
	Ask *Quote
}

func (r *BBOReply) MarshalWire() []byte {
	var b []byte
	if r.Bid != nil {
		b = appendMessage(b, 1, r.Bid)
	}
	if r.Ask != nil {
		b = appendMessage(b, 2, r.Ask)
	}
	return b
}

func (r *BBOReply) UnmarshalWire(b []byte) error {
	*r = BBOReply{}
	return walkFields(b, func(num protowire.Number, typ protowire.Type, v value) error {
		switch num {
		case 1:
			r.Bid = new(Quote)
			return r.Bid.UnmarshalWire(v.bytes)
		case 2:
			r.Ask = new(Quote)
			return r.Ask.UnmarshalWire(v.bytes)
		}
		return nil
	})
}

// LevelRequest asks for the n-th distinct level of one side.
type LevelRequest struct {
	Side uint32 // 0 bid, 1 ask
	N    uint32
}

func (r *LevelRequest) MarshalWire() []byte {
	var b []byte
	b = appendVarint(b, 1, uint64(r.Side))
	b = appendVarint(b, 2, uint64(r.N))
	return b
}

func (r *LevelRequest) UnmarshalWire(b []byte) error {
	*r = LevelRequest{}
	return walkFields(b, func(num protowire.Number, typ protowire.Type, v value) error {
		switch num {
		case 1:
			r.Side = uint32(v.varint)
		case 2:
			r.N = uint32(v.varint)
		}
		return nil
	})
}

// LevelReply carries the price on success, or the actual level count
// on a shortfall.
type LevelReply struct {
	Price     int64
	Found     bool
	Available uint32
}

func (r *LevelReply) MarshalWire() []byte {
	var b []byte
	b = appendVarint(b, 1, uint64(r.Price))
	b = appendBool(b, 2, r.Found)
	b = appendVarint(b, 3, uint64(r.Available))
	return b
}

func (r *LevelReply) UnmarshalWire(b []byte) error {
	*r = LevelReply{}
	return walkFields(b, func(num protowire.Number, typ protowire.Type, v value) error {
		switch num {
		case 1:
			r.Price = int64(v.varint)
		case 2:
			r.Found = v.varint != 0
		case 3:
			r.Available = uint32(v.varint)
		}
		return nil
	})
}

// TotalsRequest selects a counter: 0 shares executed, 1 executions.
type TotalsRequest struct {
	Kind uint32
}

func (r *TotalsRequest) MarshalWire() []byte {
	return appendVarint(nil, 1, uint64(r.Kind))
}

func (r *TotalsRequest) UnmarshalWire(b []byte) error {
	*r = TotalsRequest{}
	return walkFields(b, func(num protowire.Number, typ protowire.Type, v value) error {
		if num == 1 {
			r.Kind = uint32(v.varint)
		}
		return nil
	})
}

type TotalsReply struct {
	Value uint64
}

func (r *TotalsReply) MarshalWire() []byte {
	return appendVarint(nil, 1, r.Value)
}

func (r *TotalsReply) UnmarshalWire(b []byte) error {
	*r = TotalsReply{}
	return walkFields(b, func(num protowire.Number, typ protowire.Type, v value) error {
		if num == 1 {
			r.Value = v.varint
		}
		return nil
	})
}

// DepthRequest asks for one symbol's depth; an empty symbol means the
// symbol with the largest combined remaining volume.
type DepthRequest struct {
	Symbol string
}

func (r *DepthRequest) MarshalWire() []byte {
	return appendString(nil, 1, r.Symbol)
}

func (r *DepthRequest) UnmarshalWire(b []byte) error {
	*r = DepthRequest{}
	return walkFields(b, func(num protowire.Number, typ protowire.Type, v value) error {
		if num == 1 {
			r.Symbol = v.str
		}
		return nil
	})
}

// DepthLevel is one populated price level of a depth reply.
type DepthLevel struct {
	Price  int64
	Shares int64
	Orders uint32
}

func (l *DepthLevel) MarshalWire() []byte {
	var b []byte
	b = appendVarint(b, 1, uint64(l.Price))
	b = appendVarint(b, 2, uint64(l.Shares))
	b = appendVarint(b, 3, uint64(l.Orders))
	return b
}

func (l *DepthLevel) UnmarshalWire(b []byte) error {
	*l = DepthLevel{}
	return walkFields(b, func(num protowire.Number, typ protowire.Type, v value) error {
		switch num {
		case 1:
			l.Price = int64(v.varint)
		case 2:
			l.Shares = int64(v.varint)
		case 3:
			l.Orders = uint32(v.varint)
		}
		return nil
	})
}

// DepthReply lists ask levels then bid levels, both ascending by
// price. Empty is set when the book holds no orders at all and no
// report can be produced.
type DepthReply struct {
	Symbol string
	Asks   []DepthLevel
	Bids   []DepthLevel
	Empty  bool
}

func (r *DepthReply) MarshalWire() []byte {
	var b []byte
	b = appendString(b, 1, r.Symbol)
	for i := range r.Asks {
		b = appendMessage(b, 2, &r.Asks[i])
	}
	for i := range r.Bids {
		b = appendMessage(b, 3, &r.Bids[i])
	}
	b = appendBool(b, 4, r.Empty)
	return b
}

func (r *DepthReply) UnmarshalWire(b []byte) error {
	*r = DepthReply{}
	return walkFields(b, func(num protowire.Number, typ protowire.Type, v value) error {
		switch num {
		case 1:
			r.Symbol = v.str
		case 2:
			var l DepthLevel
			if err := l.UnmarshalWire(v.bytes); err != nil {
				return err
			}
			r.Asks = append(r.Asks, l)
		case 3:
			var l DepthLevel
			if err := l.UnmarshalWire(v.bytes); err != nil {
				return err
			}
			r.Bids = append(r.Bids, l)
		case 4:
			r.Empty = v.varint != 0
		}
		return nil
	})
}

/******************** encoding helpers ********************/

// value holds whichever representation the field's wire type produced.
type value struct {
	varint uint64
	str    string
	bytes  []byte
}

func appendVarint(b []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendBool(b []byte, num protowire.Number, v bool) []byte {
	if !v {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, 1)
}

func appendString(b []byte, num protowire.Number, s string) []byte {
	if s == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

func appendMessage(b []byte, num protowire.Number, m Message) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, m.MarshalWire())
}

// walkFields decodes the field stream, handing each field's value to
// fn and skipping unknown fields.
func walkFields(b []byte, fn func(num protowire.Number, typ protowire.Type, v value) error) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		var v value
		switch typ {
		case protowire.VarintType:
			x, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			v.varint = x
			b = b[n:]
		case protowire.BytesType:
			raw, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			v.bytes = raw
			v.str = string(raw)
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			b = b[n:]
			continue
		}

		if err := fn(num, typ, v); err != nil {
			return err
		}
	}
	return nil
}

// Codec lets grpc carry wire messages without generated bindings.
type Codec struct{}

// Name is the content-subtype clients must force for calls.
const CodecName = "lobwire"

func (Codec) Name() string { return CodecName }

func (Codec) Marshal(v any) ([]byte, error) {
	m, ok := v.(Message)
	if !ok {
		return nil, fmt.Errorf("wire: cannot marshal %T", v)
	}
	return m.MarshalWire(), nil
}

func (Codec) Unmarshal(data []byte, v any) error {
	m, ok := v.(Message)
	if !ok {
		return fmt.Errorf("wire: cannot unmarshal into %T", v)
	}
	return m.UnmarshalWire(data)
}
