package wire

import (
	"reflect"
	"testing"
)

func TestExecutionEventRoundtrip(t *testing.T) {
	in := ExecutionEvent{
		Seq:     42,
		OrderID: "ab1",
		Symbol:  "ABC",
		Side:    1,
		Price:   1010000,
		Shares:  30,
		MatchID: "m77",
		Removed: true,
	}

	var out ExecutionEvent
	if err := out.UnmarshalWire(in.MarshalWire()); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out != in {
		t.Errorf("roundtrip changed event:\n in  %+v\n out %+v", in, out)
	}
}

func TestBBOReplyPresence(t *testing.T) {
	in := BBOReply{
		Bid: &Quote{Price: 1000000, OrderID: "1"},
		// ask side empty
	}

	var out BBOReply
	if err := out.UnmarshalWire(in.MarshalWire()); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Bid == nil || *out.Bid != *in.Bid {
		t.Errorf("bid = %+v", out.Bid)
	}
	if out.Ask != nil {
		t.Error("absent ask side decoded as present")
	}
}

func TestDepthReplyRepeatedLevels(t *testing.T) {
	in := DepthReply{
		Symbol: "ABC",
		Asks: []DepthLevel{
			{Price: 1010000, Shares: 50, Orders: 1},
			{Price: 1030000, Shares: 10, Orders: 2},
		},
		Bids: []DepthLevel{
			{Price: 1000000, Shares: 70, Orders: 1},
		},
	}

	var out DepthReply
	if err := out.UnmarshalWire(in.MarshalWire()); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Errorf("roundtrip changed reply:\n in  %+v\n out %+v", in, out)
	}
}

func TestUnknownFieldsSkipped(t *testing.T) {
	// a TotalsReply with an extra field a newer writer might add
	b := (&TotalsReply{Value: 9}).MarshalWire()
	extra := appendString(b, 15, "future")

	var out TotalsReply
	if err := out.UnmarshalWire(extra); err != nil {
		t.Fatalf("unmarshal with unknown field: %v", err)
	}
	if out.Value != 9 {
		t.Errorf("Value = %d, want 9", out.Value)
	}
}

func TestCodecRejectsForeignTypes(t *testing.T) {
	var c Codec
	if _, err := c.Marshal(struct{}{}); err == nil {
		t.Error("expected error marshalling non-wire type")
	}
	if err := c.Unmarshal(nil, &struct{}{}); err == nil {
		t.Error("expected error unmarshalling into non-wire type")
	}
}
