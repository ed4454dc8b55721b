package book

import "testing"

func newPair() *BookPair {
	return NewBookPair(NewExecutionLedger())
}

func TestBestBidOfferScenario(t *testing.T) {
	p := newPair()
	p.AddOrder(Bid, order("1", "ABC", 100, 1000000)) // 100.0000
	p.AddOrder(Ask, order("2", "ABC", 50, 1010000))  // 101.0000

	bid, bidOK, ask, askOK := p.BestBidOffer()
	if !bidOK || bid.Price != 1000000 || bid.OrderID != "1" {
		t.Errorf("bid = %+v ok=%v, want 1000000/1", bid, bidOK)
	}
	if !askOK || ask.Price != 1010000 || ask.OrderID != "2" {
		t.Errorf("ask = %+v ok=%v, want 1010000/2", ask, askOK)
	}
}

func TestBestBidOfferEmptySides(t *testing.T) {
	p := newPair()
	p.AddOrder(Bid, order("1", "ABC", 100, 1000000))

	_, bidOK, _, askOK := p.BestBidOffer()
	if !bidOK || askOK {
		t.Errorf("bidOK=%v askOK=%v, want true/false", bidOK, askOK)
	}
}

func TestExecutePartialThenOverfill(t *testing.T) {
	p := newPair()
	led := p.Ledger()
	p.AddOrder(Bid, order("1", "ABC", 100, 1000000))

	exec, found := p.Execute("1", 30)
	if !found || exec.Consumed != 30 || exec.Removed {
		t.Fatalf("partial execute wrong: %+v found=%v", exec, found)
	}
	if o, ok := p.FindByID("1"); !ok || o.Shares != 70 {
		t.Errorf("expected 70 shares resting after partial fill")
	}
	if led.SharesExecuted != 30 || led.Executions != 1 {
		t.Errorf("ledger after partial: %+v", led)
	}

	// quantity beyond resting size consumes exactly the remainder
	exec, found = p.Execute("1", 1000)
	if !found || exec.Consumed != 70 || !exec.Removed {
		t.Fatalf("overfill execute wrong: %+v found=%v", exec, found)
	}
	if _, ok := p.FindByID("1"); ok {
		t.Error("order still present after full execution")
	}
	if led.SharesExecuted != 100 || led.Executions != 2 {
		t.Errorf("ledger after overfill: %+v", led)
	}
}

func TestExecuteUnknownIDIsSilent(t *testing.T) {
	p := newPair()
	led := p.Ledger()
	p.AddOrder(Ask, order("2", "ABC", 50, 1010000))

	if _, found := p.Execute("nope", 10); found {
		t.Error("execute on absent ID reported found")
	}
	if led.SharesExecuted != 0 || led.Executions != 0 {
		t.Errorf("ledger touched by no-op execute: %+v", led)
	}
	if o, _ := p.FindByID("2"); o.Shares != 50 {
		t.Error("book contents changed by no-op execute")
	}
}

func TestExecuteFindsAskSide(t *testing.T) {
	p := newPair()
	p.AddOrder(Ask, order("2", "ABC", 50, 1010000))

	exec, found := p.Execute("2", 50)
	if !found || exec.Side != Ask || exec.Consumed != 50 {
		t.Errorf("ask-side execute wrong: %+v found=%v", exec, found)
	}
	if p.Ledger().Executions != 1 || p.Ledger().SharesExecuted != 50 {
		t.Errorf("ledger: %+v", p.Ledger())
	}
}

func TestCancelFullRemovesEverywhere(t *testing.T) {
	p := newPair()
	p.AddOrder(Bid, order("1", "ABC", 100, 1000000))

	if consumed, found := p.Cancel("1", 100); !found || consumed != 100 {
		t.Fatalf("cancel consumed=%d found=%v", consumed, found)
	}
	if _, ok := p.FindByID("1"); ok {
		t.Error("cancelled order still reachable by ID")
	}
	if _, bidOK, _, _ := p.BestBidOffer(); bidOK {
		t.Error("cancelled order still visible to BBO")
	}
	if _, ok, avail := p.Level(Bid, 1); ok || avail != 0 {
		t.Error("cancelled order still visible to level query")
	}
	if p.Ledger().Executions != 0 {
		t.Error("cancel touched the execution ledger")
	}
}

func TestCancelUnknownIDIsSilent(t *testing.T) {
	p := newPair()
	if _, found := p.Cancel("ghost", 5); found {
		t.Error("cancel on absent ID reported found")
	}
}

func TestLevelShortfallReportsCount(t *testing.T) {
	p := newPair()
	p.AddOrder(Bid, order("1", "ABC", 10, 1000000))
	p.AddOrder(Bid, order("2", "ABC", 10, 990000))

	if _, ok, avail := p.Level(Bid, 5); ok || avail != 2 {
		t.Errorf("want shortfall with avail=2, got ok=%v avail=%d", ok, avail)
	}
	if price, ok, _ := p.Level(Bid, 1); !ok || price != 1000000 {
		t.Errorf("bid level 1 = %d, want highest 1000000", price)
	}
}

func TestTopSymbolTieBreaksLexicographically(t *testing.T) {
	p := newPair()
	p.AddOrder(Bid, order("1", "BBB", 100, 1000000))
	p.AddOrder(Ask, order("2", "AAA", 60, 1010000))
	p.AddOrder(Bid, order("3", "AAA", 40, 990000))

	if got := p.TopSymbolByVolume(); got != "AAA" {
		t.Errorf("TopSymbolByVolume = %q, want AAA on tie", got)
	}
}

func TestTopSymbolSumsBothSides(t *testing.T) {
	p := newPair()
	p.AddOrder(Bid, order("1", "ABC", 60, 1000000))
	p.AddOrder(Ask, order("2", "ABC", 50, 1010000))
	p.AddOrder(Bid, order("3", "XYZ", 100, 990000))

	if got := p.TopSymbolByVolume(); got != "ABC" {
		t.Errorf("TopSymbolByVolume = %q, want ABC (110 across sides)", got)
	}
}

func TestDepthReportOrdering(t *testing.T) {
	p := newPair()
	p.AddOrder(Ask, order("a1", "ABC", 10, 1030000))
	p.AddOrder(Ask, order("a2", "ABC", 20, 1010000))
	p.AddOrder(Bid, order("b1", "ABC", 30, 1000000))
	p.AddOrder(Bid, order("b2", "ABC", 40, 980000))
	p.AddOrder(Bid, order("x", "XYZ", 99, 990000))

	type row struct {
		side  Side
		price int64
	}
	var got []row
	p.DepthReport("ABC", func(s Side, l LevelSummary) bool {
		got = append(got, row{s, l.Price})
		return true
	})

	// asks ascending first, then bids ascending; XYZ filtered out
	want := []row{
		{Ask, 1010000},
		{Ask, 1030000},
		{Bid, 980000},
		{Bid, 1000000},
	}
	if len(got) != len(want) {
		t.Fatalf("depth rows = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestFullCancelInvisibleToAllQueries(t *testing.T) {
	p := newPair()
	p.AddOrder(Ask, order("a", "ABC", 25, 1010000))
	p.Cancel("a", 25)

	if !p.Empty() {
		t.Error("book not empty after cancelling the only order")
	}
	seen := false
	p.DepthReport("ABC", func(Side, LevelSummary) bool {
		seen = true
		return true
	})
	if seen {
		t.Error("cancelled order leaked into depth report")
	}
}
