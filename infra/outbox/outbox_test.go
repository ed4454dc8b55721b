package outbox

import (
	"bytes"
	"testing"
)

func TestAppendGetRoundtrip(t *testing.T) {
	o, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer o.Close()

	if err := o.Append(1, []byte("payload-1")); err != nil {
		t.Fatalf("append: %v", err)
	}

	rec, err := o.Get(1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec.State != StateNew || rec.Retries != 0 || !bytes.Equal(rec.Payload, []byte("payload-1")) {
		t.Errorf("record = %+v", rec)
	}
}

func TestScanByStateInSequenceOrder(t *testing.T) {
	o, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer o.Close()

	for seq := uint64(1); seq <= 5; seq++ {
		if err := o.Append(seq, []byte{byte(seq)}); err != nil {
			t.Fatalf("append %d: %v", seq, err)
		}
	}
	if err := o.UpdateState(3, StateAcked, 1); err != nil {
		t.Fatalf("update: %v", err)
	}

	var seen []uint64
	err = o.ScanByState(StateNew, func(rec Record) error {
		seen = append(seen, rec.Seq)
		return nil
	})
	if err != nil {
		t.Fatalf("scan: %v", err)
	}

	want := []uint64{1, 2, 4, 5}
	if len(seen) != len(want) {
		t.Fatalf("scanned %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("scanned %v, want %v", seen, want)
		}
	}
}

func TestStateTransitionsAndDelete(t *testing.T) {
	o, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer o.Close()

	if err := o.Append(7, []byte("x")); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := o.UpdateState(7, StateSent, 1); err != nil {
		t.Fatalf("mark sent: %v", err)
	}
	rec, err := o.Get(7)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec.State != StateSent || rec.Retries != 1 || rec.LastAttempt == 0 {
		t.Errorf("after sent: %+v", rec)
	}

	if err := o.UpdateState(7, StateAcked, 1); err != nil {
		t.Fatalf("mark acked: %v", err)
	}
	if err := o.Delete(7); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := o.Get(7); err == nil {
		t.Error("record still present after delete")
	}
}
