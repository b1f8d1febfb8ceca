package signal

import (
	"reflect"
	"testing"
)

// #region ring-tests
func TestRing_PushAndValues(t *testing.T) {
	r := NewRing(3)
	if r.Len() != 0 || r.Full() {
		t.Fatal("expected fresh ring empty")
	}

	r.Push(1)
	r.Push(2)
	if got := r.Values(); !reflect.DeepEqual(got, []float64{1, 2}) {
		t.Errorf("expected [1 2], got %v", got)
	}
	if r.Full() {
		t.Error("ring should not be full at 2/3")
	}
}

func TestRing_EvictsOldest(t *testing.T) {
	r := NewRing(3)
	for _, v := range []float64{1, 2, 3, 4, 5} {
		r.Push(v)
	}
	if !r.Full() {
		t.Error("expected full ring")
	}
	if got := r.Values(); !reflect.DeepEqual(got, []float64{3, 4, 5}) {
		t.Errorf("expected [3 4 5], got %v", got)
	}
	if r.Len() != 3 || r.Cap() != 3 {
		t.Errorf("expected len=cap=3, got len=%d cap=%d", r.Len(), r.Cap())
	}
}

func TestRing_Last(t *testing.T) {
	r := NewRing(5)
	for _, v := range []float64{1, 2, 3, 4} {
		r.Push(v)
	}
	if got := r.Last(2); !reflect.DeepEqual(got, []float64{3, 4}) {
		t.Errorf("expected [3 4], got %v", got)
	}
	if got := r.Last(10); !reflect.DeepEqual(got, []float64{1, 2, 3, 4}) {
		t.Errorf("expected all values, got %v", got)
	}
}

func TestRing_LastAfterWraparound(t *testing.T) {
	r := NewRing(3)
	for _, v := range []float64{1, 2, 3, 4, 5} {
		r.Push(v)
	}
	if got := r.Last(2); !reflect.DeepEqual(got, []float64{4, 5}) {
		t.Errorf("expected [4 5], got %v", got)
	}
}

func TestNewRing_NonPositiveCapacity(t *testing.T) {
	r := NewRing(0)
	r.Push(7)
	if got := r.Values(); !reflect.DeepEqual(got, []float64{7}) {
		t.Errorf("expected [7], got %v", got)
	}
}

// #endregion ring-tests
