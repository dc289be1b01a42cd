package finger

import "testing"

func TestHandPartition(t *testing.T) {
	left := 0
	right := 0
	for _, f := range All() {
		switch f.Hand() {
		case Left:
			left++
		case Right:
			right++
		default:
			t.Fatalf("finger %s has no hand", f.Code())
		}
	}
	if left != 5 || right != 5 {
		t.Fatalf("expected 5/5 split, got %d/%d", left, right)
	}
	if LeftThumb.Hand() != Left || RightThumb.Hand() != Right {
		t.Fatalf("thumbs on wrong hands")
	}
	if None.Hand() != NoHand {
		t.Fatalf("expected None to have no hand")
	}
}

func TestParseRoundTrip(t *testing.T) {
	for _, f := range All() {
		got, err := Parse(f.Code())
		if err != nil {
			t.Fatalf("parse %q: %v", f.Code(), err)
		}
		if got != f {
			t.Fatalf("expected %v, got %v", f, got)
		}
	}
	if _, err := Parse("f6l"); err == nil {
		t.Fatalf("expected error for unknown code")
	}
	if got, err := Parse(" F2R "); err != nil || got != RightIndex {
		t.Fatalf("expected case-insensitive parse, got %v %v", got, err)
	}
}

func TestAlternates(t *testing.T) {
	cases := []struct {
		prev, next Finger
		want       bool
	}{
		{None, LeftIndex, false},
		{LeftIndex, LeftThumb, false},
		{LeftIndex, RightIndex, true},
		{RightPinky, LeftPinky, true},
		{RightThumb, RightPinky, false},
	}
	for _, tc := range cases {
		if got := Alternates(tc.prev, tc.next); got != tc.want {
			t.Fatalf("Alternates(%s, %s) = %v, want %v", tc.prev.Code(), tc.next.Code(), got, tc.want)
		}
	}
}

func TestMarshalTextRejectsNone(t *testing.T) {
	if _, err := None.MarshalText(); err == nil {
		t.Fatalf("expected error for None")
	}
	text, err := LeftPinky.MarshalText()
	if err != nil || string(text) != "f5l" {
		t.Fatalf("unexpected marshal result %q %v", text, err)
	}
}
