package broadword

import "testing"

func TestMsbLsb(t *testing.T) {
	if p, ok := Msb(0); ok || p != 0 {
		t.Errorf("Msb(0) = (%d, %v), want (0, false)", p, ok)
	}
	if p, ok := Msb(0b10110); !ok || p != 4 {
		t.Errorf("Msb(0b10110) = (%d, %v), want (4, true)", p, ok)
	}
	if p, ok := Lsb(0); ok || p != 0 {
		t.Errorf("Lsb(0) = (%d, %v), want (0, false)", p, ok)
	}
	if p, ok := Lsb(0b10110); !ok || p != 1 {
		t.Errorf("Lsb(0b10110) = (%d, %v), want (1, true)", p, ok)
	}
}

func TestPopcount(t *testing.T) {
	if Popcount(0) != 0 {
		t.Errorf("Popcount(0) != 0")
	}
	if Popcount(0b10110) != 3 {
		t.Errorf("Popcount(0b10110) != 3")
	}
	if Popcount(^uint64(0)) != 64 {
		t.Errorf("Popcount(all ones) != 64")
	}
}

func TestSelectInWord(t *testing.T) {
	w := uint64(0b1011010)
	want := []uint64{1, 3, 4, 6}
	for k, p := range want {
		if got := SelectInWord(w, uint64(k)); got != p {
			t.Errorf("SelectInWord(%b, %d) = %d, want %d", w, k, got, p)
		}
	}
}

func TestCeilDiv(t *testing.T) {
	cases := []struct{ n, d, want uint64 }{
		{0, 4, 0}, {1, 4, 1}, {4, 4, 1}, {5, 4, 2}, {8, 4, 2},
	}
	for _, c := range cases {
		if got := CeilDiv(c.n, c.d); got != c.want {
			t.Errorf("CeilDiv(%d,%d) = %d, want %d", c.n, c.d, got, c.want)
		}
	}
}

func TestCeilLog2(t *testing.T) {
	cases := []struct{ n, want uint64 }{
		{0, 0}, {1, 0}, {2, 1}, {3, 2}, {4, 2}, {5, 3}, {8, 3}, {9, 4},
	}
	for _, c := range cases {
		if got := CeilLog2(c.n); got != c.want {
			t.Errorf("CeilLog2(%d) = %d, want %d", c.n, got, c.want)
		}
	}
}
