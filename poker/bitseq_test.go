package poker

import (
	"math/bits"
	"testing"
)

func TestBitPermutationsFirstSuccessors(t *testing.T) {
	t.Parallel()
	var got []uint32
	for v := range bitPermutations(0b11111) {
		got = append(got, v)
		if len(got) == 3 {
			break
		}
	}

	want := []uint32{47, 55, 59}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("successor %d = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestBitPermutationsCoversAllFiveRankMasks(t *testing.T) {
	t.Parallel()
	prev := uint32(0b11111)
	count := 0
	for v := range bitPermutations(0b11111) {
		if v <= prev {
			t.Fatalf("sequence not increasing: %d after %d", v, prev)
		}
		if bits.OnesCount32(v) != 5 {
			t.Fatalf("%b has %d bits set, want 5", v, bits.OnesCount32(v))
		}
		if v >= 1<<13 {
			t.Fatalf("%b exceeds 13 bits", v)
		}
		prev = v
		count++
	}

	// C(13,5) masks in total, minus the seed.
	if count != 1286 {
		t.Errorf("generated %d masks, want 1286", count)
	}
	if prev != 0b1111100000000 {
		t.Errorf("last mask = %b, want 1111100000000", prev)
	}
}

func TestBitPermutationsRestartable(t *testing.T) {
	t.Parallel()
	seq := bitPermutations(0b11)
	collect := func() []uint32 {
		var out []uint32
		for v := range seq {
			out = append(out, v)
		}
		return out
	}

	first := collect()
	second := collect()
	if len(first) != 77 { // C(13,2) - 1
		t.Fatalf("generated %d masks, want 77", len(first))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("second pass diverged at %d: %d vs %d", i, first[i], second[i])
		}
	}
}

func TestBitPermutationsZeroSeed(t *testing.T) {
	t.Parallel()
	for v := range bitPermutations(0) {
		t.Fatalf("unexpected value %d for zero seed", v)
	}
}

func TestCombinations(t *testing.T) {
	t.Parallel()
	var got [][]int
	for c := range combinations([]int{3, 2, 1, 0}, 2) {
		got = append(got, append([]int(nil), c...))
	}

	want := [][]int{{3, 2}, {3, 1}, {3, 0}, {2, 1}, {2, 0}, {1, 0}}
	if len(got) != len(want) {
		t.Fatalf("got %d combinations, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i][0] != want[i][0] || got[i][1] != want[i][1] {
			t.Errorf("combination %d = %v, want %v", i, got[i], want[i])
		}
	}

	n := 0
	for range combinations(make([]Card, 7), 5) {
		n++
	}
	if n != 21 {
		t.Errorf("C(7,5) = %d, want 21", n)
	}

	for range combinations([]int{1, 2}, 3) {
		t.Fatal("k > n should yield nothing")
	}
}
