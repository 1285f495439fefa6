package dice

import "testing"

func TestSourceRange(t *testing.T) {
	src := NewSource(1)
	for i := 0; i < 1000; i++ {
		v := src.D6()
		if v < 1 || v > 6 {
			t.Fatalf("die result out of range: %d", v)
		}
	}
}

func TestSourceDeterminism(t *testing.T) {
	a := NewSource(42)
	b := NewSource(42)
	for i := 0; i < 100; i++ {
		if a.D6() != b.D6() {
			t.Fatalf("same seed diverged at roll %d", i)
		}
	}
}

func TestScriptCycles(t *testing.T) {
	s := &Script{Rolls: []int{6, 1}}
	got := []int{s.D6(), s.D6(), s.D6()}
	want := []int{6, 1, 6}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("scripted roll %d: got %d want %d", i, got[i], want[i])
		}
	}
}
