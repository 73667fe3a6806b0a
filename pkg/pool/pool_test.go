package pool

import "testing"

func TestCounterIsReset(t *testing.T) {
	m := GetCounter()
	m["n"] = 12
	m["v"] = 3
	PutCounter(m)

	for i := 0; i < 4; i++ {
		got := GetCounter()
		if len(got) != 0 {
			t.Fatalf("GetCounter returned %d stale entries", len(got))
		}
		PutCounter(got)
	}
}

func TestStringsIsReset(t *testing.T) {
	s := GetStrings()
	s = append(s, "ung", "g")
	PutStrings(s)

	got := GetStrings()
	if len(got) != 0 {
		t.Errorf("GetStrings returned len %d, want 0", len(got))
	}
}
