package core

import "testing"

func TestEmitterDrainKeepsOrderAndDuplicates(t *testing.T) {
	var e Emitter
	e.Emit(HapticRequested{})
	e.Emit(HighScoreReported{Score: 7})
	e.Emit(HapticRequested{})
	e.Emit(HighScoreReported{Score: 7})

	got := e.Drain()
	want := []Event{
		HapticRequested{},
		HighScoreReported{Score: 7},
		HapticRequested{},
		HighScoreReported{Score: 7},
	}
	if len(got) != len(want) {
		t.Fatalf("Drain() returned %d events, expected %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %#v, expected %#v", i, got[i], want[i])
		}
	}

	if again := e.Drain(); again != nil {
		t.Errorf("second Drain() = %v, expected nil", again)
	}
}
