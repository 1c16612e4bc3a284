package pipeline

import (
	"testing"
	"time"
)

func TestTimings_SetAndSum(t *testing.T) {
	var timings Timings
	if timings.Has(StageParse) {
		t.Error("empty timings report a stage")
	}
	timings.Set(StageParse, 10*time.Millisecond)
	timings.Set(StageAnalyze, 20*time.Millisecond)

	if !timings.Has(StageParse) {
		t.Error("recorded stage missing")
	}
	if got := timings.Duration(StageAnalyze); got != 20*time.Millisecond {
		t.Errorf("duration = %v", got)
	}
	if got := timings.Sum(StageParse, StageAnalyze, StageRender); got != 30*time.Millisecond {
		t.Errorf("sum = %v", got)
	}

	var nilTimings *Timings
	nilTimings.Set(StageParse, time.Second) // must not panic
}

func TestChannelSink_ForwardsEvents(t *testing.T) {
	ch := make(chan Event, 4)
	sink := ChannelSink{Ch: ch}

	EmitQueued(sink, []string{"a.py", "b.py"})
	Emit(sink, Event{File: "a.py", Stage: StageAnalyze, Status: StatusWorking})

	if len(ch) != 3 {
		t.Fatalf("channel holds %d events, want 3", len(ch))
	}
	first := <-ch
	if first.File != "a.py" || first.Status != StatusQueued {
		t.Errorf("first = %+v", first)
	}

	Emit(nil, Event{}) // nil sink is a no-op
	EmitQueued(nil, []string{"x"})
	ChannelSink{}.OnEvent(Event{}) // nil channel is a no-op
}
