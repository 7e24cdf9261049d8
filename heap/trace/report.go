package trace

import (
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/memlab/heapkit/heap/alloc"
)

// Report summarizes a replay.
type Report struct {
	Ops    int
	Allocs int
	Frees  int

	LiveBytes int64 // requested bytes still live at the end of the trace
	PeakBytes int64 // peak of requested live bytes during the trace

	Stats alloc.Stats
}

// Format renders the report for humans. Counts are digit-grouped per English
// locale conventions (1,234,567).
func (r *Report) Format(w io.Writer) {
	p := message.NewPrinter(language.English)
	p.Fprintf(w, "operations        %d (%d allocs, %d frees)\n", r.Ops, r.Allocs, r.Frees)
	p.Fprintf(w, "live at end       %d bytes (peak %d)\n", r.LiveBytes, r.PeakBytes)
	p.Fprintf(w, "heap extensions   %d (%d bytes)\n", r.Stats.ExtendCalls, r.Stats.ExtendBytes)
	p.Fprintf(w, "fast/slow allocs  %d/%d\n", r.Stats.AllocFastPath, r.Stats.AllocSlowPath)
	p.Fprintf(w, "splits            %d\n", r.Stats.SplitCount)
	p.Fprintf(w, "coalesces         %d forward, %d backward, %d both\n",
		r.Stats.CoalesceForward, r.Stats.CoalesceBackward, r.Stats.CoalesceBoth)
	p.Fprintf(w, "bytes alloc/freed %d/%d\n", r.Stats.BytesAllocated, r.Stats.BytesFreed)
}
