package realtime

import (
	"sort"

	"github.com/comalice/hscx"
)

// EventWithMeta adds sequencing metadata for deterministic ordering.
type EventWithMeta struct {
	Event       *hscx.Event
	SequenceNum uint64
	Priority    int
}

// sortEvents orders events deterministically: higher priority first, then
// by sequence number (FIFO) for ties. The sort is stable so equal-priority
// events never reorder relative to each other even if SliceStable's pivot
// choice changes across Go versions.
func sortEvents(events []EventWithMeta) {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Priority != events[j].Priority {
			return events[i].Priority > events[j].Priority
		}
		return events[i].SequenceNum < events[j].SequenceNum
	})
}
