package service

import (
	"sort"

	"github.com/pkordes/itinerary/backend/internal/domain"
)

// AnnotateOverlaps flags schedule collisions between events of one day.
//
// Events are ordered by start time and each is compared only against its
// immediate neighbors in that ordering: an event overlaps when its end time
// runs past the next event's start, or its start precedes the previous
// event's end. Events that merely touch (one's end equals the other's
// start) do not overlap. One sort plus one linear pass — never pairwise.
//
// The input slice is returned sorted by start time with HasOverlap set.
func AnnotateOverlaps(events []domain.Event) []domain.Event {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].StartTime != events[j].StartTime {
			return events[i].StartTime < events[j].StartTime
		}
		return events[i].ID.String() < events[j].ID.String()
	})

	for i := range events {
		events[i].HasOverlap = false
		if i > 0 && events[i].StartTime < events[i-1].EndTime {
			events[i].HasOverlap = true
		}
		if i < len(events)-1 && events[i].EndTime > events[i+1].StartTime {
			events[i].HasOverlap = true
		}
	}

	return events
}
