package schedule

import (
	"sort"

	"github.com/alexkm13/scarlet-planner/internal/models"
)

// AssignColumns packs one weekday's events into the minimum set of
// display columns the greedy first-fit heuristic finds, so overlapping
// events render side by side on the weekly grid. Events are sorted by
// (start asc, end asc); each takes the leftmost column that is free by
// its start time, opening a new column when none is. Every event's
// TotalColumns is set to the final column count for the day (minimum
// 1). The heuristic is not guaranteed optimal for every interval-graph
// shape; grid consumers depend on its exact output.
//
// Callers must pass events for a single weekday; different days never
// share column assignments.
func AssignColumns(events []models.ScheduleEvent) []models.ScheduleEvent {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].StartMinutes != events[j].StartMinutes {
			return events[i].StartMinutes < events[j].StartMinutes
		}
		return events[i].EndMinutes < events[j].EndMinutes
	})

	// columnEnds[k] holds the end time of the last event placed in
	// column k.
	var columnEnds []int

	for i := range events {
		placed := false
		for col, end := range columnEnds {
			if events[i].StartMinutes >= end {
				events[i].Column = col
				columnEnds[col] = events[i].EndMinutes
				placed = true
				break
			}
		}
		if !placed {
			events[i].Column = len(columnEnds)
			columnEnds = append(columnEnds, events[i].EndMinutes)
		}
	}

	total := len(columnEnds)
	if total == 0 {
		total = 1
	}
	for i := range events {
		events[i].TotalColumns = total
	}

	return events
}
