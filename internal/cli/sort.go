package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pfrederiksen/sportify/internal/event"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortByDocument SortOrder = "document"
	SortByTime     SortOrder = "time"
	SortBySport    SortOrder = "sport"
	SortByLeague   SortOrder = "league"
)

// ParseSortOrder validates a --sort value
func ParseSortOrder(s string) (SortOrder, error) {
	order := SortOrder(strings.ToLower(strings.TrimSpace(s)))
	switch order {
	case "":
		return SortByDocument, nil
	case SortByDocument, SortByTime, SortBySport, SortByLeague:
		return order, nil
	}
	return "", fmt.Errorf("invalid sort order: %s (must be 'document', 'time', 'sport' or 'league')", s)
}

// sortEvents sorts a slice of events based on the specified sort order.
// Ties keep their document order.
func sortEvents(events []*event.Event, sortOrder SortOrder) {
	switch sortOrder {
	case SortByTime:
		sort.SliceStable(events, func(i, j int) bool {
			return events[i].Time < events[j].Time
		})
	case SortBySport:
		sort.SliceStable(events, func(i, j int) bool {
			if events[i].Sport != events[j].Sport {
				return events[i].Sport < events[j].Sport
			}
			// If sports are equal, sort by time
			return events[i].Time < events[j].Time
		})
	case SortByLeague:
		sort.SliceStable(events, func(i, j int) bool {
			li, lj := strings.ToLower(events[i].League), strings.ToLower(events[j].League)
			if li != lj {
				return li < lj
			}
			return events[i].Time < events[j].Time
		})
	}
}
