package events

import (
	"sort"
	"time"

	"github.com/teambition/rrule-go"
)

// ExpandRange turns a set of events into the concrete instances falling
// inside [start, end]. One-off events pass through unchanged when they
// overlap the window; recurring events are expanded occurrence by
// occurrence, each keeping the original event's duration. An event whose
// recurrence rule fails to parse degrades to its single stored occurrence.
func ExpandRange(evts []Event, start, end time.Time) []Instance {
	instances := make([]Instance, 0, len(evts))

	for _, e := range evts {
		if e.Recurrence == nil || *e.Recurrence == "" {
			if e.StartDate.After(end) || e.EndDate.Before(start) {
				continue
			}
			instances = append(instances, Instance{Event: e})
			continue
		}
		instances = append(instances, expandRecurring(e, start, end)...)
	}

	sort.SliceStable(instances, func(i, j int) bool {
		return instances[i].StartDate.Before(instances[j].StartDate)
	})

	return instances
}

func expandRecurring(e Event, start, end time.Time) []Instance {
	opt, err := rrule.StrToROption(*e.Recurrence)
	if err != nil {
		return []Instance{{Event: e}}
	}
	opt.Dtstart = e.StartDate.UTC()

	rule, err := rrule.NewRRule(*opt)
	if err != nil {
		return []Instance{{Event: e}}
	}

	duration := e.EndDate.Sub(e.StartDate)
	originalID := e.ID

	var out []Instance
	for _, occ := range rule.Between(start.UTC(), end.UTC(), true) {
		occ := occ
		inst := Instance{
			Event:                e,
			IsRecurrenceInstance: true,
			OriginalEventID:      &originalID,
			InstanceDate:         &occ,
		}
		inst.StartDate = occ
		inst.EndDate = occ.Add(duration)
		out = append(out, inst)
	}
	return out
}
