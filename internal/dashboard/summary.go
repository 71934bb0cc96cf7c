package dashboard

import (
	"sort"
	"time"

	"trackify.backend/internal/domain/entities"
)

// Bucket is one labelled count of a chart series
type Bucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Summary holds the analytics series
type Summary struct {
	Total      int      `json:"total"`
	ByStatus   []Bucket `json:"byStatus"`
	ByDay      []Bucket `json:"byDay"`
	ByMonth    []Bucket `json:"byMonth"`
	ByLocation []Bucket `json:"byLocation"`
	ByRole     []Bucket `json:"byRole"`
}

const unknownRole = "Unknown"

// Summarize aggregates apps. Statuses follow their declared order, days and
// months are chronological, locations and roles are by count then label.
func Summarize(apps []*entities.Application, loc *time.Location) Summary {
	if loc == nil {
		loc = time.Local
	}

	statuses := map[string]int{}
	locations := map[string]int{}
	roles := map[string]int{}
	days := map[time.Time]int{}
	months := map[time.Time]int{}

	for _, a := range apps {
		statuses[string(a.Status)]++
		locations[a.Location]++

		role := a.PositionTitle.String
		if role == "" {
			role = unknownRole
		}
		roles[role]++

		d := a.ApplicationDate.In(loc)
		days[time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)]++
		months[time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, loc)]++
	}

	var byStatus []Bucket
	for _, s := range entities.ApplicationStatuses {
		if n := statuses[string(s)]; n > 0 {
			byStatus = append(byStatus, Bucket{Label: string(s), Count: n})
		}
	}

	return Summary{
		Total:      len(apps),
		ByStatus:   nonNil(byStatus),
		ByDay:      chronological(days, "2006-01-02"),
		ByMonth:    chronological(months, "Jan 2006"),
		ByLocation: byCount(locations),
		ByRole:     byCount(roles),
	}
}

func chronological(counts map[time.Time]int, layout string) []Bucket {
	keys := make([]time.Time, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })

	out := make([]Bucket, 0, len(keys))
	for _, k := range keys {
		out = append(out, Bucket{Label: k.Format(layout), Count: counts[k]})
	}
	return out
}

func byCount(counts map[string]int) []Bucket {
	out := make([]Bucket, 0, len(counts))
	for label, n := range counts {
		out = append(out, Bucket{Label: label, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}

func nonNil(b []Bucket) []Bucket {
	if b == nil {
		return []Bucket{}
	}
	return b
}
