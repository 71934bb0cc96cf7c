// Package dashboard derives the grid, calendar and analytics views of a
// user's applications. Everything here is pure and works on the full list.
package dashboard

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"trackify.backend/internal/domain/entities"
	"trackify.backend/pkg/utils"
)

// ViewMode is the dashboard tab the list is computed for
type ViewMode string

const (
	ViewGrid      ViewMode = "grid"
	ViewCalendar  ViewMode = "calendar"
	ViewAnalytics ViewMode = "analytics"
)

// SortField selects the ordering key
type SortField string

const (
	SortByName SortField = "name"
	SortByDate SortField = "date"
)

// StatusAll disables the status filter
const StatusAll = "all"

const dateLayout = "2006-01-02"

// ViewParams are the user's current filter, sort and page selections
type ViewParams struct {
	Mode      ViewMode
	Status    string
	Search    string
	From      string
	To        string
	SortField SortField
	Ascending bool
	Page      int
	PageSize  int
	Location  *time.Location
}

// View is the derived list for one screen
type View struct {
	Visible    []*entities.Application
	Paged      []*entities.Application
	Page       int
	TotalPages int
}

// Validate checks the free-form parameters before any work is done
func (p ViewParams) Validate() error {
	switch p.Mode {
	case "", ViewGrid, ViewCalendar, ViewAnalytics:
	default:
		return fmt.Errorf("unknown view %q", p.Mode)
	}
	switch p.SortField {
	case "", SortByName, SortByDate:
	default:
		return fmt.Errorf("unknown sort field %q", p.SortField)
	}
	if p.Status != "" && p.Status != StatusAll && !entities.ApplicationStatus(p.Status).Valid() {
		return fmt.Errorf("unknown status %q", p.Status)
	}
	for _, d := range []string{p.From, p.To} {
		if d == "" {
			continue
		}
		if _, err := time.Parse(dateLayout, d); err != nil {
			return fmt.Errorf("invalid date %q", d)
		}
	}
	return nil
}

// Filter keeps the applications matching status (grid view only), search and date range.
// An empty mode is the grid.
func Filter(apps []*entities.Application, p ViewParams) []*entities.Application {
	if p.Mode == "" {
		p.Mode = ViewGrid
	}
	loc := p.Location
	if loc == nil {
		loc = time.Local
	}
	from, hasFrom := midnight(p.From, loc)
	to, hasTo := midnight(p.To, loc)
	query := strings.ToLower(p.Search)
	filterStatus := p.Mode == ViewGrid && p.Status != "" && p.Status != StatusAll

	out := make([]*entities.Application, 0, len(apps))
	for _, a := range apps {
		if filterStatus && string(a.Status) != p.Status {
			continue
		}
		if query != "" && !matchesSearch(a, query) {
			continue
		}
		if hasFrom && a.ApplicationDate.Before(from) {
			continue
		}
		// the whole "to" day is included
		if hasTo && !a.ApplicationDate.Before(to.AddDate(0, 0, 1)) {
			continue
		}
		out = append(out, a)
	}
	return out
}

func matchesSearch(a *entities.Application, query string) bool {
	return strings.Contains(strings.ToLower(a.CompanyName), query) ||
		strings.Contains(strings.ToLower(a.PositionTitle.String), query) ||
		strings.Contains(strings.ToLower(a.Location), query)
}

func midnight(day string, loc *time.Location) (time.Time, bool) {
	if day == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(dateLayout, day, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Sort returns a sorted copy; equal keys keep their input order
func Sort(apps []*entities.Application, field SortField, ascending bool) []*entities.Application {
	out := make([]*entities.Application, len(apps))
	copy(out, apps)

	sort.SliceStable(out, func(i, j int) bool {
		var cmp int
		if field == SortByDate {
			cmp = out[i].ApplicationDate.Compare(out[j].ApplicationDate)
		} else {
			cmp = strings.Compare(strings.ToLower(out[i].CompanyName), strings.ToLower(out[j].CompanyName))
		}
		if ascending {
			return cmp < 0
		}
		return cmp > 0
	})
	return out
}

// Paginate slices one page out of items
func Paginate(items []*entities.Application, page, pageSize int) ([]*entities.Application, utils.PaginationMeta) {
	meta := utils.CalculateMeta(len(items), page, pageSize)
	start, end := meta.Bounds()
	return items[start:end], meta
}

// ComputeView filters, sorts and paginates in that order
func ComputeView(apps []*entities.Application, p ViewParams) View {
	if p.SortField == "" {
		p.SortField = SortByName
	}
	visible := Sort(Filter(apps, p), p.SortField, p.Ascending)
	paged, meta := Paginate(visible, p.Page, p.PageSize)
	return View{
		Visible:    visible,
		Paged:      paged,
		Page:       meta.Page,
		TotalPages: meta.TotalPages,
	}
}
