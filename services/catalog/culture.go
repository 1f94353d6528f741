package catalog

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"monastery360/models"
)

// indexCalendar validates festival dates and keeps festivals in calendar order.
func (c *StaticCatalog) indexCalendar() error {
	seen := make(map[string]struct{}, len(c.data.Festivals))
	for i := range c.data.Festivals {
		f := &c.data.Festivals[i]
		if f.ID == "" {
			return fmt.Errorf("catalog: festival at index %d has no id", i)
		}
		if _, dup := seen[f.ID]; dup {
			return fmt.Errorf("catalog: duplicate festival id %q", f.ID)
		}
		seen[f.ID] = struct{}{}
		if !validDate(f.Month, f.Day) {
			return fmt.Errorf("catalog: festival %q has invalid date %d/%d", f.ID, f.Month, f.Day)
		}
		if f.Days < 1 {
			f.Days = 1
		}
	}
	for i, d := range c.data.AuspiciousDays {
		if d.Day < 1 || d.Day > 31 {
			return fmt.Errorf("catalog: auspicious day at index %d has invalid day %d", i, d.Day)
		}
	}

	slices.SortStableFunc(c.data.Festivals, func(a, b models.Festival) int {
		if a.Month != b.Month {
			return a.Month - b.Month
		}
		return a.Day - b.Day
	})
	slices.SortStableFunc(c.data.AuspiciousDays, func(a, b models.AuspiciousDay) int {
		return a.Day - b.Day
	})
	return nil
}

// validDate accepts any month/day that exists in a leap year.
func validDate(month, day int) bool {
	if month < 1 || month > 12 || day < 1 {
		return false
	}
	return day <= time.Date(2024, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Festivals returns the festivals matching filter in calendar order.
func (c *StaticCatalog) Festivals(filter models.FestivalFilter) []models.Festival {
	typ := strings.TrimSpace(filter.Type)

	out := make([]models.Festival, 0, len(c.data.Festivals))
	for _, f := range c.data.Festivals {
		if filter.Month != 0 && f.Month != filter.Month {
			continue
		}
		if typ != "" && typ != "all" && !strings.EqualFold(f.Type, typ) {
			continue
		}
		out = append(out, cloneFestival(f))
	}
	return out
}

func cloneFestival(f models.Festival) models.Festival {
	f.Rituals = slices.Clone(f.Rituals)
	f.Dos = slices.Clone(f.Dos)
	f.Donts = slices.Clone(f.Donts)
	f.Locations = slices.Clone(f.Locations)
	return f
}

// AuspiciousDays returns the monthly observances ordered by day of month.
func (c *StaticCatalog) AuspiciousDays() []models.AuspiciousDay {
	out := make([]models.AuspiciousDay, len(c.data.AuspiciousDays))
	for i, d := range c.data.AuspiciousDays {
		d.RecommendedActivities = slices.Clone(d.RecommendedActivities)
		d.Monasteries = slices.Clone(d.Monasteries)
		out[i] = d
	}
	return out
}

// Archives returns the archive items matching filter, in catalog order.
// Category, type and period match exactly ignoring case; "all" or empty
// matches everything.
func (c *StaticCatalog) Archives(filter models.ArchiveFilter) []models.ArchiveItem {
	query := strings.ToLower(strings.TrimSpace(filter.Query))

	out := make([]models.ArchiveItem, 0, len(c.data.Archives))
	for _, a := range c.data.Archives {
		if !matchesFacet(a.Category, filter.Category) ||
			!matchesFacet(a.Type, filter.Type) ||
			!matchesFacet(a.Period, filter.Period) {
			continue
		}
		if query != "" && !archiveMatchesQuery(a, query) {
			continue
		}
		a.Tags = slices.Clone(a.Tags)
		out = append(out, a)
	}
	return out
}

func matchesFacet(value, want string) bool {
	want = strings.TrimSpace(want)
	return want == "" || want == "all" || strings.EqualFold(value, want)
}

func archiveMatchesQuery(a models.ArchiveItem, query string) bool {
	if strings.Contains(strings.ToLower(a.Title), query) || strings.Contains(strings.ToLower(a.Description), query) {
		return true
	}
	for _, tag := range a.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

func (c *StaticCatalog) ArchiveByID(id string) (*models.ArchiveItem, error) {
	i, ok := c.archives[id]
	if !ok {
		return nil, fmt.Errorf("%w: archive item %q", ErrNotFound, id)
	}
	a := c.data.Archives[i]
	a.Tags = slices.Clone(a.Tags)
	return &a, nil
}
