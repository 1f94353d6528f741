package catalog

import (
	_ "embed"
	"fmt"
	"strings"

	"monastery360/models"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// CatalogService exposes the static site content the planner is built on.
type CatalogService interface {
	Monasteries(filter models.MonasteryFilter) []models.Monastery
	MonasteryByID(id string) (*models.Monastery, error)
	Packages() []models.TravelPackage
	PackageByID(id string) (*models.TravelPackage, error)
	Tips() []models.TravelTip
	Options() models.PlannerOptions
	Festivals(filter models.FestivalFilter) []models.Festival
	AuspiciousDays() []models.AuspiciousDay
	Archives(filter models.ArchiveFilter) []models.ArchiveItem
	ArchiveByID(id string) (*models.ArchiveItem, error)
}

type catalogFile struct {
	Monasteries []models.Monastery     `yaml:"monasteries"`
	Packages    []models.TravelPackage `yaml:"packages"`
	Tips        []models.TravelTip     `yaml:"tips"`
	Options     models.PlannerOptions  `yaml:"options"`

	Festivals      []models.Festival      `yaml:"festivals"`
	AuspiciousDays []models.AuspiciousDay `yaml:"auspiciousDays"`
	Archives       []models.ArchiveItem   `yaml:"archives"`
}

// StaticCatalog is a read-only, in-memory catalog.
type StaticCatalog struct {
	data        catalogFile
	monasteries map[string]int
	packages    map[string]int
	archives    map[string]int
}

// NewDefaultCatalog loads the catalog compiled into the binary.
func NewDefaultCatalog() (*StaticCatalog, error) {
	return Parse(defaultCatalog)
}

// Parse builds a catalog from YAML, rejecting empty or duplicate ids.
func Parse(raw []byte) (*StaticCatalog, error) {
	var data catalogFile
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	c := &StaticCatalog{
		data:        data,
		monasteries: make(map[string]int, len(data.Monasteries)),
		packages:    make(map[string]int, len(data.Packages)),
		archives:    make(map[string]int, len(data.Archives)),
	}
	for i, m := range data.Monasteries {
		if m.ID == "" {
			return nil, fmt.Errorf("catalog: monastery at index %d has no id", i)
		}
		if _, dup := c.monasteries[m.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate monastery id %q", m.ID)
		}
		c.monasteries[m.ID] = i
	}
	for i, p := range data.Packages {
		if p.ID == "" {
			return nil, fmt.Errorf("catalog: package at index %d has no id", i)
		}
		if _, dup := c.packages[p.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate package id %q", p.ID)
		}
		c.packages[p.ID] = i
	}
	if err := c.indexCalendar(); err != nil {
		return nil, err
	}
	for i, a := range data.Archives {
		if a.ID == "" {
			return nil, fmt.Errorf("catalog: archive item at index %d has no id", i)
		}
		if _, dup := c.archives[a.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate archive id %q", a.ID)
		}
		c.archives[a.ID] = i
	}
	return c, nil
}

// Monasteries returns the catalog entries matching filter, in catalog order.
func (c *StaticCatalog) Monasteries(filter models.MonasteryFilter) []models.Monastery {
	query := strings.ToLower(strings.TrimSpace(filter.Query))
	tradition := strings.TrimSpace(filter.Tradition)

	out := make([]models.Monastery, 0, len(c.data.Monasteries))
	for _, m := range c.data.Monasteries {
		if tradition != "" && tradition != "all" && !strings.EqualFold(m.Tradition, tradition) {
			continue
		}
		if filter.VirtualOnly && !m.HasVirtualTour {
			continue
		}
		if query != "" && !matchesQuery(m, query) {
			continue
		}
		out = append(out, m)
	}
	return out
}

func matchesQuery(m models.Monastery, query string) bool {
	for _, field := range []string{m.Name, m.Location, m.Description} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

func (c *StaticCatalog) MonasteryByID(id string) (*models.Monastery, error) {
	i, ok := c.monasteries[id]
	if !ok {
		return nil, fmt.Errorf("%w: monastery %q", ErrNotFound, id)
	}
	m := c.data.Monasteries[i]
	return &m, nil
}

func (c *StaticCatalog) Packages() []models.TravelPackage {
	out := make([]models.TravelPackage, len(c.data.Packages))
	copy(out, c.data.Packages)
	return out
}

func (c *StaticCatalog) PackageByID(id string) (*models.TravelPackage, error) {
	i, ok := c.packages[id]
	if !ok {
		return nil, fmt.Errorf("%w: package %q", ErrNotFound, id)
	}
	p := c.data.Packages[i]
	p.Includes = append([]string(nil), p.Includes...)
	return &p, nil
}

func (c *StaticCatalog) Tips() []models.TravelTip {
	out := make([]models.TravelTip, len(c.data.Tips))
	copy(out, c.data.Tips)
	return out
}

func (c *StaticCatalog) Options() models.PlannerOptions {
	return models.PlannerOptions{
		FlightDestinations: append([]string(nil), c.data.Options.FlightDestinations...),
		HotelLocations:     append([]string(nil), c.data.Options.HotelLocations...),
	}
}
