package catalog

import (
	"errors"
	"testing"

	"monastery360/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogLoads(t *testing.T) {
	c, err := NewDefaultCatalog()
	require.NoError(t, err)

	all := c.Monasteries(models.MonasteryFilter{})
	assert.Len(t, all, 7)
	assert.Equal(t, "rumtek", all[0].ID)
	assert.Len(t, c.Packages(), 3)
	assert.Len(t, c.Tips(), 4)
	assert.Contains(t, c.Options().HotelLocations, "Pelling")
}

func TestMonasteriesFilter(t *testing.T) {
	c, err := NewDefaultCatalog()
	require.NoError(t, err)

	tests := []struct {
		name   string
		filter models.MonasteryFilter
		want   []string
	}{
		{"tradition", models.MonasteryFilter{Tradition: "gelug"}, []string{"phensang"}},
		{"all tradition", models.MonasteryFilter{Tradition: "all", Query: "gangtok"}, []string{"rumtek", "tsuklakhang", "enchey"}},
		{"query on description", models.MonasteryFilter{Query: "first monastery"}, []string{"dubdi"}},
		{"virtual tours", models.MonasteryFilter{VirtualOnly: true, Tradition: "Kagyu"}, []string{"rumtek"}},
		{"no match", models.MonasteryFilter{Query: "lhasa"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Monasteries(tt.filter)
			ids := make([]string, 0, len(got))
			for _, m := range got {
				ids = append(ids, m.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestLookups(t *testing.T) {
	c, err := NewDefaultCatalog()
	require.NoError(t, err)

	m, err := c.MonasteryByID("pemayangtse")
	require.NoError(t, err)
	assert.Equal(t, "Pelling", m.Location)

	p, err := c.PackageByID("standard")
	require.NoError(t, err)
	assert.True(t, p.Popular)
	assert.Equal(t, 599.0, p.Price)

	_, err = c.MonasteryByID("potala")
	assert.True(t, errors.Is(err, ErrNotFound))
	_, err = c.PackageByID("deluxe")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestLookupsReturnCopies(t *testing.T) {
	c, err := NewDefaultCatalog()
	require.NoError(t, err)

	p, err := c.PackageByID("basic")
	require.NoError(t, err)
	p.Includes[0] = "changed"
	p.Price = 1

	again, err := c.PackageByID("basic")
	require.NoError(t, err)
	assert.Equal(t, "Accommodation (3-star)", again.Includes[0])
	assert.Equal(t, 299.0, again.Price)
}

func TestParseRejectsDuplicates(t *testing.T) {
	raw := []byte(`
monasteries:
  - id: rumtek
    name: A
  - id: rumtek
    name: B
`)
	_, err := Parse(raw)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate monastery id")

	_, err = Parse([]byte("packages:\n  - name: nameless\n"))
	require.Error(t, err)
}
