package ppa

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Execution Date", "execution_date"},
		{"Capacity (MW)", "capacity_mw"},
		{"  Price  ", "price"},
		{"Levelized Price ($/MWh)", "levelized_price_mwh"},
		{"Share %", "share_percent"},
		{"Project #", "project_number"},
		{"already_clean", "already_clean"},
		{"ISO-NE", "iso_ne"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanName(tt.in))
		})
	}
}

func TestErrorsMatchSentinels(t *testing.T) {
	schema := fmt.Errorf("load: %w", &SchemaMismatchError{Sheet: "Data", Range: "A1:D3", Reason: "bad"})
	assert.True(t, errors.Is(schema, ErrSchemaMismatch))
	assert.False(t, errors.Is(schema, ErrDateParse))

	date := fmt.Errorf("normalize: %w", &DateParseError{Row: 4, Value: "soon"})
	assert.True(t, errors.Is(date, ErrDateParse))

	var dpe *DateParseError
	assert.True(t, errors.As(date, &dpe))
	assert.Equal(t, 4, dpe.Row)
	assert.Contains(t, dpe.Error(), `"soon"`)
}

func TestRegionIndex(t *testing.T) {
	table := LongTable{Regions: []string{"CAISO", "Hawaii"}}
	assert.Equal(t, 1, table.RegionIndex("Hawaii"))
	assert.Equal(t, -1, table.RegionIndex("PJM"))
}
