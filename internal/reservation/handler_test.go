package reservation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestYearMonthBounds(t *testing.T) {
	from, to, ok := yearMonthBounds(2024, 1)
	assert.True(t, ok)
	assert.Equal(t, "2024-01-01", from)
	assert.Equal(t, "2024-02-01", to)

	// December rolls into the next year
	from, to, ok = yearMonthBounds(2024, 12)
	assert.True(t, ok)
	assert.Equal(t, "2024-12-01", from)
	assert.Equal(t, "2025-01-01", to)

	// a year alone covers the whole year, not every year in the table
	from, to, ok = yearMonthBounds(2024, 0)
	assert.True(t, ok)
	assert.Equal(t, "2024-01-01", from)
	assert.Equal(t, "2025-01-01", to)

	// out-of-range months degrade to the year bound
	from, to, ok = yearMonthBounds(2024, 13)
	assert.True(t, ok)
	assert.Equal(t, "2024-01-01", from)
	assert.Equal(t, "2025-01-01", to)

	_, _, ok = yearMonthBounds(0, 5)
	assert.False(t, ok)
}
