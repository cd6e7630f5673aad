package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	p := Params{Page: 0, PageSize: -5}.normalize()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultPageSize, p.PageSize)

	p = Params{Page: 3, PageSize: 99999}.normalize()
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, MaxPageSize, p.PageSize)
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Params{Page: 1, PageSize: 50}.Offset())
	assert.Equal(t, 100, Params{Page: 3, PageSize: 50}.Offset())
}

func TestNewPage(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		count    int64
		wantNext *int
		wantPrev *int
	}{
		{name: "first of many", page: 1, count: 120, wantNext: intPtr(2), wantPrev: nil},
		{name: "middle", page: 2, count: 120, wantNext: intPtr(3), wantPrev: intPtr(1)},
		{name: "last", page: 3, count: 120, wantNext: nil, wantPrev: intPtr(2)},
		{name: "exact boundary", page: 2, count: 100, wantNext: nil, wantPrev: intPtr(1)},
		{name: "empty", page: 1, count: 0, wantNext: nil, wantPrev: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewPage(Params{Page: tt.page, PageSize: 50}, tt.count, nil)
			assert.Equal(t, tt.count, got.Count)
			assert.Equal(t, tt.wantNext, got.Next)
			assert.Equal(t, tt.wantPrev, got.Previous)
		})
	}
}

func intPtr(v int) *int { return &v }
