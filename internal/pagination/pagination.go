package pagination

import (
	"github.com/gofiber/fiber/v2"
)

const (
	DefaultPageSize = 50
	// The dashboard "load everything" calls ask for page_size=10000.
	MaxPageSize = 10000
)

type Params struct {
	Page     int
	PageSize int
}

// Parse reads ?page and ?page_size, clamping both to sane values.
func Parse(c *fiber.Ctx) Params {
	p := Params{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", DefaultPageSize),
	}
	return p.normalize()
}

func (p Params) normalize() Params {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Page is the list envelope: total row count plus next/previous page
// numbers (null when there is no such page).
type Page struct {
	Count    int64 `json:"count"`
	Next     *int  `json:"next"`
	Previous *int  `json:"previous"`
	Results  any   `json:"results"`
}

func NewPage(p Params, count int64, results any) Page {
	page := Page{Count: count, Results: results}

	if int64(p.Page*p.PageSize) < count {
		next := p.Page + 1
		page.Next = &next
	}
	if p.Page > 1 {
		prev := p.Page - 1
		page.Previous = &prev
	}
	return page
}
