package httpx

import (
	"math"
	"net/http"
	"strconv"
)

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
	// MaxPage keeps (page-1)*MaxPageLimit within int.
	MaxPage = math.MaxInt / MaxPageLimit
)

// Page is a 1-based page window parsed from ?page=&limit=.
type Page struct {
	Page  int
	Limit int
}

// Offset is the number of rows to skip. It never overflows: windows past the
// largest representable offset saturate.
func (p Page) Offset() int {
	if p.Page <= 1 || p.Limit <= 0 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt / p.Limit * p.Limit
	}
	return (p.Page - 1) * p.Limit
}

// Meta is the pagination block returned with list responses.
type Meta struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// ParsePage reads page and limit from the query. Missing or invalid values fall
// back to page 1 and DefaultPageLimit; page is capped at MaxPage and limit at
// MaxPageLimit.
func ParsePage(r *http.Request) Page {
	q := r.URL.Query()
	p := Page{Page: 1, Limit: DefaultPageLimit}
	if v, err := strconv.Atoi(q.Get("page")); err == nil && v > 0 {
		p.Page = min(v, MaxPage)
	}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil && v > 0 {
		p.Limit = min(v, MaxPageLimit)
	}
	return p
}
