// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PageSize is the default number of rows in a list response.
const PageSize = 25

// MaxPageSize caps the limit a client may request.
const MaxPageSize = 200

// Params is a parsed page request. Page is 1-based.
type Params struct {
	Page  int
	Limit int
}

// Parse reads "page" and "limit" from the query string. Missing or invalid
// values fall back to page 1 and PageSize; limit is capped at MaxPageSize.
func Parse(r *http.Request) Params {
	p := Params{Page: 1, Limit: PageSize}
	if n, err := strconv.Atoi(query.Get(r, "page")); err == nil && n >= 1 {
		p.Page = n
	}
	if n, err := strconv.Atoi(query.Get(r, "limit")); err == nil && n >= 1 {
		p.Limit = n
	}
	if p.Limit > MaxPageSize {
		p.Limit = MaxPageSize
	}
	return p
}

// Skip returns the number of documents before this page.
func (p Params) Skip() int64 {
	if p.Page < 1 {
		return 0
	}
	return int64(p.Page-1) * int64(p.Limit)
}

// FindOptions returns Find options for this page ordered by sort, with _id
// as a tiebreaker so pages are stable.
func (p Params) FindOptions(sort bson.D) *options.FindOptions {
	sort = append(sort, bson.E{Key: "_id", Value: 1})
	return options.Find().
		SetSort(sort).
		SetSkip(p.Skip()).
		SetLimit(int64(p.Limit))
}

// Meta is the pagination block of a list response.
type Meta struct {
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	Limit   int   `json:"limit"`
	HasMore bool  `json:"has_more"`
}

// MetaFor builds the pagination block for a page given the total count.
func (p Params) MetaFor(total int64) Meta {
	return Meta{
		Total:   total,
		Page:    p.Page,
		Limit:   p.Limit,
		HasMore: p.Skip()+int64(p.Limit) < total,
	}
}
