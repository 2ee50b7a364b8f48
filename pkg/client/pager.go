package client

import (
	"context"

	"github.com/gork-labs/paykit/pkg/models"
)

// Pager walks the pages of a list endpoint:
//
//	pager := c.Customers.Pager(client.ListParams{Limit: 100})
//	for pager.Next(ctx) {
//		for _, customer := range pager.Page().Items { ... }
//	}
//	if err := pager.Err(); err != nil { ... }
type Pager[T any] struct {
	fetch  func(context.Context, ListParams) (*models.ListResource[T], error)
	params ListParams
	page   *models.ListResource[T]
	done   bool
	err    error
}

func newPager[T any](params ListParams, fetch func(context.Context, ListParams) (*models.ListResource[T], error)) *Pager[T] {
	if params.Page < 1 {
		params.Page = 1
	}
	return &Pager[T]{fetch: fetch, params: params}
}

// Next fetches the next page. It returns false when there are no more pages
// or a request failed; check Err to tell them apart.
func (p *Pager[T]) Next(ctx context.Context) bool {
	if p.done {
		return false
	}

	page, err := p.fetch(ctx, p.params)
	if err != nil {
		p.err = err
		p.done = true
		return false
	}

	p.page = page
	if len(page.Items) == 0 {
		p.done = true
		return false
	}
	if p.params.Page >= page.Pagination.MaxPage {
		p.done = true
	}
	p.params.Page++
	return true
}

// Page returns the page fetched by the last successful call to Next.
func (p *Pager[T]) Page() *models.ListResource[T] {
	return p.page
}

func (p *Pager[T]) Err() error {
	return p.err
}

// All collects the items of every remaining page.
func (p *Pager[T]) All(ctx context.Context) ([]T, error) {
	var items []T
	for p.Next(ctx) {
		items = append(items, p.page.Items...)
	}
	return items, p.err
}
