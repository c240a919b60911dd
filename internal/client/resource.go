package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"busbooking/internal/domain"
)

// Resource is the CRUD surface of one REST collection, e.g. "locations".
type Resource[T any] struct {
	c    *Client
	path string
}

func NewResource[T any](c *Client, name string) Resource[T] {
	return Resource[T]{c: c, path: "/" + name}
}

func listQuery(f domain.ListFilter) url.Values {
	f = f.Normalize()
	q := url.Values{}
	if f.IsActive != nil {
		q.Set("isActive", strconv.FormatBool(*f.IsActive))
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.TypeOrCityID != "" {
		q.Set("typeOrCityId", f.TypeOrCityID)
	}
	q.Set("pageSize", strconv.Itoa(f.PageSize))
	q.Set("pageNumber", strconv.Itoa(f.PageNumber))
	return q
}

func (r Resource[T]) item(id domain.ID) string {
	return fmt.Sprintf("%s/%d", r.path, id)
}

func (r Resource[T]) FetchList(ctx context.Context, f domain.ListFilter) (domain.Page[T], error) {
	var page domain.Page[T]
	if err := r.c.do(ctx, http.MethodGet, r.path, listQuery(f), nil, &page); err != nil {
		return domain.Page[T]{}, err
	}
	return page, nil
}

func (r Resource[T]) Get(ctx context.Context, id domain.ID) (*T, error) {
	var v T
	if err := r.c.do(ctx, http.MethodGet, r.item(id), nil, nil, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// Create posts data. The created record is not returned; callers refetch.
func (r Resource[T]) Create(ctx context.Context, data any) error {
	return r.c.do(ctx, http.MethodPost, r.path, nil, data, nil)
}

// Update sends only the keys present in partial.
func (r Resource[T]) Update(ctx context.Context, id domain.ID, partial map[string]any) error {
	return r.c.do(ctx, http.MethodPut, r.item(id), nil, partial, nil)
}

func (r Resource[T]) Delete(ctx context.Context, id domain.ID) error {
	return r.c.do(ctx, http.MethodDelete, r.item(id), nil, nil, nil)
}
