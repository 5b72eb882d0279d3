package service

import (
	"context"
	"net/url"
	"strconv"

	"navident-console/internal/api"
	"navident-console/internal/domain/entity"
)

// CRUD is the uniform operation set every entity service shares. It is a pure
// pass-through to the backend; validation belongs to the form layer.
type CRUD[T any] struct {
	client *api.Client
	base   string
}

func NewCRUD[T any](client *api.Client, base string) *CRUD[T] {
	return &CRUD[T]{client: client, base: base}
}

func (s *CRUD[T]) GetAll(ctx context.Context, req entity.PageRequest) (*entity.Page[T], error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(req.Page))
	params.Set("size", strconv.Itoa(req.Size))
	if req.SortBy != "" {
		params.Set("sortBy", req.SortBy)
	}
	if req.SortDir != "" {
		params.Set("sortDir", req.SortDir)
	}

	var page entity.Page[T]
	if err := s.client.Get(ctx, s.base, params, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *CRUD[T]) GetByID(ctx context.Context, id string) (*T, error) {
	var record T
	if err := s.client.Get(ctx, s.base+"/"+id, nil, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *CRUD[T]) Create(ctx context.Context, record *T) (*T, error) {
	var created T
	if err := s.client.Post(ctx, s.base, nil, record, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *CRUD[T]) Update(ctx context.Context, id string, record *T) (*T, error) {
	var updated T
	if err := s.client.Put(ctx, s.base+"/"+id, nil, record, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *CRUD[T]) Delete(ctx context.Context, id string) error {
	return s.client.Delete(ctx, s.base+"/"+id)
}

// Search returns an unpaginated match list.
func (s *CRUD[T]) Search(ctx context.Context, query string) ([]T, error) {
	params := url.Values{}
	params.Set("query", query)

	var results []T
	if err := s.client.Get(ctx, s.base+"/search", params, &results); err != nil {
		return nil, err
	}
	return results, nil
}
