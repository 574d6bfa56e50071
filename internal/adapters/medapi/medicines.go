package medapi

import (
	"context"
	"net/http"

	"med-reminder/internal/domain/medicines"
)

var (
	_ medicines.Repository = (*Client)(nil)
	_ medicines.Catalog    = (*Client)(nil)
)

func (c *Client) List(ctx context.Context) ([]medicines.Medicine, error) {
	var out []medicines.Medicine
	if err := c.call(ctx, http.MethodGet, "/api/user-medicines", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Add(ctx context.Context, m medicines.Medicine) (medicines.Medicine, error) {
	var out medicines.Medicine
	err := c.call(ctx, http.MethodPost, "/api/user-medicines", nil, m, &out)
	return out, err
}

func (c *Client) Remove(ctx context.Context, id string) error {
	return c.call(ctx, http.MethodDelete, idPath("/api/user-medicines", id), nil, nil, nil)
}

func (c *Client) ListCatalog(ctx context.Context) ([]medicines.CatalogEntry, error) {
	var out []medicines.CatalogEntry
	if err := c.call(ctx, http.MethodGet, "/api/medicines", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateCatalog(ctx context.Context, e medicines.CatalogEntry) (medicines.CatalogEntry, error) {
	var out medicines.CatalogEntry
	err := c.call(ctx, http.MethodPost, "/api/medicines", nil, e, &out)
	return out, err
}

func (c *Client) DeleteCatalog(ctx context.Context, id string) error {
	return c.call(ctx, http.MethodDelete, idPath("/api/medicines", id), nil, nil, nil)
}
