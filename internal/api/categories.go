package api

import (
	"context"
	"fmt"
)

// ListCategories fetches all categories.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var out []Category
	if err := c.Get(ctx, "/categories", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateCategory adds a category.
func (c *Client) CreateCategory(ctx context.Context, cat Category) (Category, error) {
	var out Category
	if err := c.Post(ctx, "/categories", nil, cat, &out); err != nil {
		return Category{}, err
	}
	return out, nil
}

// UpdateCategory renames or recolors a category.
func (c *Client) UpdateCategory(ctx context.Context, id int, cat Category) (Category, error) {
	var out Category
	if err := c.Put(ctx, fmt.Sprintf("/categories/%d", id), nil, cat, &out); err != nil {
		return Category{}, err
	}
	return out, nil
}

// DeleteCategory removes a category.
func (c *Client) DeleteCategory(ctx context.Context, id int) error {
	return c.Delete(ctx, fmt.Sprintf("/categories/%d", id))
}
