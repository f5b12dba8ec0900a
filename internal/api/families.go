package api

import "context"

// ListFamilies fetches all families. Superuser only.
func (c *Client) ListFamilies(ctx context.Context) ([]Family, error) {
	var out []Family
	if err := c.Get(ctx, "/families", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateFamily adds a family. Superuser only.
func (c *Client) CreateFamily(ctx context.Context, name string) (Family, error) {
	var out Family
	body := map[string]string{"name": name}
	if err := c.Post(ctx, "/families", nil, body, &out); err != nil {
		return Family{}, err
	}
	return out, nil
}
