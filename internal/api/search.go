package api

import (
	"context"
	"net/url"
)

// MinSearchLength is the shortest query the search endpoint accepts.
// Shorter queries must never hit the network.
const MinSearchLength = 2

// Search runs the unified search across movements, categories and
// recurring expenses.
func (c *Client) Search(ctx context.Context, query string) (SearchResults, error) {
	q := url.Values{}
	q.Set("q", query)

	var out SearchResults
	if err := c.Get(ctx, "/search", q, &out); err != nil {
		return SearchResults{}, err
	}
	return out, nil
}
