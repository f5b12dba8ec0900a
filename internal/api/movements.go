package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// MovementFilter narrows a movement listing. Zero values mean "no filter".
type MovementFilter struct {
	Month          int
	Year           int
	Category       string
	Type           MovementType
	IncludePlanned bool
}

func (f MovementFilter) query() url.Values {
	q := url.Values{}
	if f.Month != 0 {
		q.Set("month", strconv.Itoa(f.Month))
	}
	if f.Year != 0 {
		q.Set("year", strconv.Itoa(f.Year))
	}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.Type != "" {
		q.Set("type", string(f.Type))
	}
	if f.IncludePlanned {
		q.Set("include_planned", "true")
	}
	return q
}

// ListMovements fetches movements matching the filter.
func (c *Client) ListMovements(ctx context.Context, f MovementFilter) ([]Movement, error) {
	var out []Movement
	if err := c.Get(ctx, "/movements", f.query(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateMovement records a new movement.
func (c *Client) CreateMovement(ctx context.Context, m Movement) (Movement, error) {
	var out Movement
	if err := c.Post(ctx, "/movements", nil, m, &out); err != nil {
		return Movement{}, err
	}
	return out, nil
}

// UpdateMovement replaces a movement's fields.
func (c *Client) UpdateMovement(ctx context.Context, id int, m Movement) (Movement, error) {
	var out Movement
	if err := c.Put(ctx, fmt.Sprintf("/movements/%d", id), nil, m, &out); err != nil {
		return Movement{}, err
	}
	return out, nil
}

// DeleteMovement removes a movement.
func (c *Client) DeleteMovement(ctx context.Context, id int) error {
	return c.Delete(ctx, fmt.Sprintf("/movements/%d", id))
}
