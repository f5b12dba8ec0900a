package api

import (
	"context"
	"fmt"
)

// ListGoals fetches all savings goals.
func (c *Client) ListGoals(ctx context.Context) ([]SavingsGoal, error) {
	var out []SavingsGoal
	if err := c.Get(ctx, "/goals", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateGoal adds a savings goal.
func (c *Client) CreateGoal(ctx context.Context, g SavingsGoal) (SavingsGoal, error) {
	var out SavingsGoal
	if err := c.Post(ctx, "/goals", nil, g, &out); err != nil {
		return SavingsGoal{}, err
	}
	return out, nil
}

// UpdateGoal edits a savings goal.
func (c *Client) UpdateGoal(ctx context.Context, id int, g SavingsGoal) (SavingsGoal, error) {
	var out SavingsGoal
	if err := c.Put(ctx, fmt.Sprintf("/goals/%d", id), nil, g, &out); err != nil {
		return SavingsGoal{}, err
	}
	return out, nil
}

// DeleteGoal removes a savings goal.
func (c *Client) DeleteGoal(ctx context.Context, id int) error {
	return c.Delete(ctx, fmt.Sprintf("/goals/%d", id))
}
