package api

import (
	"context"
	"fmt"
	"net/url"
)

// ListBudgets fetches all budgets.
func (c *Client) ListBudgets(ctx context.Context) ([]Budget, error) {
	var out []Budget
	if err := c.Get(ctx, "/budgets", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SaveBudget creates or upserts a budget for its category.
func (c *Client) SaveBudget(ctx context.Context, b Budget) (Budget, error) {
	var out Budget
	if err := c.Post(ctx, "/budgets", nil, b, &out); err != nil {
		return Budget{}, err
	}
	return out, nil
}

// DeleteBudget removes a budget, leaving any movements in its category
// untouched.
func (c *Client) DeleteBudget(ctx context.Context, id int) error {
	return c.Delete(ctx, fmt.Sprintf("/budgets/%d", id))
}

// BudgetExpenses lists the expense movements currently associated with the
// budget's category. Used to decide whether deletion needs a reassignment
// prompt.
func (c *Client) BudgetExpenses(ctx context.Context, id int) ([]Movement, error) {
	var out []Movement
	if err := c.Get(ctx, fmt.Sprintf("/budgets/%d/expenses", id), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ReassignAndDeleteBudget moves every matching movement to newCategory and
// deletes the budget in one server-side operation, so there is no window
// where one half succeeded and the other failed.
func (c *Client) ReassignAndDeleteBudget(ctx context.Context, id int, newCategory string) error {
	q := url.Values{}
	q.Set("new_category", newCategory)
	return c.Post(ctx, fmt.Sprintf("/budgets/reassign-and-delete/%d", id), q, nil, nil)
}
