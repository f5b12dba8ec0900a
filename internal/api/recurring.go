package api

import (
	"context"
	"fmt"
)

// ListRecurring fetches all active recurring expense definitions.
func (c *Client) ListRecurring(ctx context.Context) ([]RecurringExpense, error) {
	var out []RecurringExpense
	if err := c.Get(ctx, "/recurring", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateRecurring adds a recurring expense; the server generates its
// movement occurrences.
func (c *Client) CreateRecurring(ctx context.Context, r RecurringExpense) (RecurringExpense, error) {
	var out RecurringExpense
	if err := c.Post(ctx, "/recurring", nil, r, &out); err != nil {
		return RecurringExpense{}, err
	}
	return out, nil
}

// UpdateRecurring edits a recurring expense; the server regenerates
// unconfirmed occurrences.
func (c *Client) UpdateRecurring(ctx context.Context, id int, r RecurringExpense) (RecurringExpense, error) {
	var out RecurringExpense
	if err := c.Put(ctx, fmt.Sprintf("/recurring/%d", id), nil, r, &out); err != nil {
		return RecurringExpense{}, err
	}
	return out, nil
}

// DeleteRecurring removes a recurring expense. Per the server contract,
// confirmed occurrences are preserved and unconfirmed ones removed; the
// client performs no local cleanup.
func (c *Client) DeleteRecurring(ctx context.Context, id int) error {
	return c.Delete(ctx, fmt.Sprintf("/recurring/%d", id))
}

// ConfirmRecurringMovement marks a spawned occurrence as actually incurred.
// This transition is one-way.
func (c *Client) ConfirmRecurringMovement(ctx context.Context, movementID int) (Movement, error) {
	var out Movement
	err := c.Post(ctx, fmt.Sprintf("/recurring/movements/%d/confirm", movementID), nil, nil, &out)
	if err != nil {
		return Movement{}, err
	}
	return out, nil
}
