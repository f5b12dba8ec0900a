package api

import (
	"context"
	"net/url"
	"strconv"
)

func periodQuery(month, year int) url.Values {
	q := url.Values{}
	if month != 0 {
		q.Set("month", strconv.Itoa(month))
	}
	if year != 0 {
		q.Set("year", strconv.Itoa(year))
	}
	return q
}

// Summary fetches the income/expense/balance aggregate for a month.
// The client never recomputes these locally.
func (c *Client) Summary(ctx context.Context, month, year int) (Summary, error) {
	var out Summary
	if err := c.Get(ctx, "/dashboard/summary", periodQuery(month, year), &out); err != nil {
		return Summary{}, err
	}
	return out, nil
}

// BudgetStatuses fetches spent-vs-limit for every budget applicable to the
// month.
func (c *Client) BudgetStatuses(ctx context.Context, month, year int) ([]BudgetStatus, error) {
	var out BudgetStatusResponse
	if err := c.Get(ctx, "/dashboard/budget-status", periodQuery(month, year), &out); err != nil {
		return nil, err
	}
	return out.Budgets, nil
}

// ChartData fetches the expenses-by-category breakdown for a month.
func (c *Client) ChartData(ctx context.Context, month, year int) (ChartData, error) {
	var out ChartData
	if err := c.Get(ctx, "/dashboard/chart-data", periodQuery(month, year), &out); err != nil {
		return ChartData{}, err
	}
	return out, nil
}

// AvailableYears lists the years that have movement data; the month picker
// never steps outside them.
func (c *Client) AvailableYears(ctx context.Context) ([]int, error) {
	var out struct {
		Years []int `json:"years"`
	}
	if err := c.Get(ctx, "/dashboard/available-years", nil, &out); err != nil {
		return nil, err
	}
	return out.Years, nil
}
