package api

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// MovementType distinguishes income from expense. The sign shown next to an
// amount is derived from this, never stored.
type MovementType string

const (
	Income  MovementType = "INCOME"
	Expense MovementType = "EXPENSE"
)

// Date is a calendar day serialized as "YYYY-MM-DD" on the wire.
type Date struct {
	time.Time
}

// NewDate builds a Date from year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current calendar day.
func Today() Date {
	now := time.Now()
	return NewDate(now.Year(), now.Month(), now.Day())
}

func (d Date) String() string {
	return d.Format("2006-01-02")
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return fmt.Errorf("parsing date %q: %w", s, err)
	}
	d.Time = t
	return nil
}

// MonthList is the set of months (1..12) a budget applies to. nil means
// every month. The server has historically returned this both as a JSON
// array and as a string containing a JSON array, so decoding accepts both.
type MonthList []int

// UnmarshalJSON implements json.Unmarshaler.
func (m *MonthList) UnmarshalJSON(data []byte) error {
	var months []int
	if err := json.Unmarshal(data, &months); err == nil {
		*m = months
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("parsing applicable months: %w", err)
	}
	if s == "" {
		*m = nil
		return nil
	}
	if err := json.Unmarshal([]byte(s), &months); err != nil {
		return fmt.Errorf("parsing applicable months %q: %w", s, err)
	}
	*m = months
	return nil
}

// Contains reports whether month (1..12) is covered. A nil list covers all.
func (m MonthList) Contains(month int) bool {
	if m == nil {
		return true
	}
	for _, v := range m {
		if v == month {
			return true
		}
	}
	return false
}

// User is the authenticated account as returned by /users/me.
type User struct {
	ID          int    `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email,omitempty"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	IsActive    bool   `json:"is_active"`
	IsSuperuser bool   `json:"is_superuser"`
	FamilyID    *int   `json:"family_id,omitempty"`
}

// DisplayName returns "first last" when set, otherwise the username.
func (u User) DisplayName() string {
	name := u.FirstName
	if u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += u.LastName
	}
	if name == "" {
		return u.Username
	}
	return name
}

// Movement is a single income or expense transaction. Amount is always a
// positive magnitude.
type Movement struct {
	ID              int             `json:"id,omitempty"`
	Type            MovementType    `json:"type"`
	Date            Date            `json:"date"`
	Amount          decimal.Decimal `json:"amount"`
	Category        string          `json:"category"`
	Description     string          `json:"description,omitempty"`
	IsPlanned       bool            `json:"is_planned"`
	IsConfirmed     bool            `json:"is_confirmed"`
	FromRecurringID *int            `json:"from_recurring_id,omitempty"`
}

// Category is a spending category. Movements, budgets and recurring
// expenses reference it by name.
type Category struct {
	ID    int    `json:"id,omitempty"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
	Icon  string `json:"icon,omitempty"`
}

// Budget is a monthly spending ceiling for one category.
type Budget struct {
	ID               int             `json:"id,omitempty"`
	Category         string          `json:"category"`
	Amount           decimal.Decimal `json:"amount"`
	ApplicableMonths MonthList       `json:"applicable_months,omitempty"`
}

// RecurringExpense is a template the server expands into dated movements.
type RecurringExpense struct {
	ID             int             `json:"id,omitempty"`
	Name           string          `json:"name"`
	Amount         decimal.Decimal `json:"amount"`
	Category       string          `json:"category"`
	Description    string          `json:"description,omitempty"`
	RecurrenceType string          `json:"recurrence_type"`
	DayOfMonth     int             `json:"day_of_month"`
	StartDate      Date            `json:"start_date"`
	EndDate        *Date           `json:"end_date,omitempty"`
	IsActive       bool            `json:"is_active,omitempty"`
}

// SavingsGoal tracks progress toward a saving target. Progress and the
// monthly amount needed are derived client-side, never persisted.
type SavingsGoal struct {
	ID            int             `json:"id,omitempty"`
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	Deadline      *Date           `json:"deadline,omitempty"`
	Color         string          `json:"color,omitempty"`
}

// Family groups users sharing one set of books.
type Family struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// SMTPConfig is the outbound mail configuration, editable by superusers.
// The password is write-only: the server blanks it on read and this client
// never pre-fills it.
type SMTPConfig struct {
	ID           int    `json:"id,omitempty"`
	SMTPServer   string `json:"smtp_server"`
	SMTPPort     int    `json:"smtp_port"`
	SMTPUsername string `json:"smtp_username"`
	SMTPPassword string `json:"smtp_password,omitempty"`
	FromEmail    string `json:"from_email"`
	UseTLS       bool   `json:"use_tls"`
}

// Period identifies the month a dashboard payload covers.
type Period struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

// Summary is the server-computed monthly aggregate. The balance is all-time
// up to today, not the selected month.
type Summary struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
	Period  Period          `json:"period"`
}

// BudgetStatus is the server-computed spent-vs-limit line for one budget.
type BudgetStatus struct {
	Category   string          `json:"category"`
	Spent      decimal.Decimal `json:"spent"`
	Limit      decimal.Decimal `json:"limit"`
	Remaining  decimal.Decimal `json:"remaining"`
	Percentage float64         `json:"percentage"`
}

// BudgetStatusResponse wraps /dashboard/budget-status.
type BudgetStatusResponse struct {
	Budgets []BudgetStatus `json:"budgets"`
	Period  Period         `json:"period"`
}

// CategoryAmount is one slice of the expenses-by-category breakdown.
type CategoryAmount struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// ChartData wraps /dashboard/chart-data.
type ChartData struct {
	ExpensesByCategory []CategoryAmount `json:"expenses_by_category"`
	Period             Period           `json:"period"`
}

// SearchResults is the unified /search response: three parallel buckets
// plus a total count.
type SearchResults struct {
	Query        string `json:"query"`
	TotalResults int    `json:"total_results"`
	Results      struct {
		Movements         []Movement         `json:"movements"`
		Categories        []Category         `json:"categories"`
		RecurringExpenses []RecurringExpense `json:"recurring_expenses"`
	} `json:"results"`
}
