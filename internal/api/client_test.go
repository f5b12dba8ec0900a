package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestSharedHeaders(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		json.NewEncoder(w).Encode([]Category{})
	})

	c := New(srv.URL, "tok-1")
	_, err := c.ListCategories(context.Background())
	require.NoError(t, err)
}

func TestNoAuthHeaderWithoutToken(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(Token{AccessToken: "tok-2", TokenType: "bearer"})
	})

	c := New(srv.URL, "")
	tok, err := c.Login(context.Background(), "mario", "segreta")
	require.NoError(t, err)
	assert.Equal(t, "tok-2", tok.AccessToken)
}

func TestLoginIsFormEncoded(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/token", r.URL.Path)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "mario", r.FormValue("username"))
		assert.Equal(t, "segreta", r.FormValue("password"))
		json.NewEncoder(w).Encode(Token{AccessToken: "tok-1", TokenType: "bearer"})
	})

	c := New(srv.URL, "")
	_, err := c.Login(context.Background(), "mario", "segreta")
	require.NoError(t, err)
}

func TestAPIErrorCarriesDetail(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Category already exists"})
	})

	c := New(srv.URL, "tok-1")
	_, err := c.CreateCategory(context.Background(), Category{Name: "Spesa"})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	assert.Equal(t, "Category already exists", apiErr.Detail)
	assert.NotEmpty(t, apiErr.RequestID)
}

func TestUnauthorizedMatchesSentinel(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		})

		c := New(srv.URL, "tok-expired")
		_, err := c.CurrentUser(context.Background())
		assert.ErrorIs(t, err, ErrUnauthorized, "status %d", status)
	}
}

func TestNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	c := New(srv.URL, "tok-1")
	_, err := c.ListCategories(context.Background())

	var netErr *NetworkError
	assert.ErrorAs(t, err, &netErr)
}

func TestTokenSwapDuringRequests(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]Category{})
	})

	// Logout swaps the token from the update loop while fetch commands
	// are still in flight on their own goroutines.
	c := New(srv.URL, "tok-1")
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = c.ListCategories(context.Background())
		}()
		go func() {
			defer wg.Done()
			c.SetToken("")
			c.SetToken("tok-2")
		}()
	}
	wg.Wait()
}

func TestMovementFilterQuery(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "3", q.Get("month"))
		assert.Equal(t, "2025", q.Get("year"))
		assert.Equal(t, "Spesa", q.Get("category"))
		assert.Equal(t, "EXPENSE", q.Get("type"))
		assert.Equal(t, "true", q.Get("include_planned"))
		json.NewEncoder(w).Encode([]Movement{})
	})

	c := New(srv.URL, "tok-1")
	_, err := c.ListMovements(context.Background(), MovementFilter{
		Month: 3, Year: 2025, Category: "Spesa", Type: Expense, IncludePlanned: true,
	})
	require.NoError(t, err)
}

func TestBudgetStatusesUnwrapsEnvelope(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/dashboard/budget-status", r.URL.Path)
		json.NewEncoder(w).Encode(BudgetStatusResponse{
			Budgets: []BudgetStatus{{
				Category:   "Spesa",
				Spent:      decimal.NewFromInt(80),
				Limit:      decimal.NewFromInt(100),
				Remaining:  decimal.NewFromInt(20),
				Percentage: 80,
			}},
			Period: Period{Month: 3, Year: 2025},
		})
	})

	c := New(srv.URL, "tok-1")
	statuses, err := c.BudgetStatuses(context.Background(), 3, 2025)
	require.NoError(t, err)
	require.Len(t, statuses, 1)
	assert.Equal(t, "Spesa", statuses[0].Category)
	assert.Equal(t, float64(80), statuses[0].Percentage)
}

func TestReassignAndDeleteBudget(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/budgets/reassign-and-delete/7", r.URL.Path)
		assert.Equal(t, "Altro", r.URL.Query().Get("new_category"))
		w.WriteHeader(http.StatusOK)
	})

	c := New(srv.URL, "tok-1")
	require.NoError(t, c.ReassignAndDeleteBudget(context.Background(), 7, "Altro"))
}

func TestGetSMTPConfigBlanksPassword(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(SMTPConfig{
			SMTPServer:   "smtp.example.com",
			SMTPPort:     587,
			SMTPPassword: "leaked-by-old-server",
		})
	})

	c := New(srv.URL, "tok-1")
	cfg, err := c.GetSMTPConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "smtp.example.com", cfg.SMTPServer)
	assert.Empty(t, cfg.SMTPPassword)
}

func TestSearchQuery(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "bolletta", r.URL.Query().Get("q"))
		json.NewEncoder(w).Encode(SearchResults{Query: "bolletta", TotalResults: 0})
	})

	c := New(srv.URL, "tok-1")
	res, err := c.Search(context.Background(), "bolletta")
	require.NoError(t, err)
	assert.Equal(t, "bolletta", res.Query)
}
