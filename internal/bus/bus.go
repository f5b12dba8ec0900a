// Package bus carries cross-tab invalidation signals. When one tab mutates
// a resource it bumps the revision for that topic; every other tab compares
// the revision it last rendered against the current one and refetches on
// mismatch. Revisions only grow, so a missed signal is caught on the next
// comparison rather than lost.
package bus

import (
	"sync"
	"time"
)

// Topic identifies a class of data whose change invalidates dependent views.
type Topic string

const (
	TopicMovements  Topic = "movements"
	TopicCategories Topic = "categories"
	TopicBudgets    Topic = "budgets"
	TopicRecurring  Topic = "recurring"
	TopicGoals      Topic = "goals"
)

// Bus tracks a monotonic revision per topic plus the shared date context
// used to pre-fill quick entry forms.
type Bus struct {
	mu        sync.Mutex
	revisions map[Topic]uint64

	dateMonth int
	dateYear  int
}

// New returns a Bus with all revisions at zero and the date context set to
// the current month.
func New() *Bus {
	now := time.Now()
	return &Bus{
		revisions: make(map[Topic]uint64),
		dateMonth: int(now.Month()),
		dateYear:  now.Year(),
	}
}

// Publish bumps the revision for each given topic.
func (b *Bus) Publish(topics ...Topic) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, t := range topics {
		b.revisions[t]++
	}
}

// Revision returns the current revision for a topic. Topics never published
// report zero.
func (b *Bus) Revision(t Topic) uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.revisions[t]
}

// Stale reports whether a view that last rendered topic t at revision seen
// needs a refetch.
func (b *Bus) Stale(t Topic, seen uint64) bool {
	return b.Revision(t) != seen
}

// SetDateContext records the month the user is looking at so that quick
// entry forms default to it instead of today.
func (b *Bus) SetDateContext(month, year int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if month >= 1 && month <= 12 {
		b.dateMonth = month
	}
	if year > 0 {
		b.dateYear = year
	}
}

// DateContext returns the month the user most recently navigated to.
func (b *Bus) DateContext() (month, year int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dateMonth, b.dateYear
}
