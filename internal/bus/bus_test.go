package bus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRevisionStartsAtZero(t *testing.T) {
	b := New()
	assert.Equal(t, uint64(0), b.Revision(TopicMovements))
	assert.False(t, b.Stale(TopicMovements, 0))
}

func TestPublishBumpsOnlyGivenTopics(t *testing.T) {
	b := New()
	b.Publish(TopicMovements, TopicBudgets)

	assert.Equal(t, uint64(1), b.Revision(TopicMovements))
	assert.Equal(t, uint64(1), b.Revision(TopicBudgets))
	assert.Equal(t, uint64(0), b.Revision(TopicCategories))
}

func TestStaleDetection(t *testing.T) {
	b := New()
	seen := b.Revision(TopicRecurring)

	b.Publish(TopicRecurring)
	assert.True(t, b.Stale(TopicRecurring, seen))

	seen = b.Revision(TopicRecurring)
	assert.False(t, b.Stale(TopicRecurring, seen))
}

func TestRevisionsAreMonotonic(t *testing.T) {
	b := New()
	var prev uint64
	for i := 0; i < 5; i++ {
		b.Publish(TopicGoals)
		cur := b.Revision(TopicGoals)
		assert.Greater(t, cur, prev)
		prev = cur
	}
}

func TestDateContext(t *testing.T) {
	b := New()

	b.SetDateContext(3, 2025)
	m, y := b.DateContext()
	assert.Equal(t, 3, m)
	assert.Equal(t, 2025, y)

	// Out-of-range values are ignored.
	b.SetDateContext(0, -1)
	m, y = b.DateContext()
	assert.Equal(t, 3, m)
	assert.Equal(t, 2025, y)
}
