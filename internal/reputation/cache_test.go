package reputation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChecker struct {
	calls   int
	verdict bool
	err     error
}

func (f *fakeChecker) Check(ctx context.Context, userID string) (bool, error) {
	f.calls++
	return f.verdict, f.err
}

func newTestCache(checker Checker) (*Cache, *time.Time) {
	c := NewCache(checker)
	now := time.Date(2024, 4, 2, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	return c, &now
}

func TestLookupWithinTTLUsesOneCall(t *testing.T) {
	checker := &fakeChecker{verdict: true}
	c, now := newTestCache(checker)
	ctx := context.Background()

	age, banned, err := c.Lookup(ctx, "u1")
	require.NoError(t, err)
	assert.Zero(t, age)
	assert.True(t, banned)

	*now = now.Add(599 * time.Second)
	age, banned, err = c.Lookup(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 599*time.Second, age)
	assert.True(t, banned)
	assert.Equal(t, 1, checker.calls)
}

func TestLookupAfterTTLRefreshes(t *testing.T) {
	checker := &fakeChecker{verdict: false}
	c, now := newTestCache(checker)
	ctx := context.Background()

	_, _, err := c.Lookup(ctx, "u1")
	require.NoError(t, err)

	*now = now.Add(601 * time.Second)
	age, _, err := c.Lookup(ctx, "u1")
	require.NoError(t, err)
	assert.Zero(t, age)
	assert.Equal(t, 2, checker.calls)
}

func TestLookupErrorPropagatesWithoutStaleFallback(t *testing.T) {
	checker := &fakeChecker{verdict: true}
	c, now := newTestCache(checker)
	ctx := context.Background()

	_, _, err := c.Lookup(ctx, "u1")
	require.NoError(t, err)

	*now = now.Add(601 * time.Second)
	checker.err = errors.New("service down")
	_, _, err = c.Lookup(ctx, "u1")
	require.Error(t, err)

	// The failed refresh must not have restored an entry.
	checker.err = nil
	age, _, err := c.Lookup(ctx, "u1")
	require.NoError(t, err)
	assert.Zero(t, age)
	assert.Equal(t, 3, checker.calls)
}

func TestLookupIsPerUser(t *testing.T) {
	checker := &fakeChecker{}
	c, _ := newTestCache(checker)
	ctx := context.Background()

	_, _, err := c.Lookup(ctx, "u1")
	require.NoError(t, err)
	_, _, err = c.Lookup(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, 2, checker.calls)
}
