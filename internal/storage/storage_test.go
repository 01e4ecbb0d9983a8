package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) (*Storage, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := New(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, path
}

func TestEnsureGuildIdempotent(t *testing.T) {
	s, _ := newTestStorage(t)

	require.NoError(t, s.EnsureGuild("g1"))
	require.NoError(t, s.EnsureGuild("g1"))

	g := s.Guild("g1")
	assert.Equal(t, "g1", g.ID)
	assert.Empty(t, g.Incoming)
	assert.Empty(t, g.Public)
	assert.Empty(t, g.Alert)
	assert.Len(t, s.Guilds(), 1)
}

func TestGuildReadHasNoSideEffects(t *testing.T) {
	s, _ := newTestStorage(t)

	g := s.Guild("unknown")
	assert.Equal(t, "unknown", g.ID)
	assert.Empty(t, g.Incoming)

	// Reading must not create a row.
	assert.Empty(t, s.Guilds())
}

func TestSetChannelsCreateRowAndPersist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := New(path)
	require.NoError(t, err)

	require.NoError(t, s.SetIncoming("g1", "c-in"))
	require.NoError(t, s.SetPublic("g1", "c-pub"))
	require.NoError(t, s.SetAlert("g1", "c-alert"))
	require.NoError(t, s.Close())

	// Reopen: mirrors must be rebuilt from the persistent tables.
	s, err = New(path)
	require.NoError(t, err)
	defer s.Close()

	g := s.Guild("g1")
	assert.Equal(t, "c-in", g.Incoming)
	assert.Equal(t, "c-pub", g.Public)
	assert.Equal(t, "c-alert", g.Alert)
}

func TestClearChannel(t *testing.T) {
	s, _ := newTestStorage(t)

	require.NoError(t, s.SetIncoming("g1", "c-in"))
	require.NoError(t, s.SetIncoming("g1", ""))
	assert.Empty(t, s.Guild("g1").Incoming)
}

func TestReportsAndInstances(t *testing.T) {
	s, _ := newTestStorage(t)

	r := Report{ID: "abcDEF1234", Reporter: "u1", Guild: "g1", Reported: "u2", Reason: "spam"}
	require.NoError(t, s.SubmitReport(r))
	require.NoError(t, s.RecordInstance("g1", "m1", r.ID))
	require.NoError(t, s.RecordInstance("g2", "m2", r.ID))

	got, ok := s.ReportByID(r.ID)
	require.True(t, ok)
	assert.Equal(t, r, got)

	assert.Len(t, s.ReportsFor("u2"), 1)
	assert.Empty(t, s.ReportsFor("u1"))

	in, ok := s.InstanceFor("m2")
	require.True(t, ok)
	assert.Equal(t, Instance{Guild: "g2", Message: "m2", Report: r.ID}, in)

	_, ok = s.InstanceFor("m3")
	assert.False(t, ok)
}

func TestBannedEntities(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := New(path)
	require.NoError(t, err)

	require.NoError(t, s.AddBanned("u1", true))
	require.NoError(t, s.AddBanned("g1", false))

	assert.True(t, s.IsBannedUser("u1"))
	assert.False(t, s.IsBannedUser("g1"))
	assert.True(t, s.IsBannedGuild("g1"))
	assert.False(t, s.IsBannedGuild("u1"))
	require.NoError(t, s.Close())

	s, err = New(path)
	require.NoError(t, err)
	defer s.Close()
	assert.True(t, s.IsBannedUser("u1"))
	assert.True(t, s.IsBannedGuild("g1"))
}
