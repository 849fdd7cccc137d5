package main

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestRepo(t *testing.T) *Repo {
	t.Helper()
	repo, err := NewRepo(filepath.Join(t.TempDir(), "daybook.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func newTestJournal(t *testing.T, repo *Repo) *Journal {
	t.Helper()
	j, err := NewJournal(repo, 5*time.Second, zap.NewNop())
	require.NoError(t, err)
	return j
}

// fixedClock pins a journal's clock to a settable instant.
type fixedClock struct {
	t time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.t
}

func (c *fixedClock) Advance(d time.Duration) {
	c.t = c.t.Add(d)
}
