package index

import (
	"cmp"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlonMell/rbindex/internal/rbtree"
)

func TestVerifyWritesReportsCorruption(t *testing.T) {
	logger, hook := test.NewNullLogger()
	ix := New(&Config{Name: "corrupt", VerifyWrites: true, Logger: logger})

	// An ordering that flips halfway through leaves the existing keys out
	// of order for the checker.
	reversed := false
	ix.tree = rbtree.NewFunc[string, []byte](func(a, b string) int {
		if reversed {
			return cmp.Compare(b, a)
		}
		return cmp.Compare(a, b)
	})

	require.NoError(t, ix.Put("a", []byte("1")))
	require.NoError(t, ix.Put("b", []byte("2")))

	reversed = true
	err := ix.Put("c", []byte("3"))
	require.Error(t, err)
	assert.ErrorIs(t, err, rbtree.ErrInvariant)
	assert.Contains(t, err.Error(), `after put "c"`)
	assert.Contains(t, err.Error(), "order violated")

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
	assert.Equal(t, `verification failed after put "c"`, entry.Message)
	logged, ok := entry.Data[logrus.ErrorKey].(error)
	require.True(t, ok)
	assert.ErrorIs(t, logged, rbtree.ErrInvariant)
}
