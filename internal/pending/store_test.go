package pending

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTakeAndClearConsumesRequest(t *testing.T) {
	store := NewStore()
	store.Set(42, "https://youtu.be/dQw4w9WgXcQ")

	url, err := store.TakeAndClear(42)
	require.NoError(t, err)
	assert.Equal(t, "https://youtu.be/dQw4w9WgXcQ", url)

	_, err = store.TakeAndClear(42)
	assert.ErrorIs(t, err, ErrNoPending)
}

func TestTakeAndClearUnknownUser(t *testing.T) {
	store := NewStore()

	_, err := store.TakeAndClear(7)
	assert.ErrorIs(t, err, ErrNoPending)
}

func TestSetOverwritesPreviousRequest(t *testing.T) {
	store := NewStore()
	store.Set(42, "https://youtu.be/first")
	store.Set(42, "https://youtu.be/second")

	assert.Equal(t, 1, store.Len())

	url, err := store.TakeAndClear(42)
	require.NoError(t, err)
	assert.Equal(t, "https://youtu.be/second", url)
}

func TestUsersAreIndependent(t *testing.T) {
	store := NewStore()
	store.Set(1, "https://youtu.be/one")
	store.Set(2, "https://youtu.be/two")

	url, err := store.TakeAndClear(1)
	require.NoError(t, err)
	assert.Equal(t, "https://youtu.be/one", url)

	url, err = store.TakeAndClear(2)
	require.NoError(t, err)
	assert.Equal(t, "https://youtu.be/two", url)
}

func TestConcurrentTakeAndClearSingleWinner(t *testing.T) {
	store := NewStore()
	store.Set(42, "https://youtu.be/dQw4w9WgXcQ")

	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.TakeAndClear(42); err == nil {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
}
