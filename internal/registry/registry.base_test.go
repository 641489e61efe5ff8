package registry

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry[int]()

	isNew, err := r.Register("products", 1)
	require.NoError(t, err)
	assert.True(t, isNew)

	isNew, err = r.Register("products", 2)
	require.NoError(t, err)
	assert.False(t, isNew)

	v, ok := r.Get("products")
	assert.True(t, ok)
	assert.Equal(t, 2, v)

	_, ok = r.Get("orders")
	assert.False(t, ok)

	_, err = r.Register("", 3)
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestRegistry_NamesAndClear(t *testing.T) {
	r := NewRegistry[string]()
	_, _ = r.Register("users", "u")
	_, _ = r.Register("categories", "c")

	assert.Equal(t, []string{"categories", "users"}, r.Names())

	deleted, err := r.Clear("users", func(string) error { return errors.New("busy") })
	assert.Error(t, err)
	assert.False(t, deleted)

	deleted, err = r.Clear("users", nil)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = r.Clear("users", nil)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	r := NewRegistry[int]()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = r.Register("k", i)
			_, _ = r.Get("k")
		}(i)
	}
	wg.Wait()
	assert.Equal(t, []string{"k"}, r.Names())
}
