package store

import (
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T, s Store) {
	t.Helper()
	id := fmt.Sprintf("t%d", time.Now().UnixNano())

	_, err := s.Get(id)
	assert.ErrorIs(t, err, ErrNotFound)

	ok, err := s.Create(id, []byte("first"))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Create(id, []byte("second"))
	require.NoError(t, err)
	assert.False(t, ok, "second create with the same id must collide")

	val, err := s.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "first", val)
}

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemory())
}

func TestMemoryStore_ConcurrentCreate(t *testing.T) {
	s := NewMemory()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := s.Create("abc", []byte("x"))
			assert.NoError(t, err)
			if ok {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)
}

func TestRedisStore(t *testing.T) {
	uri := os.Getenv("REDIS_URI")
	if uri == "" {
		t.Skip("REDIS_URI not set")
	}

	s, err := NewRedis(uri, "", 0, time.Minute)
	require.NoError(t, err)
	defer s.Close()

	testStore(t, s)
}

func TestParseRedisURI(t *testing.T) {
	tests := []struct {
		uri      string
		wantHost string
		wantPort int
	}{
		{"", "localhost", 6379},
		{"redis", "redis", 6379},
		{"redis:6380", "redis", 6380},
		{":6380", "localhost", 6380},
		{"redis:bad", "redis", 6379},
	}

	for _, tt := range tests {
		host, port := ParseRedisURI(tt.uri)
		assert.Equal(t, tt.wantHost, host, tt.uri)
		assert.Equal(t, tt.wantPort, port, tt.uri)
	}
}
