package ordernum_test

import (
	"bytes"
	"errors"
	"runtime"
	"sync"
	"testing"

	"checkout-service/internal/ordernum"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNext_Format(t *testing.T) {
	g := ordernum.New()
	for i := 0; i < 1000; i++ {
		n, err := g.Next()
		require.NoError(t, err)
		require.True(t, ordernum.Valid(n), "bad order number %q", n)
		require.Len(t, n, len(ordernum.DefaultPrefix)+ordernum.DefaultLength)
	}
}

func TestNext_ConcurrentUnique(t *testing.T) {
	if testing.Short() {
		t.Skip("short mode")
	}

	const total = 100_000
	g := ordernum.New()

	workers := runtime.GOMAXPROCS(0) * 4
	perWorker := total / workers
	extra := total % workers

	var (
		mu   sync.Mutex
		seen = make(map[string]struct{}, total)
		dups []string
		wg   sync.WaitGroup
	)

	for w := 0; w < workers; w++ {
		n := perWorker
		if w < extra {
			n++
		}
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			local := make([]string, 0, n)
			for i := 0; i < n; i++ {
				num, err := g.Next()
				if err != nil {
					t.Errorf("Next: %v", err)
					return
				}
				local = append(local, num)
			}
			mu.Lock()
			for _, num := range local {
				if _, ok := seen[num]; ok {
					dups = append(dups, num)
				}
				seen[num] = struct{}{}
			}
			mu.Unlock()
		}(n)
	}
	wg.Wait()

	assert.Empty(t, dups)
	assert.Len(t, seen, total)
}

func TestNext_SequentialUnique(t *testing.T) {
	if testing.Short() {
		t.Skip("short mode")
	}

	g := ordernum.New()
	seen := make(map[string]struct{}, 100_000)
	for i := 0; i < 100_000; i++ {
		n, err := g.Next()
		require.NoError(t, err)
		_, dup := seen[n]
		require.False(t, dup, "duplicate %q after %d numbers", n, i)
		seen[n] = struct{}{}
	}
}

func TestNext_MapsSourceBytes(t *testing.T) {
	// 252..255 отбрасываются, остальные берутся по модулю 36
	src := append([]byte{255, 0, 252, 1, 35, 36, 71, 251}, bytes.Repeat([]byte{2}, 32)...)
	g := &ordernum.RandomGenerator{Prefix: "ORD-", Length: 10, Source: bytes.NewReader(src)}

	n, err := g.Next()
	require.NoError(t, err)
	assert.Equal(t, "ORD-AB9A99CCCC", n)
	assert.True(t, ordernum.Valid(n))
}

func TestNext_SourceError(t *testing.T) {
	g := &ordernum.RandomGenerator{Prefix: "ORD-", Length: 10, Source: errReader{}}

	_, err := g.Next()
	require.Error(t, err)
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, errors.New("entropy unavailable") }

func TestValid(t *testing.T) {
	assert.True(t, ordernum.Valid("ORD-ABCDEF1234"))
	assert.False(t, ordernum.Valid("ORD-abcdef1234"))
	assert.False(t, ordernum.Valid("ORD-ABC"))
	assert.False(t, ordernum.Valid("XYZ-ABCDEF1234"))
}
