package searcher

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// scripted replays a fixed list of picks, then keeps returning the last one.
type scripted struct {
	mu    sync.Mutex
	picks []int
	calls int
}

func (s *scripted) Pick(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	pick := 0
	if len(s.picks) > 0 {
		pick = s.picks[min(s.calls, len(s.picks)-1)]
	}
	s.calls++
	return pick % n
}

func draws(p Picker, n, count int) []int {
	out := make([]int, count)
	for i := range out {
		out[i] = p.Pick(n)
	}
	return out
}

func TestSeeded(t *testing.T) {
	t.Run("same seed and stream replay the same picks", func(t *testing.T) {
		require.Equal(t, draws(Seeded(7)(3), 1000, 50), draws(Seeded(7)(3), 1000, 50))
	})

	t.Run("different streams diverge", func(t *testing.T) {
		require.NotEqual(t, draws(Seeded(7)(0), 1000, 50), draws(Seeded(7)(1), 1000, 50))
	})

	t.Run("different seeds diverge", func(t *testing.T) {
		require.NotEqual(t, draws(Seeded(1)(0), 1000, 50), draws(Seeded(2)(0), 1000, 50))
	})

	t.Run("picks stay in range", func(t *testing.T) {
		for _, pick := range draws(Seeded(3)(0), 5, 500) {
			require.GreaterOrEqual(t, pick, 0)
			require.Less(t, pick, 5)
		}
	})
}

func TestCrypto(t *testing.T) {
	seen := map[int]bool{}
	for _, pick := range draws(Crypto()(0), 4, 500) {
		require.GreaterOrEqual(t, pick, 0)
		require.Less(t, pick, 4)
		seen[pick] = true
	}
	require.Len(t, seen, 4, "Every index should be picked at least once")
}

func TestFixed(t *testing.T) {
	p := &scripted{picks: []int{2}}
	source := Fixed(p)
	require.Same(t, p, source(0))
	require.Same(t, p, source(99))
}
