package setrepo

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashicorp-forge/hermes-oai/pkg/handle"
	"github.com/hashicorp-forge/hermes-oai/pkg/sequence"
	"github.com/hashicorp-forge/hermes-oai/pkg/setspec"
)

// entities returns n entities of the given kind with handles prefix/1..n.
func entities(kind setspec.Kind, prefix string, n int) []sequence.Entity {
	result := make([]sequence.Entity, n)
	for i := range result {
		result[i] = sequence.Entity{
			ID:     uint(i + 1),
			Handle: fmt.Sprintf("%s/%d", prefix, i+1),
			Name:   fmt.Sprintf("%s %s %d", kind, prefix, i+1),
			Kind:   kind,
		}
	}
	return result
}

// countingProvider records calls made to the wrapped provider.
type countingProvider struct {
	sequence.Provider

	mu      sync.Mutex
	counts  int
	fetches [][2]int
}

func (c *countingProvider) Count(ctx context.Context) (int, error) {
	c.mu.Lock()
	c.counts++
	c.mu.Unlock()
	return c.Provider.Count(ctx)
}

func (c *countingProvider) Fetch(ctx context.Context, offset, limit int) ([]sequence.Entity, error) {
	c.mu.Lock()
	c.fetches = append(c.fetches, [2]int{offset, limit})
	c.mu.Unlock()
	return c.Provider.Fetch(ctx, offset, limit)
}

type fixture struct {
	repo        *Repository
	communities []sequence.Entity
	collections []sequence.Entity
	a           *countingProvider
	b           *countingProvider
}

func newFixture(t *testing.T, countA, countB int) *fixture {
	t.Helper()

	f := &fixture{
		communities: entities(setspec.KindCommunity, "111", countA),
		collections: entities(setspec.KindCollection, "222", countB),
	}
	f.a = &countingProvider{Provider: sequence.NewSlice(f.communities)}
	f.b = &countingProvider{Provider: sequence.NewSlice(f.collections)}

	all := append(append([]sequence.Entity{}, f.communities...), f.collections...)
	repo, err := New(Config{
		Communities: f.a,
		Collections: f.b,
		Resolver:    handle.NewMapResolver(all...),
	})
	require.NoError(t, err)
	f.repo = repo
	return f
}

func (f *fixture) community(i int) Set {
	return Project(f.communities[i], setspec.KindCommunity)
}

func (f *fixture) collection(i int) Set {
	return Project(f.collections[i], setspec.KindCollection)
}

func TestNew(t *testing.T) {
	p := sequence.NewSlice(nil)
	r := handle.NewMapResolver()

	t.Run("requires communities", func(t *testing.T) {
		_, err := New(Config{Collections: p, Resolver: r})
		assert.Error(t, err)
	})

	t.Run("requires collections", func(t *testing.T) {
		_, err := New(Config{Communities: p, Resolver: r})
		assert.Error(t, err)
	})

	t.Run("requires resolver", func(t *testing.T) {
		_, err := New(Config{Communities: p, Collections: p})
		assert.Error(t, err)
	})

	t.Run("supports sets", func(t *testing.T) {
		repo, err := New(Config{Communities: p, Collections: p, Resolver: r})
		require.NoError(t, err)
		assert.True(t, repo.SupportsSets())
	})
}

func TestList_BoundarySplit(t *testing.T) {
	f := newFixture(t, 5, 7)

	got := f.repo.List(context.Background(), 3, 4)

	assert.True(t, got.HasMore)
	assert.Equal(t, 12, got.Total)
	assert.Equal(t, []Set{
		f.community(3),
		f.community(4),
		f.collection(0),
		f.collection(1),
	}, got.Sets)

	assert.Equal(t, [][2]int{{3, 4}}, f.a.fetches)
	assert.Equal(t, [][2]int{{0, 2}}, f.b.fetches)
}

func TestList_PureCommunityPage(t *testing.T) {
	f := newFixture(t, 10, 3)

	got := f.repo.List(context.Background(), 0, 5)

	assert.True(t, got.HasMore)
	assert.Equal(t, 13, got.Total)
	require.Len(t, got.Sets, 5)
	for i, s := range got.Sets {
		assert.Equal(t, f.community(i), s)
	}
	assert.Empty(t, f.b.fetches, "collections must not be fetched")
}

func TestList_PureCollectionPage(t *testing.T) {
	f := newFixture(t, 5, 5)

	got := f.repo.List(context.Background(), 5, 5)

	assert.False(t, got.HasMore)
	assert.Equal(t, 10, got.Total)
	require.Len(t, got.Sets, 5)
	for i, s := range got.Sets {
		assert.Equal(t, f.collection(i), s)
	}
	assert.Empty(t, f.a.fetches, "communities must not be fetched")
	assert.Equal(t, [][2]int{{0, 5}}, f.b.fetches)
}

func TestList_WindowEndsOnBoundary(t *testing.T) {
	f := newFixture(t, 5, 5)

	got := f.repo.List(context.Background(), 2, 3)

	assert.True(t, got.HasMore)
	assert.Equal(t, []Set{f.community(2), f.community(3), f.community(4)}, got.Sets)
	assert.Empty(t, f.b.fetches)
}

func TestList_ExhaustedOffset(t *testing.T) {
	tests := []struct {
		name   string
		countA int
		countB int
		offset int
	}{
		{"offset equals total", 5, 7, 12},
		{"offset past total", 5, 7, 100},
		{"both empty", 0, 0, 0},
		{"both empty large offset", 0, 0, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.countA, tt.countB)

			got := f.repo.List(context.Background(), tt.offset, 10)

			assert.False(t, got.HasMore)
			assert.Empty(t, got.Sets)
			assert.NotNil(t, got.Sets)
			assert.Equal(t, tt.countA+tt.countB, got.Total)
			assert.Empty(t, f.a.fetches)
			assert.Empty(t, f.b.fetches)
		})
	}
}

func TestList_ShortFinalPage(t *testing.T) {
	f := newFixture(t, 0, 3)

	got := f.repo.List(context.Background(), 0, 10)

	assert.False(t, got.HasMore)
	assert.Equal(t, 3, got.Total)
	assert.Equal(t, []Set{f.collection(0), f.collection(1), f.collection(2)}, got.Sets)
	assert.Empty(t, f.a.fetches, "no communities means a pure collection window")
}

func TestList_StraddleShortOnBothSides(t *testing.T) {
	f := newFixture(t, 2, 2)

	got := f.repo.List(context.Background(), 1, 10)

	assert.False(t, got.HasMore)
	assert.Equal(t, []Set{f.community(1), f.collection(0), f.collection(1)}, got.Sets)
	assert.Equal(t, [][2]int{{0, 9}}, f.b.fetches)
}

func TestList_InvalidRequest(t *testing.T) {
	tests := []struct {
		name   string
		offset int
		length int
	}{
		{"negative offset", -1, 5},
		{"zero length", 0, 0},
		{"negative length", 2, -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, 5, 5)

			got := f.repo.List(context.Background(), tt.offset, tt.length)

			assert.False(t, got.HasMore)
			assert.Empty(t, got.Sets)
			assert.Equal(t, 0, f.a.counts+f.b.counts, "invalid windows must not touch storage")
		})
	}
}

func TestList_NeverExceedsLength(t *testing.T) {
	for countA := 0; countA <= 6; countA++ {
		for countB := 0; countB <= 6; countB++ {
			total := countA + countB
			for offset := 0; offset <= total+1; offset++ {
				for length := 1; length <= total+2; length++ {
					f := newFixture(t, countA, countB)
					got := f.repo.List(context.Background(), offset, length)

					expected := 0
					if offset < total {
						expected = min(length, total-offset)
					}
					require.Len(t, got.Sets, expected,
						"countA=%d countB=%d offset=%d length=%d", countA, countB, offset, length)
					assert.Equal(t, offset+length < total, got.HasMore)
					assert.LessOrEqual(t, f.a.counts+f.b.counts, 2)
					assert.LessOrEqual(t, len(f.a.fetches)+len(f.b.fetches), 2)

					// Sets must be the contiguous slice of the combined order.
					for i, s := range got.Sets {
						pos := offset + i
						if pos < countA {
							assert.Equal(t, f.community(pos), s)
						} else {
							assert.Equal(t, f.collection(pos-countA), s)
						}
					}
				}
			}
		}
	}
}

func TestList_Idempotent(t *testing.T) {
	f := newFixture(t, 5, 7)

	first := f.repo.List(context.Background(), 3, 4)
	second := f.repo.List(context.Background(), 3, 4)

	assert.Equal(t, first, second)
}

func TestList_ClampsOversizedFetch(t *testing.T) {
	greedy := sequence.ProviderFuncs{
		CountFunc: func(ctx context.Context) (int, error) { return 10, nil },
		FetchFunc: func(ctx context.Context, offset, limit int) ([]sequence.Entity, error) {
			return entities(setspec.KindCommunity, "111", 10), nil
		},
	}
	repo, err := New(Config{
		Communities: greedy,
		Collections: sequence.NewSlice(nil),
		Resolver:    handle.NewMapResolver(),
	})
	require.NoError(t, err)

	got := repo.List(context.Background(), 0, 3)
	assert.Len(t, got.Sets, 3)
}

func TestList_CommunityCountFailure(t *testing.T) {
	failing := sequence.ProviderFuncs{
		CountFunc: func(ctx context.Context) (int, error) {
			return 0, sequence.ErrStorageUnavailable
		},
		FetchFunc: func(ctx context.Context, offset, limit int) ([]sequence.Entity, error) {
			t.Fatal("fetch must not be called when the count failed")
			return nil, nil
		},
	}
	collections := entities(setspec.KindCollection, "222", 4)
	repo, err := New(Config{
		Communities: failing,
		Collections: sequence.NewSlice(collections),
		Resolver:    handle.NewMapResolver(),
	})
	require.NoError(t, err)

	got := repo.List(context.Background(), 0, 3)

	assert.Equal(t, 4, got.Total)
	assert.True(t, got.HasMore)
	assert.Equal(t, []Set{
		Project(collections[0], setspec.KindCollection),
		Project(collections[1], setspec.KindCollection),
		Project(collections[2], setspec.KindCollection),
	}, got.Sets)
}

func TestList_CollectionFetchFailure(t *testing.T) {
	communities := entities(setspec.KindCommunity, "111", 2)
	failing := sequence.ProviderFuncs{
		CountFunc: func(ctx context.Context) (int, error) { return 5, nil },
		FetchFunc: func(ctx context.Context, offset, limit int) ([]sequence.Entity, error) {
			return nil, errors.New("connection reset")
		},
	}
	repo, err := New(Config{
		Communities: sequence.NewSlice(communities),
		Collections: failing,
		Resolver:    handle.NewMapResolver(),
	})
	require.NoError(t, err)

	got := repo.List(context.Background(), 0, 4)

	assert.Equal(t, 7, got.Total)
	assert.True(t, got.HasMore)
	assert.Equal(t, []Set{
		Project(communities[0], setspec.KindCommunity),
		Project(communities[1], setspec.KindCommunity),
	}, got.Sets)
}

func TestList_ConcurrentCalls(t *testing.T) {
	f := newFixture(t, 20, 20)
	expected := f.repo.List(context.Background(), 15, 10)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got := f.repo.List(context.Background(), 15, 10)
			assert.Equal(t, expected, got)
		}()
	}
	wg.Wait()
}

func TestProject(t *testing.T) {
	t.Run("community", func(t *testing.T) {
		s := Project(sequence.Entity{Handle: "123456789/2", Name: "Sciences"}, setspec.KindCommunity)
		assert.Equal(t, Set{Spec: "com_123456789_2", Name: "Sciences"}, s)
	})

	t.Run("collection without name", func(t *testing.T) {
		s := Project(sequence.Entity{Handle: "123456789/7"}, setspec.KindCollection)
		assert.Equal(t, Set{Spec: "col_123456789_7", Name: ""}, s)
	})
}

func TestExists(t *testing.T) {
	f := newFixture(t, 3, 3)
	ctx := context.Background()

	t.Run("round trip for every listed set", func(t *testing.T) {
		page := f.repo.List(ctx, 0, 10)
		require.Len(t, page.Sets, 6)
		for _, s := range page.Sets {
			assert.True(t, f.repo.Exists(ctx, s.Spec), s.Spec)
		}
	})

	t.Run("legacy prefix", func(t *testing.T) {
		assert.True(t, f.repo.Exists(ctx, "hdl_111_1"))
	})

	t.Run("well-formed but unknown", func(t *testing.T) {
		assert.False(t, f.repo.Exists(ctx, "col_999_1"))
	})

	t.Run("empty spec", func(t *testing.T) {
		assert.False(t, f.repo.Exists(ctx, ""))
	})
}

func TestExists_RejectsNonSetKinds(t *testing.T) {
	repo, err := New(Config{
		Communities: sequence.NewSlice(nil),
		Collections: sequence.NewSlice(nil),
		Resolver: handle.NewMapResolver(
			sequence.Entity{Handle: "123456789/9", Kind: setspec.KindItem},
		),
	})
	require.NoError(t, err)

	assert.False(t, repo.Exists(context.Background(), "col_123456789_9"))
}

func TestExists_ResolverFailure(t *testing.T) {
	repo, err := New(Config{
		Communities: sequence.NewSlice(nil),
		Collections: sequence.NewSlice(nil),
		Resolver: handle.ResolverFunc(func(ctx context.Context, h string) (*sequence.Entity, error) {
			// Report an entity alongside the error to prove the error wins.
			return &sequence.Entity{Handle: h, Kind: setspec.KindCommunity}, errors.New("resolver down")
		}),
	})
	require.NoError(t, err)

	assert.False(t, repo.Exists(context.Background(), "com_123456789_2"))
}
