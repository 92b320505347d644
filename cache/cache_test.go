package cache

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreReadWrite(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	_, err := m.Read(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, m.Write(ctx, "k", &Entry{Body: json.RawMessage(`{"a":1}`)}))
	e, err := m.Read(ctx, "k")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(e.Body))
	assert.False(t, e.FetchedAt.IsZero(), "write stamps FetchedAt")
	assert.Equal(t, 1, m.Len())
}

func TestMemoryStoreCopies(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	body := []byte(`"abc"`)
	require.NoError(t, m.Write(ctx, "k", &Entry{Body: body}))
	body[1] = 'X'

	e, err := m.Read(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `"abc"`, string(e.Body))

	e.Body[1] = 'Y'
	again, err := m.Read(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `"abc"`, string(again.Body))
}

func TestMemoryStoreLastWriteWins(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.Write(ctx, "k", &Entry{Body: json.RawMessage(`1`)})
		}()
	}
	wg.Wait()
	require.NoError(t, m.Write(ctx, "k", &Entry{Body: json.RawMessage(`2`)}))

	e, err := m.Read(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "2", string(e.Body))
	assert.Equal(t, 1, m.Len())
}

func TestMemoryStoreClear(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	require.NoError(t, m.Write(ctx, "a", &Entry{Body: json.RawMessage(`1`)}))
	require.NoError(t, m.Clear(ctx))
	assert.Equal(t, 0, m.Len())
}

type item struct {
	Name string   `json:"name"`
	Tags []string `json:"tags"`
}

func TestTyped(t *testing.T) {
	ctx := context.Background()
	typed := NewTyped[[]item](NewMemoryStore())

	_, ok, err := typed.Get(ctx, "x")
	require.NoError(t, err)
	assert.False(t, ok)

	in := []item{{Name: "a", Tags: []string{"t1"}}}
	require.NoError(t, typed.Put(ctx, "x", in))
	in[0].Tags[0] = "changed"

	out, ok, err := typed.Get(ctx, "x")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []item{{Name: "a", Tags: []string{"t1"}}}, out)
}

type brokenStore struct{ MemoryStore }

func (*brokenStore) Read(context.Context, string) (*Entry, error) {
	return nil, errors.New("boom")
}

func TestTypedPropagatesReadErrors(t *testing.T) {
	typed := NewTyped[string](&brokenStore{})
	_, ok, err := typed.Get(context.Background(), "x")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestKeys(t *testing.T) {
	tests := []struct {
		got  string
		want string
	}{
		{CategoryMealsKey("Beef"), "meals:category:beef"},
		{CategoryMealsKey("  BEEF "), "meals:category:beef"},
		{SearchMealsKey("Chicken  Curry"), "meals:search:chicken curry"},
		{MealKey(" 52772 "), "meal:52772"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.got)
	}
	assert.NotEqual(t, CategoryMealsKey("beef"), SearchMealsKey("beef"))
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set, skipping redis store test")
	}
	ctx := context.Background()

	r, err := NewRedisStore(ctx, RedisOptions{Addr: addr, Prefix: "recipebox-test:"})
	require.NoError(t, err)
	defer r.Close() //nolint:errcheck
	require.NoError(t, r.Clear(ctx))

	_, err = r.Read(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)

	typed := NewTyped[item](r)
	require.NoError(t, typed.Put(ctx, "k", item{Name: "beef"}))
	got, ok, err := typed.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "beef", got.Name)

	require.NoError(t, r.Clear(ctx))
	_, err = r.Read(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}
