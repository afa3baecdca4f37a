package sizes

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jackc/pgx/v5"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-butik/internal/cache"
)

type fakeRow struct {
	vals []float64
	err  error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		if ptr, ok := d.(*float64); ok && i < len(r.vals) {
			*ptr = r.vals[i]
		}
	}
	return nil
}

type fakeDB struct {
	row   fakeRow
	calls int
}

func (db *fakeDB) QueryRow(context.Context, string, ...any) pgx.Row {
	db.calls++
	return db.row
}

func testCache(t *testing.T) *cache.JSON {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return cache.NewJSON(client, time.Minute)
}

func TestResolveNormalisesCode(t *testing.T) {
	db := &fakeDB{row: fakeRow{vals: []float64{300, 27, 21, 3}}}
	r := &Resolver{DB: db, Cache: testCache(t)}

	dims, err := r.Resolve(context.Background(), "  m ")
	require.NoError(t, err)
	require.Equal(t, Dimensions{WeightG: 300, LengthCM: 27, WidthCM: 21, HeightCM: 3}, dims)
}

func TestResolveUnknownCodeIsNotFound(t *testing.T) {
	db := &fakeDB{row: fakeRow{err: pgx.ErrNoRows}}
	r := &Resolver{DB: db, Cache: testCache(t)}

	_, err := r.Resolve(context.Background(), "XXXL")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestResolveEmptyCodeIsNotFound(t *testing.T) {
	db := &fakeDB{}
	r := &Resolver{DB: db, Cache: testCache(t)}

	_, err := r.Resolve(context.Background(), "   ")
	require.ErrorIs(t, err, ErrNotFound)
	require.Equal(t, 0, db.calls)
}

func TestResolveUsesCacheOnSecondLookup(t *testing.T) {
	db := &fakeDB{row: fakeRow{vals: []float64{450, 33, 24, 5}}}
	r := &Resolver{DB: db, Cache: testCache(t)}

	first, err := r.Resolve(context.Background(), "XXL")
	require.NoError(t, err)
	second, err := r.Resolve(context.Background(), "xxl")
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Equal(t, 1, db.calls)
}
