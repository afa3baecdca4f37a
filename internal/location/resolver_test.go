package location

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

func TestResolveReturnsStoredCoordinates(t *testing.T) {
	db := &fakeDB{row: fakeRow{vals: []float64{-6.9175, 107.6191}}}
	r := &Resolver{DB: db, Cache: testCache(t)}

	point, err := r.Resolve(context.Background(), Query{
		Province:    "Jawa Barat",
		District:    "Bandung",
		SubDistrict: "Coblong",
	})
	require.NoError(t, err)
	require.Equal(t, Point{Lat: -6.9175, Long: 107.6191}, point)
}

func TestResolveUnknownAreaIsNotFound(t *testing.T) {
	db := &fakeDB{row: fakeRow{err: pgx.ErrNoRows}}
	r := &Resolver{DB: db, Cache: testCache(t)}

	_, err := r.Resolve(context.Background(), Query{Province: "Atlantis", District: "X", SubDistrict: "Y"})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestResolveUsesCacheOnSecondLookup(t *testing.T) {
	db := &fakeDB{row: fakeRow{vals: []float64{-6.2, 106.8}}}
	r := &Resolver{DB: db, Cache: testCache(t)}
	q := Query{Province: "DKI Jakarta", District: "Jakarta Selatan", SubDistrict: "Tebet"}

	first, err := r.Resolve(context.Background(), q)
	require.NoError(t, err)
	second, err := r.Resolve(context.Background(), q)
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Equal(t, 1, db.calls)
}

func TestResolveRequiresDB(t *testing.T) {
	r := &Resolver{}
	_, err := r.Resolve(context.Background(), Query{Province: "a", District: "b", SubDistrict: "c"})
	require.Error(t, err)
}
