// README: Choice module tests (validation + env-gated store round-trip).
package choice

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func TestRecordValidatesInput(t *testing.T) {
	svc := NewService(nil, zerolog.Nop())
	ctx := context.Background()

	cases := []RecordCommand{
		{PlaceID: "", Name: "店"},
		{PlaceID: "p1", Name: ""},
		{PlaceID: "  ", Name: "店"},
	}
	for _, cmd := range cases {
		if err := svc.Record(ctx, cmd); err != ErrBadRequest {
			t.Errorf("Record(%+v) = %v, want ErrBadRequest", cmd, err)
		}
	}
}

// TestChoiceRoundTrip exercises the real stores. It skips unless both
// backends are reachable via env configuration.
func TestChoiceRoundTrip(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	if err := svc.Record(ctx, RecordCommand{PlaceID: "test_place", Name: "テスト焼肉店"}); err != nil {
		t.Fatalf("record: %v", err)
	}

	top, err := svc.TopPopular(ctx, 5)
	if err != nil {
		t.Fatalf("top popular: %v", err)
	}
	found := false
	for _, p := range top {
		if p.PlaceID == "test_place" {
			found = true
			if p.Name != "テスト焼肉店" {
				t.Errorf("name not stored: %+v", p)
			}
			if p.Count < 1 {
				t.Errorf("count not incremented: %+v", p)
			}
		}
	}
	if !found {
		t.Errorf("recorded place missing from ranking: %+v", top)
	}
}

// setupTestService creates a Service against real Postgres and Redis.
// It skips the test when ENKAI_TEST_DSN is not set.
func setupTestService(t *testing.T) *Service {
	t.Helper()

	dsn := os.Getenv("ENKAI_TEST_DSN")
	if dsn == "" {
		t.Skip("ENKAI_TEST_DSN not set; skipping store-backed tests")
	}
	redisAddr := os.Getenv("ENKAI_TEST_REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	ctx := context.Background()
	db, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect postgres: %v", err)
	}
	t.Cleanup(db.Close)

	if _, err := db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS restaurant_choices (
			id BIGSERIAL PRIMARY KEY,
			place_id TEXT NOT NULL,
			name TEXT NOT NULL,
			chosen_at TIMESTAMPTZ NOT NULL
		)
	`); err != nil {
		t.Fatalf("ensure restaurant_choices table: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
	t.Cleanup(func() { _ = rdb.Close() })

	return NewService(NewStore(db, rdb), zerolog.Nop())
}
