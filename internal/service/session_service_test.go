package service

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/examhall/examhall-backend/internal/config"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func testRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestUploadOnce(t *testing.T) {
	ctx := context.Background()

	t.Run("second upload for the same question is served from cache", func(t *testing.T) {
		rdb := testRedis(t)
		key := config.CacheKey.SessionUploadsKey(uuid.NewString())
		qid := uuid.NewString()

		calls := 0
		upload := func() (string, error) {
			calls++
			return "https://i.ibb.co/abc/photo.jpg", nil
		}

		first, err := uploadOnce(ctx, rdb, key, qid, upload)
		if err != nil {
			t.Fatalf("first uploadOnce: %v", err)
		}
		second, err := uploadOnce(ctx, rdb, key, qid, upload)
		if err != nil {
			t.Fatalf("second uploadOnce: %v", err)
		}

		if calls != 1 {
			t.Errorf("upload invoked %d times, want 1", calls)
		}
		if first != second {
			t.Errorf("urls differ: %q vs %q", first, second)
		}
	})

	t.Run("a different question uploads again", func(t *testing.T) {
		rdb := testRedis(t)
		key := config.CacheKey.SessionUploadsKey(uuid.NewString())

		calls := 0
		upload := func() (string, error) {
			calls++
			return "https://i.ibb.co/def/photo.jpg", nil
		}

		if _, err := uploadOnce(ctx, rdb, key, uuid.NewString(), upload); err != nil {
			t.Fatalf("uploadOnce: %v", err)
		}
		if _, err := uploadOnce(ctx, rdb, key, uuid.NewString(), upload); err != nil {
			t.Fatalf("uploadOnce: %v", err)
		}

		if calls != 2 {
			t.Errorf("upload invoked %d times, want 2", calls)
		}
	})

	t.Run("failed upload caches nothing so a retry uploads again", func(t *testing.T) {
		rdb := testRedis(t)
		key := config.CacheKey.SessionUploadsKey(uuid.NewString())
		qid := uuid.NewString()

		calls := 0
		fail := errors.New("host down")
		upload := func() (string, error) {
			calls++
			if calls == 1 {
				return "", fail
			}
			return "https://i.ibb.co/ghi/photo.jpg", nil
		}

		if _, err := uploadOnce(ctx, rdb, key, qid, upload); !errors.Is(err, fail) {
			t.Fatalf("first uploadOnce err = %v, want %v", err, fail)
		}
		url, err := uploadOnce(ctx, rdb, key, qid, upload)
		if err != nil {
			t.Fatalf("retry uploadOnce: %v", err)
		}
		if url == "" {
			t.Error("retry returned empty url")
		}
		if calls != 2 {
			t.Errorf("upload invoked %d times, want 2", calls)
		}
	})
}

// The clock tick of a running session must be answerable from the cached
// start/duration pair alone. The service here has no repositories wired, so
// any store access would panic the test.
func TestClockServedFromCache(t *testing.T) {
	ctx := context.Background()
	rdb := testRedis(t)
	svc := NewSessionService(nil, nil, nil, nil, nil, rdb, zerolog.Nop())

	sessionID := uuid.New()
	start := time.Now().Add(-60 * time.Second)
	if err := rdb.Set(ctx, config.CacheKey.SessionStartKey(sessionID.String()), strconv.FormatInt(start.Unix(), 10), 0).Err(); err != nil {
		t.Fatalf("seed start key: %v", err)
	}
	if err := rdb.Set(ctx, config.CacheKey.SessionDurationKey(sessionID.String()), "30", 0).Err(); err != nil {
		t.Fatalf("seed duration key: %v", err)
	}

	status, remaining, err := svc.Clock(ctx, sessionID)
	if err != nil {
		t.Fatalf("Clock: %v", err)
	}
	if status != "IN_PROGRESS" {
		t.Errorf("status = %s, want IN_PROGRESS", status)
	}
	// 30 minutes minus the ~60 elapsed seconds.
	if remaining < 1735 || remaining > 1740 {
		t.Errorf("remaining = %d, want about 1740", remaining)
	}
}

func TestCachedRemaining(t *testing.T) {
	ctx := context.Background()

	t.Run("miss when keys are absent", func(t *testing.T) {
		svc := NewSessionService(nil, nil, nil, nil, nil, testRedis(t), zerolog.Nop())
		if _, ok := svc.cachedRemaining(ctx, uuid.New()); ok {
			t.Error("cachedRemaining ok = true, want false")
		}
	})

	t.Run("miss on unparseable values", func(t *testing.T) {
		rdb := testRedis(t)
		svc := NewSessionService(nil, nil, nil, nil, nil, rdb, zerolog.Nop())
		id := uuid.New()
		rdb.Set(ctx, config.CacheKey.SessionStartKey(id.String()), "not-a-number", 0)
		rdb.Set(ctx, config.CacheKey.SessionDurationKey(id.String()), "30", 0)
		if _, ok := svc.cachedRemaining(ctx, id); ok {
			t.Error("cachedRemaining ok = true, want false")
		}
	})

	t.Run("elapsed window reports zero remaining", func(t *testing.T) {
		rdb := testRedis(t)
		svc := NewSessionService(nil, nil, nil, nil, nil, rdb, zerolog.Nop())
		id := uuid.New()
		start := time.Now().Add(-time.Hour)
		rdb.Set(ctx, config.CacheKey.SessionStartKey(id.String()), strconv.FormatInt(start.Unix(), 10), 0)
		rdb.Set(ctx, config.CacheKey.SessionDurationKey(id.String()), "30", 0)

		remaining, ok := svc.cachedRemaining(ctx, id)
		if !ok {
			t.Fatal("cachedRemaining ok = false, want true")
		}
		if remaining != 0 {
			t.Errorf("remaining = %d, want 0", remaining)
		}
	})
}
