package ratelimit

import (
	"context"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Config names a limiter: a fixed budget over a sliding window, with a
// key prefix separating it from the other limiters in redis.
type Config struct {
	Name   string
	Prefix string
	Limit  int
	Window time.Duration
}

var (
	AdminAPI     = Config{Name: "admin-api", Prefix: "rl:admin", Limit: 60, Window: time.Minute}
	DashboardAPI = Config{Name: "dashboard-api", Prefix: "rl:dash", Limit: 60, Window: time.Minute}
	Signup       = Config{Name: "signup", Prefix: "rl:signup", Limit: 5, Window: time.Hour}
	PublicForm   = Config{Name: "public-form", Prefix: "rl:form", Limit: 10, Window: time.Hour}
)

type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	Reset      time.Time
	RetryAfter time.Duration
}

// Limiter is a sliding-window counter on redis sorted sets. A nil
// limiter, a nil client, or any redis error allows the request:
// availability wins over strict throttling.
type Limiter struct {
	rdb    *redis.Client
	logger *zap.Logger
}

func New(rdb *redis.Client, logger *zap.Logger) *Limiter {
	return &Limiter{rdb: rdb, logger: logger}
}

func (l *Limiter) Allow(ctx context.Context, cfg Config, identifier string) Result {
	allowed := Result{Allowed: true, Limit: cfg.Limit, Remaining: cfg.Limit}
	if l == nil || l.rdb == nil {
		return allowed
	}

	key := cfg.Prefix + ":" + identifier
	now := time.Now()
	windowStart := now.Add(-cfg.Window)

	pipe := l.rdb.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart.UnixNano(), 10))
	countCmd := pipe.ZCard(ctx, key)
	oldestCmd := pipe.ZRangeWithScores(ctx, key, 0, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		l.logger.Warn("rate limit store unavailable, allowing request",
			zap.String("limiter", cfg.Name), zap.Error(err))
		return allowed
	}

	count := int(countCmd.Val())
	if count >= cfg.Limit {
		reset := now.Add(cfg.Window)
		if oldest := oldestCmd.Val(); len(oldest) > 0 {
			reset = time.Unix(0, int64(oldest[0].Score)).Add(cfg.Window)
		}
		return Result{
			Allowed:    false,
			Limit:      cfg.Limit,
			Remaining:  0,
			Reset:      reset,
			RetryAfter: time.Until(reset),
		}
	}

	pipe = l.rdb.TxPipeline()
	pipe.ZAdd(ctx, key, &redis.Z{Score: float64(now.UnixNano()), Member: uuid.New().String()})
	pipe.Expire(ctx, key, cfg.Window)
	if _, err := pipe.Exec(ctx); err != nil {
		l.logger.Warn("rate limit store unavailable, allowing request",
			zap.String("limiter", cfg.Name), zap.Error(err))
		return allowed
	}

	return Result{
		Allowed:   true,
		Limit:     cfg.Limit,
		Remaining: cfg.Limit - count - 1,
		Reset:     now.Add(cfg.Window),
	}
}
