package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/coursiva/coursiva-backend/internal/logger"
	"github.com/coursiva/coursiva-backend/internal/types"
)

const (
	// Decision entries expire after 300s, accessible-content lists after
	// 600s. Explicit InvalidateUser supersedes both.
	DecisionTTL = 300 * time.Second
	ListTTL     = 600 * time.Second
)

// DecisionCache memoizes access decisions and accessible-content lists per
// user. All engine reads go through it; every state-changing write for a
// user is followed by InvalidateUser.
type DecisionCache interface {
	GetDecision(ctx context.Context, userID, contentID uuid.UUID, contentType types.ContentType) (*types.AccessDecision, error)
	SetDecision(ctx context.Context, userID, contentID uuid.UUID, contentType types.ContentType, decision *types.AccessDecision) error
	GetCourseList(ctx context.Context, userID uuid.UUID, level types.Level) ([]uuid.UUID, error)
	SetCourseList(ctx context.Context, userID uuid.UUID, level types.Level, courseIDs []uuid.UUID) error
	InvalidateUser(ctx context.Context, userID uuid.UUID) error
	Ping(ctx context.Context) error
	Close() error
}

type decisionCache struct {
	log *logger.Logger
	rdb *goredis.Client
}

func NewDecisionCache(log *logger.Logger) (DecisionCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &decisionCache{
		log: log.With("client", "RedisDecisionCache"),
		rdb: rdb,
	}, nil
}

func decisionKey(userID, contentID uuid.UUID, contentType types.ContentType) string {
	return fmt.Sprintf("access:user:%s:decision:%s:%s", userID, contentType, contentID)
}

func listKey(userID uuid.UUID, level types.Level) string {
	return fmt.Sprintf("access:user:%s:list:%s", userID, level)
}

func userPrefix(userID uuid.UUID) string {
	return fmt.Sprintf("access:user:%s:*", userID)
}

func (c *decisionCache) GetDecision(ctx context.Context, userID, contentID uuid.UUID, contentType types.ContentType) (*types.AccessDecision, error) {
	raw, err := c.rdb.Get(ctx, decisionKey(userID, contentID, contentType)).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("cache get: %w", err)
	}
	var decision types.AccessDecision
	if err := json.Unmarshal(raw, &decision); err != nil {
		return nil, fmt.Errorf("cache decode: %w", err)
	}
	return &decision, nil
}

func (c *decisionCache) SetDecision(ctx context.Context, userID, contentID uuid.UUID, contentType types.ContentType, decision *types.AccessDecision) error {
	if decision == nil {
		return nil
	}
	raw, err := json.Marshal(decision)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := c.rdb.Set(ctx, decisionKey(userID, contentID, contentType), raw, DecisionTTL).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

func (c *decisionCache) GetCourseList(ctx context.Context, userID uuid.UUID, level types.Level) ([]uuid.UUID, error) {
	raw, err := c.rdb.Get(ctx, listKey(userID, level)).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("cache get: %w", err)
	}
	var ids []uuid.UUID
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, fmt.Errorf("cache decode: %w", err)
	}
	if ids == nil {
		ids = []uuid.UUID{}
	}
	return ids, nil
}

func (c *decisionCache) SetCourseList(ctx context.Context, userID uuid.UUID, level types.Level, courseIDs []uuid.UUID) error {
	if courseIDs == nil {
		courseIDs = []uuid.UUID{}
	}
	raw, err := json.Marshal(courseIDs)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := c.rdb.Set(ctx, listKey(userID, level), raw, ListTTL).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// InvalidateUser removes every cached entry for the user. Broad on purpose:
// a single progress write shifts the level-gate average and with it the
// outcome of decisions on unrelated content.
func (c *decisionCache) InvalidateUser(ctx context.Context, userID uuid.UUID) error {
	var cursor uint64
	for {
		keys, next, err := c.rdb.Scan(ctx, cursor, userPrefix(userID), 100).Result()
		if err != nil {
			return fmt.Errorf("cache scan: %w", err)
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("cache del: %w", err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

func (c *decisionCache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func (c *decisionCache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
