package reportcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-TurfService/internal/domain"
)

// ErrCacheMiss возвращается, когда отчета нет в кэше
var ErrCacheMiss = errors.New("reportcache: cache miss")

// Cache advisory-кэш дневных отчетов в Redis
// Кэш никогда не является источником истины: агрегатор всегда умеет
// пересчитать отчет из Postgres, кэш лишь экономит повторные пересчеты.
// Короткий TTL + инвалидация при мутациях дня
type Cache struct {
	rdb redis.Cmdable
	ttl time.Duration
}

// New создает кэш отчетов поверх Redis клиента
func New(rdb redis.Cmdable, ttl time.Duration) *Cache {
	return &Cache{rdb: rdb, ttl: ttl}
}

func key(turfID int64, date time.Time) string {
	return fmt.Sprintf("reports:daily:%d:%s", turfID, date.Format(domain.DateFormat))
}

// Get возвращает закэшированный отчет или ErrCacheMiss
func (c *Cache) Get(ctx context.Context, turfID int64, date time.Time) (*domain.DailyReport, error) {
	raw, err := c.rdb.Get(ctx, key(turfID, date)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("reportcache: get: %w", err)
	}

	var report domain.DailyReport
	if err := json.Unmarshal(raw, &report); err != nil {
		// Битое значение равносильно промаху - пересчитаем из БД
		return nil, ErrCacheMiss
	}

	return &report, nil
}

// Set кладет отчет в кэш с TTL
func (c *Cache) Set(ctx context.Context, report *domain.DailyReport) error {
	raw, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("reportcache: marshal: %w", err)
	}

	if err := c.rdb.Set(ctx, key(report.TurfID, report.Date), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("reportcache: set: %w", err)
	}
	return nil
}

// Invalidate сбрасывает кэш отчета за день
// Вызывается после каждой мутации слотов/бронирований этого дня
func (c *Cache) Invalidate(ctx context.Context, turfID int64, date time.Time) error {
	if err := c.rdb.Del(ctx, key(turfID, date)).Err(); err != nil {
		return fmt.Errorf("reportcache: invalidate: %w", err)
	}
	return nil
}
