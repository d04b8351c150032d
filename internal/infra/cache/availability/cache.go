package availability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/lunanails/NS-BookingService/internal/domain"
)

// ErrCacheMiss ключ не найден или запись истекла
var ErrCacheMiss = errors.New("availability.cache: miss")

// Snapshot кэшируемый результат расчета доступности на день
type Snapshot struct {
	Services    []domain.ServiceAvailability `json:"services"`
	LastUpdated time.Time                    `json:"last_updated"`
}

// Cache хранит рассчитанную доступность в Redis с TTL.
// Инвалидация выполняется по дате: бронирование на день сбрасывает все
// ключи этого дня независимо от набора услуг в запросе
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New создает кэш доступности поверх клиента Redis
func New(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Get возвращает снимок доступности либо ErrCacheMiss
func (c *Cache) Get(ctx context.Context, date time.Time, serviceIDs []uuid.UUID) (*Snapshot, error) {
	raw, err := c.client.Get(ctx, buildKey(date, serviceIDs)).Bytes()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("availability.cache: get: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil, fmt.Errorf("availability.cache: decode: %w", err)
	}

	return &snapshot, nil
}

// Set сохраняет снимок доступности с TTL кэша
func (c *Cache) Set(ctx context.Context, date time.Time, serviceIDs []uuid.UUID, snapshot *Snapshot) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("availability.cache: encode: %w", err)
	}

	if err := c.client.Set(ctx, buildKey(date, serviceIDs), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("availability.cache: set: %w", err)
	}

	return nil
}

// InvalidateDate сбрасывает все снимки доступности за день
func (c *Cache) InvalidateDate(ctx context.Context, date time.Time) error {
	pattern := fmt.Sprintf("availability:%s:*", date.Format(domain.DateFormat))

	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	keys := make([]string, 0)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("availability.cache: scan keys: %w", err)
	}

	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("availability.cache: delete keys: %w", err)
	}

	return nil
}

// Ключ детерминирован относительно набора услуг: порядок в запросе
// не влияет
func buildKey(date time.Time, serviceIDs []uuid.UUID) string {
	ids := make([]string, 0, len(serviceIDs))
	for _, id := range serviceIDs {
		ids = append(ids, id.String())
	}
	sort.Strings(ids)

	return fmt.Sprintf("availability:%s:%s", date.Format(domain.DateFormat), strings.Join(ids, ","))
}
