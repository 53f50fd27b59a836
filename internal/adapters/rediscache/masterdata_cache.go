package rediscache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wareflow/wms_backend/internal/core/domain"
	portssvc "github.com/wareflow/wms_backend/internal/core/ports/services"
)

const (
	warehousesKey = "masterdata:warehouses"
	binsKeyFmt    = "masterdata:bins:%s"
	batchesKeyFmt = "masterdata:batches:%s"
)

// MasterDataCache stores ERP master data in Redis as JSON blobs with a TTL.
type MasterDataCache struct {
	client *redis.Client
}

// NewMasterDataCache connects to Redis and verifies the connection.
func NewMasterDataCache(redisURL string) (*MasterDataCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &MasterDataCache{client: client}, nil
}

// Ensure MasterDataCache implements the cache port
var _ portssvc.MasterDataCache = (*MasterDataCache)(nil)

func (c *MasterDataCache) get(ctx context.Context, key string, out interface{}) (bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		// A corrupt entry behaves like a miss; the caller refreshes it.
		return false, nil
	}
	return true, nil
}

func (c *MasterDataCache) set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry %s: %w", key, err)
	}
	return c.client.Set(ctx, key, raw, ttl).Err()
}

// GetWarehouses returns the cached warehouse list, if present.
func (c *MasterDataCache) GetWarehouses(ctx context.Context) ([]domain.Warehouse, bool, error) {
	var warehouses []domain.Warehouse
	found, err := c.get(ctx, warehousesKey, &warehouses)
	return warehouses, found, err
}

// SetWarehouses caches the warehouse list.
func (c *MasterDataCache) SetWarehouses(ctx context.Context, warehouses []domain.Warehouse, ttl time.Duration) error {
	return c.set(ctx, warehousesKey, warehouses, ttl)
}

// GetBins returns the cached bin list of one warehouse, if present.
func (c *MasterDataCache) GetBins(ctx context.Context, warehouseCode string) ([]domain.BinLocation, bool, error) {
	var bins []domain.BinLocation
	found, err := c.get(ctx, fmt.Sprintf(binsKeyFmt, warehouseCode), &bins)
	return bins, found, err
}

// SetBins caches the bin list of one warehouse.
func (c *MasterDataCache) SetBins(ctx context.Context, warehouseCode string, bins []domain.BinLocation, ttl time.Duration) error {
	return c.set(ctx, fmt.Sprintf(binsKeyFmt, warehouseCode), bins, ttl)
}

// GetBatches returns the cached batch list of one item, if present.
func (c *MasterDataCache) GetBatches(ctx context.Context, itemCode string) ([]domain.Batch, bool, error) {
	var batches []domain.Batch
	found, err := c.get(ctx, fmt.Sprintf(batchesKeyFmt, itemCode), &batches)
	return batches, found, err
}

// SetBatches caches the batch list of one item.
func (c *MasterDataCache) SetBatches(ctx context.Context, itemCode string, batches []domain.Batch, ttl time.Duration) error {
	return c.set(ctx, fmt.Sprintf(batchesKeyFmt, itemCode), batches, ttl)
}
