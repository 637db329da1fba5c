package ingredient

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"recipe-pantry/internal/infrastructure/config"
	"recipe-pantry/internal/pkg/common"

	"github.com/go-redis/redis/v8"
)

// CacheService 解析結果緩存服務
// Parse 對相同輸入永遠回傳相同結果，因此以原始文字為鍵緩存是安全的
type CacheService struct {
	client *redis.Client
	config *config.CacheConfig
}

// NewCacheService 創建緩存服務
// 緩存停用時回傳只做 passthrough 的服務，不建立連線
func NewCacheService(cfg *config.CacheConfig) (*CacheService, error) {
	if !cfg.Enabled {
		return &CacheService{config: cfg}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})

	// 測試連接
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &CacheService{
		client: client,
		config: cfg,
	}, nil
}

// Get 獲取緩存的解析結果
func (s *CacheService) Get(ctx context.Context, rawText string) (*common.ParsedIngredient, error) {
	if !s.config.Enabled || s.client == nil {
		return nil, common.ErrCacheDisabled
	}

	data, err := s.client.Get(ctx, s.generateKey(rawText)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, common.ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get cache: %w", err)
	}

	var parsed common.ParsedIngredient
	if err := common.ParseJSONBytes(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cache: %w", err)
	}
	return &parsed, nil
}

// Set 緩存解析結果
func (s *CacheService) Set(ctx context.Context, rawText string, parsed common.ParsedIngredient) error {
	if !s.config.Enabled || s.client == nil {
		return nil
	}

	data, err := common.ToJSON(parsed)
	if err != nil {
		return fmt.Errorf("failed to marshal parsed ingredient: %w", err)
	}

	if err := s.client.Set(ctx, s.generateKey(rawText), data, s.config.TTL).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// Close 關閉 Redis 連線
func (s *CacheService) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

// generateKey 生成緩存鍵
func (s *CacheService) generateKey(rawText string) string {
	hash := sha256.Sum256([]byte(rawText))
	return fmt.Sprintf("parse:ingredient:%s", hex.EncodeToString(hash[:]))
}
