package instruction

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"

	"recipe-pantry/internal/pkg/common"
)

// Cache 指示文字的提及位置記憶表
// 位置只由指示文字與食材集合決定，與份數無關，
// 因此相同鍵可跨不同份數重用。條目不會自動淘汰，
// 需要控制記憶體的呼叫端應定期呼叫 Clear
type Cache struct {
	mu    sync.RWMutex
	store map[string][]mentionSpan
	stats cacheStats
}

// mentionSpan 已定位的提及範圍，指向食材列表中的索引
type mentionSpan struct {
	Start           int
	End             int
	IngredientIndex int
}

// cacheStats 緩存統計
type cacheStats struct {
	hits   int64
	misses int64
}

// NewCache 創建提及位置緩存
func NewCache() *Cache {
	return &Cache{
		store: make(map[string][]mentionSpan),
	}
}

// Key 以指示文字與食材集合生成緩存鍵
func Key(text string, ingredients []common.RecipeIngredient) string {
	h := sha256.New()
	h.Write([]byte(text))
	h.Write([]byte{0})
	names := make([]string, len(ingredients))
	for i, ing := range ingredients {
		names[i] = common.NormalizeName(ing.IngredientName)
	}
	h.Write([]byte(strings.Join(names, "\x00")))
	return hex.EncodeToString(h.Sum(nil))
}

// Get 取得已緩存的提及範圍
func (c *Cache) Get(key string) ([]mentionSpan, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	spans, ok := c.store[key]
	if ok {
		c.stats.hits++
	} else {
		c.stats.misses++
	}
	return spans, ok
}

// Set 緩存提及範圍
func (c *Cache) Set(key string, spans []mentionSpan) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[key] = spans
}

// Clear 清空所有條目
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store = make(map[string][]mentionSpan)
}

// Stats 回傳緩存統計資訊
func (c *Cache) Stats() map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := c.stats.hits + c.stats.misses
	var hitRatio float64
	if total > 0 {
		hitRatio = float64(c.stats.hits) / float64(total)
	}
	return map[string]interface{}{
		"size":      len(c.store),
		"hits":      c.stats.hits,
		"misses":    c.stats.misses,
		"hit_ratio": hitRatio,
	}
}
