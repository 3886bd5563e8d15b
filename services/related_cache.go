package services

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"template_directory/models"
	"template_directory/utils"
)

// categoryNone 无分类查询在缓存键中的占位符
const categoryNone = "-"

type cacheEntry struct {
	items     []models.Template
	expiresAt time.Time
}

// RelatedCache 推荐结果的内存TTL缓存
// 条目写入后不再修改；重新计算会整体覆盖。时钟可注入，测试用假时钟验证过期
type RelatedCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewRelatedCache 创建推荐缓存
func NewRelatedCache(ttl time.Duration) *RelatedCache {
	return &RelatedCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// CacheKey 由查询语义内容推导缓存键
// 标签排序去重后拼接，标签顺序不影响键；无分类用占位符
func CacheKey(q models.RelatedQuery) string {
	tags := utils.DeduplicateSlice(q.Tags)
	sort.Strings(tags)

	category := q.Category
	if category == "" {
		category = categoryNone
	}

	return strings.Join([]string{
		q.SourceID,
		category,
		strings.Join(tags, ","),
		strconv.Itoa(q.Limit),
	}, "|")
}

// Get 查询缓存，过期条目当场删除
func (c *RelatedCache) Get(key string) ([]models.Template, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().After(entry.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}

	// 返回副本，调用方改动不会污染缓存条目
	out := make([]models.Template, len(entry.items))
	copy(out, entry.items)
	return out, true
}

// Set 写入缓存，覆盖同键旧条目
func (c *RelatedCache) Set(key string, items []models.Template) {
	if c.ttl <= 0 {
		return
	}

	out := make([]models.Template, len(items))
	copy(out, items)

	c.mu.Lock()
	c.entries[key] = cacheEntry{
		items:     out,
		expiresAt: c.now().Add(c.ttl),
	}
	c.mu.Unlock()
}

// Sweep 清理所有过期条目，返回清理数量，由调度器定期调用
func (c *RelatedCache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Len 当前缓存条目数
func (c *RelatedCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
