package services

import (
	"context"
	"errors"
	"time"

	"template_directory/config"
	"template_directory/logger"
	"template_directory/models"
)

var (
	// ErrMissingSource 查询缺少源模板ID，属于调用方误用
	ErrMissingSource = errors.New("related query missing source template id")
	// ErrInvalidLimit limit必须为正数
	ErrInvalidLimit = errors.New("related query limit must be positive")
)

// RelatedEngine 相关模板推荐引擎
// 流水线：缓存 → 候选池 → 打分 → 排序 → 兜底补足 → 回写缓存
// 存储层故障在各环节内部消化，最坏情况返回空列表，绝不把异常抛给调用方
type RelatedEngine struct {
	store         TemplateStore
	cache         *RelatedCache
	poolSize      int
	fallbackLimit int
	seedFn        func() int64 // 兜底打乱的随机种子，测试注入固定值
}

// NewRelatedEngine 创建推荐引擎
func NewRelatedEngine(store TemplateStore, cfg *config.Config) *RelatedEngine {
	return &RelatedEngine{
		store:         store,
		cache:         NewRelatedCache(time.Duration(cfg.Related.CacheTTLMin) * time.Minute),
		poolSize:      cfg.Related.PoolSize,
		fallbackLimit: cfg.Related.FallbackLimit,
		seedFn: func() int64 {
			return time.Now().UnixNano()
		},
	}
}

// Cache 暴露缓存给调度器做定期清理
func (e *RelatedEngine) Cache() *RelatedCache {
	return e.cache
}

// GetRelated 返回与源模板相关的模板列表，长度尽量等于limit
// 语料不足时返回短列表；语料为空时返回空列表，两者都不是错误
func (e *RelatedEngine) GetRelated(ctx context.Context, q models.RelatedQuery) ([]models.Template, error) {
	if q.SourceID == "" {
		return nil, ErrMissingSource
	}
	if q.Limit <= 0 {
		return nil, ErrInvalidLimit
	}

	key := CacheKey(q)
	if cached, ok := e.cache.Get(key); ok {
		logger.Debug("相关推荐命中缓存", "source_id", q.SourceID, "key", key)
		return cached, nil
	}

	source := e.loadSource(ctx, q)

	candidates := e.fetchCandidates(ctx, q)

	scored := make([]models.ScoredTemplate, 0, len(candidates))
	for _, candidate := range candidates {
		scored = append(scored, models.ScoredTemplate{
			Template: candidate,
			Score:    scoreTemplate(candidate, source, q.Tags),
		})
	}

	result := rankTemplates(scored, q.Limit)

	if len(result) < q.Limit {
		result = e.fillShortfall(ctx, result, q)
	}

	e.cache.Set(key, result)
	logger.Info("相关推荐生成完成", "source_id", q.SourceID, "requested", q.Limit, "returned", len(result))

	return result, nil
}

// loadSource 获取源模板自身的记录作为打分输入
// 取不到时用查询参数拼一个降级档案：分类来自查询，热度归零
func (e *RelatedEngine) loadSource(ctx context.Context, q models.RelatedQuery) models.Template {
	fallback := models.Template{ID: q.SourceID, Category: q.Category, Tags: q.Tags}

	records, err := e.store.QueryByIDs(ctx, []string{q.SourceID})
	if err != nil {
		logger.Warn("源模板查询失败，使用降级档案打分", "source_id", q.SourceID, "error", err)
		return fallback
	}
	if len(records) == 0 {
		logger.Debug("源模板不存在于存储中，使用降级档案打分", "source_id", q.SourceID)
		return fallback
	}

	source := records[0]
	if source.Category == "" {
		source.Category = q.Category
	}
	return source
}
