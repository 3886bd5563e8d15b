package services

import (
	"context"

	"template_directory/logger"
	"template_directory/models"
)

// fetchCandidates 组装去重后的候选池
// 先按分类查询；候选不足 2×limit 时再补一次全局查询，分类命中的候选保持在前
// 存储层任何失败都降级为"该查询没有候选"，空候选池是合法的终态而不是错误
func (e *RelatedEngine) fetchCandidates(ctx context.Context, q models.RelatedQuery) []models.Template {
	var pool []models.Template
	seen := make(map[string]bool)

	appendUnique := func(items []models.Template) {
		for _, item := range items {
			if item.ID == "" || item.ID == q.SourceID || seen[item.ID] {
				continue
			}
			seen[item.ID] = true
			pool = append(pool, item)
		}
	}

	if q.Category != "" {
		items, err := e.store.QueryByCategory(ctx, q.Category, q.SourceID, e.poolSize)
		if err != nil {
			logger.Warn("分类候选查询失败，按零候选处理", "source_id", q.SourceID, "category", q.Category, "error", err)
		} else {
			appendUnique(items)
		}
	}

	// 分类候选不足时扩大到全局池；没有分类时直接查全局
	if len(pool) < 2*q.Limit {
		items, err := e.store.QueryGlobal(ctx, q.SourceID, e.poolSize)
		if err != nil {
			logger.Warn("全局候选查询失败，按零候选处理", "source_id", q.SourceID, "error", err)
		} else {
			appendUnique(items)
		}
	}

	logger.Debug("候选池组装完成", "source_id", q.SourceID, "count", len(pool))
	return pool
}
