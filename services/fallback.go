package services

import (
	"context"
	"math/rand"

	"template_directory/logger"
	"template_directory/models"
)

// fallbackStage 一级兜底补足策略：抓取一批额外候选尝试补齐缺口
// 新增更宽的兜底层时在fillShortfall的stages里追加一项即可
type fallbackStage struct {
	name  string
	fetch func(ctx context.Context) ([]models.Template, error)
}

// fillShortfall 排序结果不足limit时，按策略顺序补足：先同分类一级，再全局一级
// 每级的补足项按本次调用的随机种子打乱后追加
// 两级都取完仍不够说明语料本身小于请求量，直接返回已有结果
func (e *RelatedEngine) fillShortfall(ctx context.Context, ranked []models.Template, q models.RelatedQuery) []models.Template {
	exclude := make(map[string]bool, len(ranked)+1)
	exclude[q.SourceID] = true
	for _, item := range ranked {
		exclude[item.ID] = true
	}

	var stages []fallbackStage
	if q.Category != "" {
		stages = append(stages, fallbackStage{
			name: "same_category",
			fetch: func(ctx context.Context) ([]models.Template, error) {
				return e.store.QueryByCategory(ctx, q.Category, q.SourceID, e.fallbackLimit)
			},
		})
	}
	stages = append(stages, fallbackStage{
		name: "global",
		fetch: func(ctx context.Context) ([]models.Template, error) {
			return e.store.QueryGlobal(ctx, q.SourceID, e.fallbackLimit)
		},
	})

	rng := rand.New(rand.NewSource(e.seedFn()))

	for _, stage := range stages {
		if len(ranked) >= q.Limit {
			break
		}

		items, err := stage.fetch(ctx)
		if err != nil {
			logger.Warn("兜底补足查询失败，跳过该级", "source_id", q.SourceID, "stage", stage.name, "error", err)
			continue
		}

		// 过滤已选中项后打乱，避免兜底位每次都是同一批
		extra := make([]models.Template, 0, len(items))
		for _, item := range items {
			if item.ID == "" || exclude[item.ID] {
				continue
			}
			extra = append(extra, item)
		}
		rng.Shuffle(len(extra), func(i, j int) {
			extra[i], extra[j] = extra[j], extra[i]
		})

		for _, item := range extra {
			if len(ranked) >= q.Limit {
				break
			}
			exclude[item.ID] = true
			ranked = append(ranked, item)
		}

		logger.Debug("兜底补足完成一级", "source_id", q.SourceID, "stage", stage.name, "filled", len(ranked))
	}

	return ranked
}
