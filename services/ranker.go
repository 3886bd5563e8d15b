package services

import (
	"sort"

	"template_directory/models"
)

// rankTemplates 按分数降序排序并截断到limit
// 必须是稳定排序：同分候选保持进入打分前的顺序（分类命中的候选排在全局补充之前）
func rankTemplates(scored []models.ScoredTemplate, limit int) []models.Template {
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}

	result := make([]models.Template, 0, len(scored))
	for _, s := range scored {
		result = append(result, s.Template)
	}
	return result
}
