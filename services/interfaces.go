package services

import (
	"context"

	"template_directory/models"
)

// TemplateStore 推荐引擎消费的模板存储边界
// repository.TemplateRepo 是生产实现，测试中用内存假实现替换
type TemplateStore interface {
	// 按分类查询模板，排除指定ID
	QueryByCategory(ctx context.Context, category, excludeID string, limit int) ([]models.Template, error)

	// 全局查询模板，排除指定ID
	QueryGlobal(ctx context.Context, excludeID string, limit int) ([]models.Template, error)

	// 按ID列表查询模板（用于获取源模板自身的记录）
	QueryByIDs(ctx context.Context, ids []string) ([]models.Template, error)
}
