package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"

	"template_directory/config"
	"template_directory/logger"
	"template_directory/models"
)

// TemplateRepo 模板目录的MySQL访问层
// 推荐引擎的所有读查询都经过熔断器，数据库持续故障时快速失败而不是堆积超时
type TemplateRepo struct {
	db      *sql.DB
	timeout time.Duration
	breaker *gobreaker.CircuitBreaker[[]models.Template]
}

// NewTemplateRepo 创建模板访问层
func NewTemplateRepo(db *sql.DB, cfg *config.Config) *TemplateRepo {
	timeout := time.Duration(cfg.Related.StoreTimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	breaker := gobreaker.NewCircuitBreaker[[]models.Template](gobreaker.Settings{
		Name:    "template_store",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("模板存储熔断器状态变化", "name", name, "from", from.String(), "to", to.String())
		},
	})

	return &TemplateRepo{
		db:      db,
		timeout: timeout,
		breaker: breaker,
	}
}

// QueryByCategory 按分类查询模板，排除指定ID
func (r *TemplateRepo) QueryByCategory(ctx context.Context, category, excludeID string, limit int) ([]models.Template, error) {
	return r.breaker.Execute(func() ([]models.Template, error) {
		ctx, cancel := context.WithTimeout(ctx, r.timeout)
		defer cancel()

		rows, err := r.db.QueryContext(ctx, `
			SELECT id, name, description, category, tags, popularity, created_at
			FROM templates
			WHERE category = ? AND id != ?
			ORDER BY created_at DESC
			LIMIT ?
		`, category, excludeID, limit)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		return scanTemplates(rows), nil
	})
}

// QueryGlobal 全局查询模板，排除指定ID
func (r *TemplateRepo) QueryGlobal(ctx context.Context, excludeID string, limit int) ([]models.Template, error) {
	return r.breaker.Execute(func() ([]models.Template, error) {
		ctx, cancel := context.WithTimeout(ctx, r.timeout)
		defer cancel()

		rows, err := r.db.QueryContext(ctx, `
			SELECT id, name, description, category, tags, popularity, created_at
			FROM templates
			WHERE id != ?
			ORDER BY created_at DESC
			LIMIT ?
		`, excludeID, limit)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		return scanTemplates(rows), nil
	})
}

// QueryByIDs 按ID列表查询模板
func (r *TemplateRepo) QueryByIDs(ctx context.Context, ids []string) ([]models.Template, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	return r.breaker.Execute(func() ([]models.Template, error) {
		ctx, cancel := context.WithTimeout(ctx, r.timeout)
		defer cancel()

		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
		args := make([]any, 0, len(ids))
		for _, id := range ids {
			args = append(args, id)
		}

		rows, err := r.db.QueryContext(ctx, `
			SELECT id, name, description, category, tags, popularity, created_at
			FROM templates
			WHERE id IN (`+placeholders+`)
		`, args...)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		return scanTemplates(rows), nil
	})
}

// List 分页查询模板列表，category为空时不过滤分类
func (r *TemplateRepo) List(ctx context.Context, category string, page, pageSize int) ([]models.Template, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	return r.breaker.Execute(func() ([]models.Template, error) {
		ctx, cancel := context.WithTimeout(ctx, r.timeout)
		defer cancel()

		var rows *sql.Rows
		var err error
		if category != "" {
			rows, err = r.db.QueryContext(ctx, `
				SELECT id, name, description, category, tags, popularity, created_at
				FROM templates
				WHERE category = ?
				ORDER BY created_at DESC
				LIMIT ? OFFSET ?
			`, category, pageSize, offset)
		} else {
			rows, err = r.db.QueryContext(ctx, `
				SELECT id, name, description, category, tags, popularity, created_at
				FROM templates
				ORDER BY created_at DESC
				LIMIT ? OFFSET ?
			`, pageSize, offset)
		}
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		return scanTemplates(rows), nil
	})
}

// GetByID 查询单个模板
func (r *TemplateRepo) GetByID(ctx context.Context, id string) (*models.Template, error) {
	items, err := r.QueryByIDs(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, sql.ErrNoRows
	}
	return &items[0], nil
}

// TopDownloaded 查询下载量最高的模板，用于缓存预热
func (r *TemplateRepo) TopDownloaded(ctx context.Context, limit int) ([]models.Template, error) {
	return r.breaker.Execute(func() ([]models.Template, error) {
		ctx, cancel := context.WithTimeout(ctx, r.timeout)
		defer cancel()

		rows, err := r.db.QueryContext(ctx, `
			SELECT id, name, description, category, tags, popularity, created_at
			FROM templates
			ORDER BY CAST(JSON_EXTRACT(popularity, '$.downloads') AS UNSIGNED) DESC
			LIMIT ?
		`, limit)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		return scanTemplates(rows), nil
	})
}

// ListCategories 查询所有分类及其模板数量
func (r *TemplateRepo) ListCategories(ctx context.Context) (map[string]int, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT category, COUNT(*)
		FROM templates
		WHERE category IS NOT NULL AND category != ''
		GROUP BY category
		ORDER BY category
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string]int)
	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			continue
		}
		result[category] = count
	}

	return result, nil
}

// AllIDs 查询全部模板ID，sitemap生成使用
func (r *TemplateRepo) AllIDs(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT id FROM templates ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			continue
		}
		ids = append(ids, id)
	}

	return ids, nil
}

// IncrementViews 浏览量加一
func (r *TemplateRepo) IncrementViews(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `
		UPDATE templates
		SET popularity = JSON_SET(popularity, '$.views', CAST(JSON_EXTRACT(popularity, '$.views') AS UNSIGNED) + 1)
		WHERE id = ?
	`, id)
	return err
}

// IncrementDownloads 下载量加一
func (r *TemplateRepo) IncrementDownloads(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `
		UPDATE templates
		SET popularity = JSON_SET(popularity, '$.downloads', CAST(JSON_EXTRACT(popularity, '$.downloads') AS UNSIGNED) + 1)
		WHERE id = ?
	`, id)
	return err
}

// scanTemplates 扫描查询结果，单行出错时跳过而不是中断整个结果集
func scanTemplates(rows *sql.Rows) []models.Template {
	var items []models.Template
	for rows.Next() {
		var t models.Template
		var description, category, tagsJSON, popularityJSON sql.NullString
		var createdAt sql.NullString

		if err := rows.Scan(&t.ID, &t.Name, &description, &category, &tagsJSON, &popularityJSON, &createdAt); err != nil {
			continue
		}

		t.Description = description.String
		t.Category = category.String
		t.CreatedAt = createdAt.String

		// tags存储为JSON数组，解析失败时当作没有标签
		if tagsJSON.Valid && tagsJSON.String != "" {
			if err := json.Unmarshal([]byte(tagsJSON.String), &t.Tags); err != nil {
				t.Tags = nil
			}
		}

		// popularity字段形态不稳定，统一在这里规整成强类型
		t.Popularity = models.ParsePopularity(popularityJSON.String)

		items = append(items, t)
	}

	return items
}
