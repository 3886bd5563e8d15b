package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"template_directory/models"
)

// SubmissionRepo 模板投稿的MySQL访问层
type SubmissionRepo struct {
	db      *sql.DB
	timeout time.Duration
}

// NewSubmissionRepo 创建投稿访问层
func NewSubmissionRepo(db *sql.DB, timeout time.Duration) *SubmissionRepo {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &SubmissionRepo{db: db, timeout: timeout}
}

// Save 保存一条投稿，状态固定为pending
func (r *SubmissionRepo) Save(ctx context.Context, sub *models.Submission) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	tagsJSON, _ := json.Marshal(sub.Tags)

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO template_submissions (id, name, description, category, tags, author_email, payload_json, status, created_at)
		VALUES (?, ?, ?, ?, CAST(? AS JSON), ?, ?, 'pending', NOW())
	`, sub.ID, sub.Name, sub.Description, sub.Category, string(tagsJSON), sub.AuthorEmail, sub.PayloadJSON)

	return err
}

// GetByID 查询单条投稿
func (r *SubmissionRepo) GetByID(ctx context.Context, id string) (*models.Submission, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var sub models.Submission
	var description, category, tagsJSON, authorEmail, payloadJSON, createdAt sql.NullString

	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, description, category, tags, author_email, payload_json, status, created_at
		FROM template_submissions
		WHERE id = ?
	`, id).Scan(&sub.ID, &sub.Name, &description, &category, &tagsJSON, &authorEmail, &payloadJSON, &sub.Status, &createdAt)
	if err != nil {
		return nil, err
	}

	sub.Description = description.String
	sub.Category = category.String
	sub.AuthorEmail = authorEmail.String
	sub.PayloadJSON = payloadJSON.String
	sub.CreatedAt = createdAt.String

	if tagsJSON.Valid && tagsJSON.String != "" {
		if err := json.Unmarshal([]byte(tagsJSON.String), &sub.Tags); err != nil {
			sub.Tags = nil
		}
	}

	return &sub, nil
}
