package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"template_directory/config"
	"template_directory/logger"
	"template_directory/models"
	"template_directory/repository"
	"template_directory/utils"
)

// TemplateService 目录的浏览、详情、下载和投稿操作
type TemplateService struct {
	repo        *repository.TemplateRepo
	submissions *repository.SubmissionRepo
	cfg         *config.Config
}

// NewTemplateService 创建目录服务
func NewTemplateService(repo *repository.TemplateRepo, submissions *repository.SubmissionRepo, cfg *config.Config) *TemplateService {
	return &TemplateService{
		repo:        repo,
		submissions: submissions,
		cfg:         cfg,
	}
}

// ListTemplates 分页查询模板列表
func (s *TemplateService) ListTemplates(ctx context.Context, category string, page, pageSize int) ([]models.Template, error) {
	return s.repo.List(ctx, category, page, pageSize)
}

// ListCategories 查询所有分类及数量
func (s *TemplateService) ListCategories(ctx context.Context) (map[string]int, error) {
	return s.repo.ListCategories(ctx)
}

// PeekTemplate 查询模板但不累加浏览量，内部取数用
func (s *TemplateService) PeekTemplate(ctx context.Context, id string) (*models.Template, error) {
	return s.repo.GetByID(ctx, id)
}

// GetTemplate 查询模板详情并累加浏览量
// 计数失败只记日志，不影响详情返回
func (s *TemplateService) GetTemplate(ctx context.Context, id string) (*models.Template, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.IncrementViews(ctx, id); err != nil {
		logger.Warn("浏览量累加失败", "id", id, "error", err)
	} else {
		t.Popularity.Views++
	}

	return t, nil
}

// RecordDownload 记录一次下载并返回模板
func (s *TemplateService) RecordDownload(ctx context.Context, id string) (*models.Template, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.IncrementDownloads(ctx, id); err != nil {
		logger.Warn("下载量累加失败", "id", id, "error", err)
	} else {
		t.Popularity.Downloads++
	}

	logger.Info("模板下载", "id", id, "name", t.Name)
	return t, nil
}

// SubmitTemplate 保存一条用户投稿，返回生成的投稿ID
func (s *TemplateService) SubmitTemplate(ctx context.Context, req *models.SubmissionRequest) (string, error) {
	sub := &models.Submission{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Category:    strings.TrimSpace(req.Category),
		Tags:        utils.DeduplicateSlice(req.Tags),
		AuthorEmail: strings.TrimSpace(req.AuthorEmail),
		PayloadJSON: req.PayloadJSON,
		Status:      "pending",
	}

	if err := s.submissions.Save(ctx, sub); err != nil {
		return "", err
	}

	logger.Info("收到模板投稿", "submission_id", sub.ID, "name", sub.Name, "category", sub.Category)
	return sub.ID, nil
}
