package services

import (
	"context"
	"fmt"
	"strings"

	"template_directory/config"
	"template_directory/models"
	"template_directory/repository"
	"template_directory/utils"
)

// SEOService 生成模板详情页的元数据和站点sitemap
type SEOService struct {
	repo *repository.TemplateRepo
	cfg  *config.Config
}

// NewSEOService 创建SEO服务
func NewSEOService(repo *repository.TemplateRepo, cfg *config.Config) *SEOService {
	return &SEOService{repo: repo, cfg: cfg}
}

// BuildMeta 生成单个模板的页面元数据
func (s *SEOService) BuildMeta(t *models.Template) models.SEOMeta {
	title := t.Name
	if s.cfg.SEO.SiteName != "" {
		title = fmt.Sprintf("%s - %s", t.Name, s.cfg.SEO.SiteName)
	}

	description := utils.TruncateText(t.Description, s.cfg.SEO.DescriptionLen)
	if description == "" {
		description = utils.TruncateText(t.Name, s.cfg.SEO.DescriptionLen)
	}

	// 关键词用标签加分类，去重后保持原顺序
	keywords := utils.DeduplicateSlice(append(append([]string{}, t.Tags...), t.Category))

	canonical := ""
	if s.cfg.SEO.BaseURL != "" {
		canonical = fmt.Sprintf("%s/templates/%s", strings.TrimSuffix(s.cfg.SEO.BaseURL, "/"), utils.Slugify(t.Name))
	}

	return models.SEOMeta{
		Title:       title,
		Description: description,
		Keywords:    keywords,
		Canonical:   canonical,
	}
}

// BuildSitemap 生成全站模板页的sitemap XML
func (s *SEOService) BuildSitemap(ctx context.Context) (string, error) {
	ids, err := s.repo.AllIDs(ctx)
	if err != nil {
		return "", err
	}

	base := strings.TrimSuffix(s.cfg.SEO.BaseURL, "/")

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">` + "\n")
	for _, id := range ids {
		b.WriteString(fmt.Sprintf("  <url><loc>%s/templates/%s</loc></url>\n", base, id))
	}
	b.WriteString("</urlset>\n")

	return b.String(), nil
}
