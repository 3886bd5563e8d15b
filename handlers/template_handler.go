package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"

	"template_directory/config"
	_ "template_directory/docs" // 导入 swagger 文档
	"template_directory/models"
	"template_directory/services"
	"template_directory/utils"
)

// ListTemplatesHandler godoc
// @Summary 查询模板列表
// @Description 分页查询模板目录，支持按分类过滤
// @Tags 模板目录
// @Accept json
// @Produce json
// @Param category query string false "分类"
// @Param page query int false "页码，默认1"
// @Param page_size query int false "每页数量，默认20"
// @Success 200 {object} models.TemplateListResponse "成功"
// @Failure 500 {object} models.APIResponse "服务器错误"
// @Router /api/templates [get]
func ListTemplatesHandler(w http.ResponseWriter, r *http.Request, svc *services.TemplateService) {
	category := r.URL.Query().Get("category")
	page := utils.ParsePositiveInt(r.URL.Query().Get("page"), 1)
	pageSize := utils.Min(utils.ParsePositiveInt(r.URL.Query().Get("page_size"), 20), 100)

	templates, err := svc.ListTemplates(r.Context(), category, page, pageSize)
	if err != nil {
		utils.WriteCustomErrorResponse(w, models.CodeDatabaseError, err.Error(), map[string]interface{}{})
		return
	}

	utils.WriteSuccessResponse(w, templates)
}

// ListCategoriesHandler godoc
// @Summary 查询所有分类
// @Description 返回所有分类及各自的模板数量
// @Tags 模板目录
// @Accept json
// @Produce json
// @Success 200 {object} models.APIResponse "成功"
// @Failure 500 {object} models.APIResponse "服务器错误"
// @Router /api/templates/categories [get]
func ListCategoriesHandler(w http.ResponseWriter, r *http.Request, svc *services.TemplateService) {
	categories, err := svc.ListCategories(r.Context())
	if err != nil {
		utils.WriteCustomErrorResponse(w, models.CodeDatabaseError, err.Error(), map[string]interface{}{})
		return
	}

	utils.WriteSuccessResponse(w, categories)
}

// GetTemplateHandler godoc
// @Summary 查询模板详情
// @Description 返回模板详情并累加浏览量
// @Tags 模板目录
// @Accept json
// @Produce json
// @Param id path string true "模板ID"
// @Success 200 {object} models.APIResponse "成功"
// @Failure 400 {object} models.APIResponse "参数错误"
// @Failure 404 {object} models.APIResponse "模板不存在"
// @Router /api/templates/{id} [get]
func GetTemplateHandler(w http.ResponseWriter, r *http.Request, svc *services.TemplateService) {
	id := chi.URLParam(r, "id")
	if !utils.ValidateTemplateID(w, id) {
		return
	}

	template, err := svc.GetTemplate(r.Context(), id)
	if err != nil {
		utils.HandleServiceError(w, err, models.CodeTemplateMissing)
		return
	}

	utils.WriteSuccessResponse(w, template)
}

// GetRelatedHandler godoc
// @Summary 查询相关模板
// @Description 返回与指定模板相关的模板列表，数量尽量等于limit；语料不足时返回短列表
// @Tags 模板目录
// @Accept json
// @Produce json
// @Param id path string true "模板ID"
// @Param limit query int false "返回数量，默认6"
// @Success 200 {object} models.RelatedResponse "成功"
// @Failure 400 {object} models.APIResponse "参数错误"
// @Router /api/templates/{id}/related [get]
func GetRelatedHandler(w http.ResponseWriter, r *http.Request, cfg *config.Config, svc *services.TemplateService, engine *services.RelatedEngine) {
	id := chi.URLParam(r, "id")
	if !utils.ValidateTemplateID(w, id) {
		return
	}

	query := models.RelatedQuery{
		SourceID: id,
		Limit:    utils.ParsePositiveInt(r.URL.Query().Get("limit"), cfg.Related.DefaultLimit),
	}

	// 源模板的分类和标签作为查询输入；取不到时留空，引擎内部会降级
	if source, err := svc.PeekTemplate(r.Context(), id); err == nil {
		query.Category = source.Category
		query.Tags = source.Tags
	}

	related, err := engine.GetRelated(r.Context(), query)
	if err != nil {
		// 只有查询本身非法才会走到这里
		utils.WriteCustomErrorResponse(w, models.CodeInvalidParams, err.Error(), map[string]interface{}{})
		return
	}

	utils.WriteSuccessResponse(w, related)
}

// DownloadTemplateHandler godoc
// @Summary 下载模板
// @Description 记录一次下载并返回模板定义
// @Tags 模板目录
// @Accept json
// @Produce json
// @Param id path string true "模板ID"
// @Success 200 {object} models.APIResponse "成功"
// @Failure 400 {object} models.APIResponse "参数错误"
// @Failure 404 {object} models.APIResponse "模板不存在"
// @Router /api/templates/{id}/download [post]
func DownloadTemplateHandler(w http.ResponseWriter, r *http.Request, svc *services.TemplateService) {
	id := chi.URLParam(r, "id")
	if !utils.ValidateTemplateID(w, id) {
		return
	}

	template, err := svc.RecordDownload(r.Context(), id)
	if err != nil {
		utils.HandleServiceError(w, err, models.CodeTemplateMissing)
		return
	}

	utils.WriteSuccessResponse(w, template)
}

// GetTemplateMetaHandler godoc
// @Summary 查询模板SEO元数据
// @Description 返回模板详情页的title、description、keywords和canonical
// @Tags SEO
// @Accept json
// @Produce json
// @Param id path string true "模板ID"
// @Success 200 {object} models.APIResponse "成功"
// @Failure 404 {object} models.APIResponse "模板不存在"
// @Router /api/templates/{id}/meta [get]
func GetTemplateMetaHandler(w http.ResponseWriter, r *http.Request, svc *services.TemplateService, seo *services.SEOService) {
	id := chi.URLParam(r, "id")
	if !utils.ValidateTemplateID(w, id) {
		return
	}

	template, err := svc.GetTemplate(r.Context(), id)
	if err != nil {
		utils.HandleServiceError(w, err, models.CodeTemplateMissing)
		return
	}

	utils.WriteSuccessResponse(w, seo.BuildMeta(template))
}

// SubmitTemplateHandler godoc
// @Summary 投稿模板
// @Description 提交一个待审核的模板投稿
// @Tags 投稿
// @Accept json
// @Produce json
// @Param submission body models.SubmissionRequest true "投稿内容"
// @Success 200 {object} models.APIResponse "成功"
// @Failure 400 {object} models.APIResponse "参数错误"
// @Failure 500 {object} models.APIResponse "服务器错误"
// @Router /api/submissions [post]
func SubmitTemplateHandler(w http.ResponseWriter, r *http.Request, svc *services.TemplateService) {
	var req models.SubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteErrorResponse(w, models.CodeInvalidParams, map[string]interface{}{"error": err.Error()})
		return
	}
	if req.Name == "" {
		utils.WriteErrorResponse(w, models.CodeMissingParams, map[string]interface{}{"param": "name"})
		return
	}

	id, err := svc.SubmitTemplate(r.Context(), &req)
	if err != nil {
		utils.WriteCustomErrorResponse(w, models.CodeSubmitError, err.Error(), map[string]interface{}{})
		return
	}

	utils.WriteSuccessResponse(w, map[string]interface{}{
		"submission_id": id,
		"status":        "pending",
	})
}

// SitemapHandler godoc
// @Summary 站点sitemap
// @Description 返回全部模板页的sitemap XML
// @Tags SEO
// @Produce xml
// @Success 200 {string} string "sitemap"
// @Router /sitemap.xml [get]
func SitemapHandler(w http.ResponseWriter, r *http.Request, seo *services.SEOService) {
	sitemap, err := seo.BuildSitemap(r.Context())
	if err != nil {
		http.Error(w, "sitemap unavailable", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Write([]byte(sitemap))
}

// RegisterRoutes 注册全部路由
func RegisterRoutes(r *chi.Mux, cfg *config.Config, svc *services.TemplateService, engine *services.RelatedEngine, seo *services.SEOService) {
	// Swagger 文档
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"), // Swagger JSON 的 URL
	))

	r.Get("/api/templates", func(w http.ResponseWriter, req *http.Request) {
		ListTemplatesHandler(w, req, svc)
	})

	r.Get("/api/templates/categories", func(w http.ResponseWriter, req *http.Request) {
		ListCategoriesHandler(w, req, svc)
	})

	r.Get("/api/templates/{id}", func(w http.ResponseWriter, req *http.Request) {
		GetTemplateHandler(w, req, svc)
	})

	r.Get("/api/templates/{id}/related", func(w http.ResponseWriter, req *http.Request) {
		GetRelatedHandler(w, req, cfg, svc, engine)
	})

	r.Post("/api/templates/{id}/download", func(w http.ResponseWriter, req *http.Request) {
		DownloadTemplateHandler(w, req, svc)
	})

	r.Get("/api/templates/{id}/meta", func(w http.ResponseWriter, req *http.Request) {
		GetTemplateMetaHandler(w, req, svc, seo)
	})

	r.Post("/api/submissions", func(w http.ResponseWriter, req *http.Request) {
		SubmitTemplateHandler(w, req, svc)
	})

	r.Get("/sitemap.xml", func(w http.ResponseWriter, req *http.Request) {
		SitemapHandler(w, req, seo)
	})
}
