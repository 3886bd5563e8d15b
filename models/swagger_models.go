package models

// APIResponse 通用API响应
type APIResponse struct {
	Code    int         `json:"code" example:"0"`
	Message string      `json:"message" example:"success"`
	Data    interface{} `json:"data,omitempty"`
}

// TemplateListResponse 模板列表响应
type TemplateListResponse struct {
	Code    int        `json:"code" example:"0"`
	Message string     `json:"message" example:"success"`
	Data    []Template `json:"data"`
}

// RelatedResponse 相关模板响应
type RelatedResponse struct {
	Code    int        `json:"code" example:"0"`
	Message string     `json:"message" example:"success"`
	Data    []Template `json:"data"`
}

// SubmissionRequest 模板投稿请求体
type SubmissionRequest struct {
	Name        string   `json:"name" example:"Slack告警转工单"`
	Description string   `json:"description" example:"把Slack频道里的告警消息自动建成工单"`
	Category    string   `json:"category" example:"devops"`
	Tags        []string `json:"tags" example:"['slack','告警']"`
	AuthorEmail string   `json:"author_email" example:"user@example.com"`
	PayloadJSON string   `json:"payload_json"` // 模板定义的原始JSON
}

// SEOMeta 模板详情页的SEO元数据
type SEOMeta struct {
	Title       string   `json:"title" example:"Slack告警转工单 - Template Directory"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
	Canonical   string   `json:"canonical" example:"https://example.com/templates/slack-alerts-to-tickets"`
}
