package models

import "encoding/json"

// Popularity 模板的热度统计
type Popularity struct {
	Views     int `json:"views"`
	Downloads int `json:"downloads"`
}

// Total 浏览量与下载量之和，推荐打分使用的热度口径
func (p Popularity) Total() int {
	return p.Views + p.Downloads
}

// UnmarshalJSON 兼容两种存储形态：结构化对象，或被二次编码成字符串的JSON
func (p *Popularity) UnmarshalJSON(data []byte) error {
	type plain Popularity
	var v plain
	if err := json.Unmarshal(data, &v); err == nil {
		*p = Popularity(v)
		return nil
	}

	// 旧数据会把整个对象编码成字符串，这里再解一层
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return err
	}
	*p = Popularity(v)
	return nil
}

// ParsePopularity 解析数据库中的popularity字段
// 字段可能是JSON对象、被转义的JSON字符串或为空，解析失败时返回零值而不是报错
func ParsePopularity(raw string) Popularity {
	var p Popularity
	if raw == "" {
		return p
	}
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return Popularity{}
	}
	if p.Views < 0 {
		p.Views = 0
	}
	if p.Downloads < 0 {
		p.Downloads = 0
	}
	return p
}

// Template 目录中的一个自动化模板
type Template struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Category    string     `json:"category,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	Popularity  Popularity `json:"popularity"`
	CreatedAt   string     `json:"created_at,omitempty"`
}

// ScoredTemplate 带相关度分数的模板，仅在推荐流水线内部使用
type ScoredTemplate struct {
	Template
	Score float64 `json:"score"`
}

// RelatedQuery 相关模板查询
type RelatedQuery struct {
	SourceID string   `json:"source_id"`
	Category string   `json:"category,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Limit    int      `json:"limit"`
}
