package models

// Submission 用户投稿的模板，审核通过后才会进入目录
type Submission struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	AuthorEmail string   `json:"author_email,omitempty"`
	PayloadJSON string   `json:"payload_json,omitempty"`
	Status      string   `json:"status"` // pending / approved / rejected
	CreatedAt   string   `json:"created_at,omitempty"`
}
