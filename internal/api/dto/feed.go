package dto

// FeedQueryDTO 推荐流分页参数
// page/limit 越界时收敛到合法区间，不报错
type FeedQueryDTO struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

// PostDTO 帖子
type PostDTO struct {
	ID          uint64   `json:"id"`
	UserID      uint64   `json:"user_id"`
	Caption     string   `json:"caption"`
	Hashtags    []string `json:"hashtags"`
	ContentType string   `json:"content_type"`
	Engagement  float64  `json:"engagement"`
	MediaURL    string   `json:"media_url"`
	CreatedAt   string   `json:"created_at"`
}

// FeedPageDTO 推荐流单页
type FeedPageDTO struct {
	List []*PostDTO `json:"list"`
}

// ViewEventDTO 单条浏览事件，来自客户端埋点 (Kafka)
type ViewEventDTO struct {
	UserID uint64 `json:"user_id" validate:"required"`
	PostID uint64 `json:"post_id" validate:"required"`
}
