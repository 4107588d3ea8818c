package model

import (
	"time"
)

// Post 帖子文档，打分期间视为不可变快照
type Post struct {
	ID          uint64    `bson:"_id" json:"id"`
	UserID      uint64    `bson:"user_id" json:"user_id"`
	Caption     string    `bson:"caption" json:"caption"`
	Hashtags    []string  `bson:"hashtags" json:"hashtags"` // 有序、允许重复，重复标签是加权信号
	Engagement  float64   `bson:"engagement" json:"engagement"`
	ContentType string    `bson:"content_type" json:"content_type"`
	MediaKey    string    `bson:"media_key" json:"media_key"` // 对象存储中的文件 Key
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}
