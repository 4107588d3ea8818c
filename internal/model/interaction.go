package model

import (
	"time"
)

// Interaction 用户互动记录
// (user_id, post_id, type) 逻辑上唯一，但历史数据可能存在重复行，读取侧需容忍
type Interaction struct {
	ID               string    `bson:"_id,omitempty" json:"id"`
	UserID           uint64    `bson:"user_id" json:"user_id"`
	PostID           uint64    `bson:"post_id" json:"post_id"`
	Type             string    `bson:"type" json:"type"`
	ViewCount        int64     `bson:"view_count" json:"view_count"`
	LastInteractedAt time.Time `bson:"last_interacted_at" json:"last_interacted_at"`
}
