package model

import (
	"time"
)

// User 用户文档，由身份子系统维护，推荐引擎只读
type User struct {
	ID                    uint64    `bson:"_id" json:"id"`
	Username              string    `bson:"username" json:"username"`
	Nickname              string    `bson:"nickname" json:"nickname"`
	AvatarURL             string    `bson:"avatar_url" json:"avatar_url"`
	PreferredContentTypes []string  `bson:"preferred_content_types" json:"preferred_content_types"` // 偏好内容类型
	ActiveHours           []int     `bson:"active_hours" json:"active_hours"`                       // 活跃小时段 0~23
	CreatedAt             time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt             time.Time `bson:"updated_at" json:"updated_at"`
}

// PrefersContentType 判断内容类型是否在用户偏好列表中
func (u *User) PrefersContentType(contentType string) bool {
	for _, ct := range u.PreferredContentTypes {
		if ct == contentType {
			return true
		}
	}
	return false
}

// ActiveAt 判断给定小时是否落在用户活跃时段内
func (u *User) ActiveAt(hour int) bool {
	for _, h := range u.ActiveHours {
		if h == hour {
			return true
		}
	}
	return false
}
