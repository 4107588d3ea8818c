package rank

import (
	"Lumina/internal/api/config"
	"Lumina/internal/model"
	"time"
)

// Params 打分系数，对应 feed 配置段
type Params struct {
	TagWeightMultiplier   float64
	ContentTypeBonus      float64
	ActiveHourBonus       float64
	RecencyPenaltyPerHour float64
}

// DefaultParams 缺省系数
func DefaultParams() Params {
	return Params{
		TagWeightMultiplier:   100,
		ContentTypeBonus:      50,
		ActiveHourBonus:       30,
		RecencyPenaltyPerHour: 0.5,
	}
}

// ParamsFromConfig 从全局配置读取打分系数
func ParamsFromConfig(cfg config.FeedConfig) Params {
	return Params{
		TagWeightMultiplier:   cfg.TagWeightMultiplier,
		ContentTypeBonus:      cfg.ContentTypeBonus,
		ActiveHourBonus:       cfg.ActiveHourBonus,
		RecencyPenaltyPerHour: cfg.RecencyPenaltyPerHour,
	}
}

// Score 计算单个候选帖子的综合得分
// 得分 = 互动热度 + 标签亲和 + 内容类型加成 + 活跃时段加成 - 时效衰减
// 衰减没有下限，老帖子得分可以为负，目的是沉底而不是剔除
func Score(post *model.Post, profile Profile, user *model.User, now time.Time, p Params) float64 {
	score := post.Engagement

	for _, tag := range post.Hashtags {
		score += p.TagWeightMultiplier * profile[tag]
	}

	if user.PrefersContentType(post.ContentType) {
		score += p.ContentTypeBonus
	}

	if user.ActiveAt(now.Hour()) {
		score += p.ActiveHourBonus
	}

	ageHours := now.Sub(post.CreatedAt).Hours()
	score -= p.RecencyPenaltyPerHour * ageHours

	return score
}
