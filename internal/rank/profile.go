package rank

import (
	"Lumina/internal/model"
)

// Profile 标签亲和度画像: map[tag]weight，权重之和为 1 (空画像除外)
// 每次请求基于互动窗口现算，不落库
type Profile map[string]float64

// BuildProfile 由用户近期浏览过的帖子构建标签亲和度画像
// 标签列表直接展平计数，同一帖子里重复出现的标签按出现次数累计
func BuildProfile(viewedPosts []*model.Post) Profile {
	counts := make(map[string]int64)
	var total int64

	for _, post := range viewedPosts {
		for _, tag := range post.Hashtags {
			counts[tag]++
			total++
		}
	}

	profile := make(Profile, len(counts))
	if total == 0 {
		// 新用户没有浏览历史，空画像是合法状态，所有标签权重视为 0
		return profile
	}

	for tag, count := range counts {
		profile[tag] = float64(count) / float64(total)
	}

	return profile
}
