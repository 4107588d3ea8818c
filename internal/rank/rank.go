package rank

import (
	"Lumina/internal/model"
	"sort"
	"time"
)

// Rank 对候选集整体打分并按得分降序排列
// 画像在整个排序过程中是同一份快照；稳定排序保证同分帖子保持入参顺序
func Rank(candidates []*model.Post, profile Profile, user *model.User, now time.Time, p Params) []*model.Post {
	scores := make(map[uint64]float64, len(candidates))
	for _, post := range candidates {
		scores[post.ID] = Score(post, profile, user, now, p)
	}

	ranked := make([]*model.Post, len(candidates))
	copy(ranked, candidates)

	sort.SliceStable(ranked, func(i, j int) bool {
		return scores[ranked[i].ID] > scores[ranked[j].ID]
	})

	return ranked
}

// Paginate 窗口切片，候选不足一页时返回短页
func Paginate(ranked []*model.Post, page, limit int) []*model.Post {
	start := (page - 1) * limit
	if start >= len(ranked) {
		return nil
	}

	end := start + limit
	if end > len(ranked) {
		end = len(ranked)
	}

	return ranked[start:end]
}

// ClampPage 页码下限为 1，越界值收敛而不是报错
func ClampPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// ClampLimit 每页条数收敛到 [1, max]，防止无界响应
func ClampLimit(limit, max int) int {
	if limit < 1 {
		return 1
	}
	if limit > max {
		return max
	}
	return limit
}
