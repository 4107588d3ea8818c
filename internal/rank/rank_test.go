package rank

import (
	"Lumina/internal/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPost(id uint64, tags []string, engagement float64, contentType string, createdAt time.Time) *model.Post {
	return &model.Post{
		ID:          id,
		Hashtags:    tags,
		Engagement:  engagement,
		ContentType: contentType,
		CreatedAt:   createdAt,
	}
}

func TestBuildProfile(t *testing.T) {
	viewed := []*model.Post{
		newPost(1, []string{"a", "a", "b"}, 0, "image", time.Now()),
	}

	profile := BuildProfile(viewed)

	require.Len(t, profile, 2)
	assert.InDelta(t, 2.0/3.0, profile["a"], 1e-9)
	assert.InDelta(t, 1.0/3.0, profile["b"], 1e-9)
}

func TestBuildProfileAcrossPosts(t *testing.T) {
	viewed := []*model.Post{
		newPost(1, []string{"a", "b"}, 0, "image", time.Now()),
		newPost(2, []string{"a"}, 0, "video", time.Now()),
		newPost(3, nil, 0, "text", time.Now()),
	}

	profile := BuildProfile(viewed)

	require.Len(t, profile, 2)
	assert.InDelta(t, 2.0/3.0, profile["a"], 1e-9)
	assert.InDelta(t, 1.0/3.0, profile["b"], 1e-9)

	var sum float64
	for _, w := range profile {
		sum += w
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestBuildProfileEmptyHistory(t *testing.T) {
	profile := BuildProfile(nil)

	require.NotNil(t, profile)
	assert.Empty(t, profile)
	assert.Zero(t, profile["anything"])
}

func TestScoreTagAffinity(t *testing.T) {
	now := time.Now()
	user := &model.User{ID: 1}
	p := DefaultParams()
	p.RecencyPenaltyPerHour = 0

	profile := Profile{"a": 0.5, "b": 0.25}

	// 帖子里重复出现的标签按出现次数累计加权
	post := newPost(10, []string{"a", "a", "b", "c"}, 7, "image", now)
	score := Score(post, profile, user, now, p)

	assert.InDelta(t, 7+100*(0.5+0.5+0.25), score, 1e-9)
}

func TestScoreEmptyProfileContributesNothing(t *testing.T) {
	now := time.Now()
	user := &model.User{ID: 1}
	p := DefaultParams()
	p.RecencyPenaltyPerHour = 0

	post := newPost(10, []string{"a", "b"}, 3, "image", now)
	score := Score(post, Profile{}, user, now, p)

	assert.InDelta(t, 3.0, score, 1e-9)
}

func TestScoreBonuses(t *testing.T) {
	now := time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC)
	p := DefaultParams()
	p.RecencyPenaltyPerHour = 0

	user := &model.User{
		ID:                    1,
		PreferredContentTypes: []string{"video"},
		ActiveHours:           []int{14},
	}

	match := newPost(1, nil, 0, "video", now)
	miss := newPost(2, nil, 0, "text", now)

	assert.InDelta(t, 50+30, Score(match, Profile{}, user, now, p), 1e-9)

	// 内容类型不匹配时只剩活跃时段加成
	assert.InDelta(t, 30.0, Score(miss, Profile{}, user, now, p), 1e-9)
}

func TestScoreRecencyMonotonic(t *testing.T) {
	now := time.Now()
	user := &model.User{ID: 1}
	p := DefaultParams()

	fresh := newPost(1, nil, 10, "image", now.Add(-1*time.Hour))
	stale := newPost(2, nil, 10, "image", now.Add(-48*time.Hour))

	freshScore := Score(fresh, Profile{}, user, now, p)
	staleScore := Score(stale, Profile{}, user, now, p)

	assert.Greater(t, freshScore, staleScore)
	// 衰减没有下限，陈年帖子得分可以为负
	assert.Less(t, staleScore, 0.0)
}

func TestRankOrdersByScoreDesc(t *testing.T) {
	now := time.Now()
	user := &model.User{ID: 1}
	p := DefaultParams()
	p.RecencyPenaltyPerHour = 0

	candidates := []*model.Post{
		newPost(1, nil, 10, "image", now),
		newPost(2, nil, 30, "image", now),
		newPost(3, nil, 20, "image", now),
	}

	ranked := Rank(candidates, Profile{}, user, now, p)

	require.Len(t, ranked, 3)
	assert.Equal(t, uint64(2), ranked[0].ID)
	assert.Equal(t, uint64(3), ranked[1].ID)
	assert.Equal(t, uint64(1), ranked[2].ID)
}

func TestRankStableOnTies(t *testing.T) {
	now := time.Now()
	user := &model.User{ID: 1}
	p := DefaultParams()
	p.RecencyPenaltyPerHour = 0

	// 同分帖子保持入参顺序
	candidates := []*model.Post{
		newPost(5, nil, 10, "image", now),
		newPost(2, nil, 10, "image", now),
		newPost(9, nil, 10, "image", now),
	}

	for i := 0; i < 10; i++ {
		ranked := Rank(candidates, Profile{}, user, now, p)
		require.Len(t, ranked, 3)
		assert.Equal(t, uint64(5), ranked[0].ID)
		assert.Equal(t, uint64(2), ranked[1].ID)
		assert.Equal(t, uint64(9), ranked[2].ID)
	}
}

func TestRankDoesNotMutateInput(t *testing.T) {
	now := time.Now()
	user := &model.User{ID: 1}
	p := DefaultParams()
	p.RecencyPenaltyPerHour = 0

	candidates := []*model.Post{
		newPost(1, nil, 1, "image", now),
		newPost(2, nil, 2, "image", now),
	}

	_ = Rank(candidates, Profile{}, user, now, p)

	assert.Equal(t, uint64(1), candidates[0].ID)
	assert.Equal(t, uint64(2), candidates[1].ID)
}

func TestClampPage(t *testing.T) {
	assert.Equal(t, 1, ClampPage(0))
	assert.Equal(t, 1, ClampPage(-5))
	assert.Equal(t, 1, ClampPage(1))
	assert.Equal(t, 7, ClampPage(7))
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, 1, ClampLimit(0, 50))
	assert.Equal(t, 1, ClampLimit(-3, 50))
	assert.Equal(t, 50, ClampLimit(1000, 50))
	assert.Equal(t, 20, ClampLimit(20, 50))
}

func TestPaginate(t *testing.T) {
	now := time.Now()
	ranked := make([]*model.Post, 0, 25)
	for i := 1; i <= 25; i++ {
		ranked = append(ranked, newPost(uint64(i), nil, 0, "image", now))
	}

	page1 := Paginate(ranked, 1, 10)
	require.Len(t, page1, 10)
	assert.Equal(t, uint64(1), page1[0].ID)

	page3 := Paginate(ranked, 3, 10)
	require.Len(t, page3, 5)
	assert.Equal(t, uint64(21), page3[0].ID)

	assert.Nil(t, Paginate(ranked, 4, 10))
	assert.Nil(t, Paginate(nil, 1, 10))
}

func TestPaginationWindowsConsistent(t *testing.T) {
	now := time.Now()
	user := &model.User{ID: 1}
	p := DefaultParams()
	p.RecencyPenaltyPerHour = 0

	candidates := make([]*model.Post, 0, 40)
	for i := 1; i <= 40; i++ {
		candidates = append(candidates, newPost(uint64(i), nil, float64(i%7), "image", now))
	}

	ranked := Rank(candidates, Profile{}, user, now, p)

	// page=2/limit=10 必须与 page=1/limit=20 的后半段完全一致
	narrow := Paginate(ranked, 2, 10)
	wide := Paginate(ranked, 1, 20)

	require.Len(t, narrow, 10)
	require.Len(t, wide, 20)
	for i := 0; i < 10; i++ {
		assert.Equal(t, wide[10+i].ID, narrow[i].ID)
	}
}
