package service

import (
	"Lumina/internal/api/config"
	"Lumina/internal/model"
	"Lumina/internal/pkg/consts"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	user *model.User
	err  error
}

func (f *fakeUserRepo) GetUser(ctx context.Context, userID uint64) (*model.User, error) {
	return f.user, f.err
}

type fakePostRepo struct {
	posts map[uint64]*model.Post
	order []uint64
	err   error
}

func (f *fakePostRepo) GetPostsByIds(ctx context.Context, ids []uint64) ([]*model.Post, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*model.Post
	for _, id := range ids {
		if p, ok := f.posts[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePostRepo) GetPostsExcluding(ctx context.Context, excludedIDs []uint64) ([]*model.Post, error) {
	if f.err != nil {
		return nil, f.err
	}
	excluded := make(map[uint64]struct{}, len(excludedIDs))
	for _, id := range excludedIDs {
		excluded[id] = struct{}{}
	}
	var out []*model.Post
	for _, id := range f.order {
		if _, ok := excluded[id]; ok {
			continue
		}
		out = append(out, f.posts[id])
	}
	return out, nil
}

type fakeInteractionRepo struct {
	window []*model.Interaction

	readErr error
	bulkErr error

	upserted     [][2]uint64
	bulkUpserted [][]uint64
}

func (f *fakeInteractionRepo) RecentByUser(ctx context.Context, userID uint64, limit int64) ([]*model.Interaction, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	return f.window, nil
}

func (f *fakeInteractionRepo) UpsertView(ctx context.Context, userID uint64, postID uint64, now time.Time) error {
	f.upserted = append(f.upserted, [2]uint64{userID, postID})
	return nil
}

func (f *fakeInteractionRepo) BulkUpsertViews(ctx context.Context, userID uint64, postIDs []uint64, now time.Time) error {
	if f.bulkErr != nil {
		return f.bulkErr
	}
	f.bulkUpserted = append(f.bulkUpserted, postIDs)
	return nil
}

func testFeedConfig() config.FeedConfig {
	return config.FeedConfig{
		InteractionWindow:     100,
		TagWeightMultiplier:   100,
		ContentTypeBonus:      50,
		ActiveHourBonus:       30,
		RecencyPenaltyPerHour: 0.5,
		DefaultPageSize:       10,
		MaxPageSize:           50,
		ViewedCacheTTLHours:   72,
	}
}

func viewOf(userID, postID uint64, at time.Time) *model.Interaction {
	return &model.Interaction{
		UserID:           userID,
		PostID:           postID,
		Type:             consts.InteractionView,
		ViewCount:        1,
		LastInteractedAt: at,
	}
}

func buildPosts(now time.Time, specs ...*model.Post) *fakePostRepo {
	repo := &fakePostRepo{posts: make(map[uint64]*model.Post)}
	for _, p := range specs {
		repo.posts[p.ID] = p
		repo.order = append(repo.order, p.ID)
	}
	return repo
}

func TestGetPersonalizedFeedInvalidUser(t *testing.T) {
	svc := NewFeedService(&fakeUserRepo{}, &fakePostRepo{}, &fakeInteractionRepo{}, testFeedConfig())

	_, err := svc.GetPersonalizedFeed(context.Background(), 0, 1, 10)

	assert.ErrorIs(t, err, ErrParamInvalid)
}

func TestGetPersonalizedFeedUserNotFound(t *testing.T) {
	svc := NewFeedService(&fakeUserRepo{user: nil}, &fakePostRepo{}, &fakeInteractionRepo{}, testFeedConfig())

	_, err := svc.GetPersonalizedFeed(context.Background(), 42, 1, 10)

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetPersonalizedFeedUpstreamFailure(t *testing.T) {
	interactions := &fakeInteractionRepo{readErr: errors.New("connection reset")}
	svc := NewFeedService(&fakeUserRepo{user: &model.User{ID: 42}}, &fakePostRepo{}, interactions, testFeedConfig())

	_, err := svc.GetPersonalizedFeed(context.Background(), 42, 1, 10)

	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}

func TestGetPersonalizedFeedExcludesViewed(t *testing.T) {
	now := time.Now()
	user := &model.User{ID: 42}

	posts := buildPosts(now,
		&model.Post{ID: 1, Hashtags: []string{"a"}, Engagement: 5, ContentType: "image", CreatedAt: now},
		&model.Post{ID: 2, Hashtags: []string{"a"}, Engagement: 9, ContentType: "image", CreatedAt: now},
		&model.Post{ID: 3, Hashtags: []string{"b"}, Engagement: 1, ContentType: "image", CreatedAt: now},
	)
	interactions := &fakeInteractionRepo{window: []*model.Interaction{
		viewOf(42, 1, now),
	}}

	svc := NewFeedService(&fakeUserRepo{user: user}, posts, interactions, testFeedConfig())

	page, err := svc.GetPersonalizedFeed(context.Background(), 42, 1, 10)

	require.NoError(t, err)
	require.NotNil(t, page)
	require.Len(t, page.List, 2)
	for _, item := range page.List {
		assert.NotEqual(t, uint64(1), item.ID, "窗口内浏览过的帖子不允许再次出现")
	}
	// 画像来自帖子 1 的标签 a，帖子 2 命中画像排在前面
	assert.Equal(t, uint64(2), page.List[0].ID)
	assert.Equal(t, uint64(3), page.List[1].ID)
}

func TestGetPersonalizedFeedRecordsExposure(t *testing.T) {
	now := time.Now()
	user := &model.User{ID: 42}

	posts := buildPosts(now,
		&model.Post{ID: 1, Engagement: 5, ContentType: "image", CreatedAt: now},
		&model.Post{ID: 2, Engagement: 9, ContentType: "image", CreatedAt: now},
	)
	interactions := &fakeInteractionRepo{}

	svc := NewFeedService(&fakeUserRepo{user: user}, posts, interactions, testFeedConfig())

	page, err := svc.GetPersonalizedFeed(context.Background(), 42, 1, 10)

	require.NoError(t, err)
	require.Len(t, page.List, 2)

	// 返回页整批记为已浏览
	require.Len(t, interactions.bulkUpserted, 1)
	assert.ElementsMatch(t, []uint64{1, 2}, interactions.bulkUpserted[0])
}

func TestGetPersonalizedFeedExposureFailureNonFatal(t *testing.T) {
	now := time.Now()
	user := &model.User{ID: 42}

	posts := buildPosts(now,
		&model.Post{ID: 1, Engagement: 5, ContentType: "image", CreatedAt: now},
	)
	interactions := &fakeInteractionRepo{bulkErr: errors.New("bulk write timeout")}

	svc := NewFeedService(&fakeUserRepo{user: user}, posts, interactions, testFeedConfig())

	page, err := svc.GetPersonalizedFeed(context.Background(), 42, 1, 10)

	// 曝光写失败不拖垮已经算好的页面
	require.NoError(t, err)
	require.Len(t, page.List, 1)
}

func TestGetPersonalizedFeedClampsPaging(t *testing.T) {
	now := time.Now()
	user := &model.User{ID: 42}

	repo := &fakePostRepo{posts: make(map[uint64]*model.Post)}
	for i := uint64(1); i <= 60; i++ {
		p := &model.Post{ID: i, Engagement: float64(i), ContentType: "image", CreatedAt: now}
		repo.posts[i] = p
		repo.order = append(repo.order, i)
	}

	svc := NewFeedService(&fakeUserRepo{user: user}, repo, &fakeInteractionRepo{}, testFeedConfig())

	// page=0 收敛到 1，limit=1000 收敛到 50
	page, err := svc.GetPersonalizedFeed(context.Background(), 42, 0, 1000)

	require.NoError(t, err)
	assert.Len(t, page.List, 50)
}

func TestGetPersonalizedFeedDefaultLimit(t *testing.T) {
	now := time.Now()
	user := &model.User{ID: 42}

	repo := &fakePostRepo{posts: make(map[uint64]*model.Post)}
	for i := uint64(1); i <= 30; i++ {
		p := &model.Post{ID: i, Engagement: float64(i), ContentType: "image", CreatedAt: now}
		repo.posts[i] = p
		repo.order = append(repo.order, i)
	}

	svc := NewFeedService(&fakeUserRepo{user: user}, repo, &fakeInteractionRepo{}, testFeedConfig())

	page, err := svc.GetPersonalizedFeed(context.Background(), 42, 1, 0)

	require.NoError(t, err)
	assert.Len(t, page.List, 10)
}

func TestGetPersonalizedFeedShortPage(t *testing.T) {
	now := time.Now()
	user := &model.User{ID: 42}

	posts := buildPosts(now,
		&model.Post{ID: 1, Engagement: 5, ContentType: "image", CreatedAt: now},
		&model.Post{ID: 2, Engagement: 9, ContentType: "image", CreatedAt: now},
		&model.Post{ID: 3, Engagement: 1, ContentType: "image", CreatedAt: now},
	)

	svc := NewFeedService(&fakeUserRepo{user: user}, posts, &fakeInteractionRepo{}, testFeedConfig())

	page2, err := svc.GetPersonalizedFeed(context.Background(), 42, 2, 2)
	require.NoError(t, err)
	assert.Len(t, page2.List, 1)

	page9, err := svc.GetPersonalizedFeed(context.Background(), 42, 9, 2)
	require.NoError(t, err)
	assert.Empty(t, page9.List)
}

func TestUpdateViewHistory(t *testing.T) {
	interactions := &fakeInteractionRepo{}
	svc := NewFeedService(&fakeUserRepo{}, &fakePostRepo{}, interactions, testFeedConfig())

	require.NoError(t, svc.UpdateViewHistory(context.Background(), 42, 7))
	require.NoError(t, svc.UpdateViewHistory(context.Background(), 42, 7))

	// 重复上报走同一条 upsert 路径，落账两次但不产生新行，由存储层保证
	require.Len(t, interactions.upserted, 2)
	assert.Equal(t, [2]uint64{42, 7}, interactions.upserted[0])
}

func TestUpdateViewHistoryInvalidParams(t *testing.T) {
	svc := NewFeedService(&fakeUserRepo{}, &fakePostRepo{}, &fakeInteractionRepo{}, testFeedConfig())

	assert.ErrorIs(t, svc.UpdateViewHistory(context.Background(), 0, 7), ErrParamInvalid)
	assert.ErrorIs(t, svc.UpdateViewHistory(context.Background(), 42, 0), ErrParamInvalid)
}
