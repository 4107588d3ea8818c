package service

import (
	"Lumina/internal/api/config"
	"Lumina/internal/api/dto"
	"Lumina/internal/model"
	"Lumina/internal/pkg/consts"
	"Lumina/internal/pkg/minio"
	"Lumina/internal/pkg/redis"
	"Lumina/internal/rank"
	"Lumina/internal/repository"
	"context"
	log "log/slog"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/jinzhu/copier"
	"golang.org/x/sync/errgroup"
)

// exposureWriteTimeout 曝光写入的独立超时
// 页面算完之后请求被取消也不影响这次写入，但超时的请求不会写入任何未返回的条目
const exposureWriteTimeout = 3 * time.Second

type FeedService interface {
	GetPersonalizedFeed(ctx context.Context, userID uint64, page, limit int) (*dto.FeedPageDTO, error)
	UpdateViewHistory(ctx context.Context, userID uint64, postID uint64) error
}

type feedServiceImpl struct {
	userRepo        repository.UserRepo
	postRepo        repository.PostRepo
	interactionRepo repository.InteractionRepo
	feedCfg         config.FeedConfig
}

func NewFeedService(
	userRepo repository.UserRepo,
	postRepo repository.PostRepo,
	interactionRepo repository.InteractionRepo,
	feedCfg config.FeedConfig,
) FeedService {
	return &feedServiceImpl{
		userRepo:        userRepo,
		postRepo:        postRepo,
		interactionRepo: interactionRepo,
		feedCfg:         feedCfg,
	}
}

// GetPersonalizedFeed 个性化推荐流
// 流程: 互动窗口 -> 标签画像 -> 候选打分排序 -> 分页 -> 曝光落账
func (s *feedServiceImpl) GetPersonalizedFeed(ctx context.Context, userID uint64, page, limit int) (*dto.FeedPageDTO, error) {
	if userID == 0 {
		return nil, ErrParamInvalid
	}

	if limit == 0 {
		limit = s.feedCfg.DefaultPageSize
	}
	page = rank.ClampPage(page)
	limit = rank.ClampLimit(limit, s.feedCfg.MaxPageSize)

	now := time.Now()

	// 用户文档和互动窗口没有依赖关系，并发取
	var user *model.User
	var window []*model.Interaction

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		u, err := s.userRepo.GetUser(gctx, userID)
		if err != nil {
			return err
		}
		user = u
		return nil
	})
	g.Go(func() error {
		w, err := s.interactionRepo.RecentByUser(gctx, userID, s.feedCfg.InteractionWindow)
		if err != nil {
			return err
		}
		window = w
		return nil
	})
	if err := g.Wait(); err != nil {
		log.ErrorContext(ctx, "feed read phase failed", "uid", userID, "err", err)
		return nil, ErrUpstreamUnavailable
	}

	if user == nil {
		return nil, ErrUserNotFound
	}

	// 窗口内的浏览记录既是画像素材也是排除集；历史重复行在这里去重
	viewedIDs := viewedPostIDs(window)

	viewedPosts, err := s.postRepo.GetPostsByIds(ctx, viewedIDs)
	if err != nil {
		log.ErrorContext(ctx, "fetch viewed posts failed", "uid", userID, "err", err)
		return nil, ErrUpstreamUnavailable
	}
	profile := rank.BuildProfile(viewedPosts)

	// Redis 曝光缓存作为快速排除层叠加在窗口排除集之上，取不到就只靠窗口
	excluded := s.withCachedExposures(ctx, userID, viewedIDs)

	candidates, err := s.postRepo.GetPostsExcluding(ctx, excluded)
	if err != nil {
		log.ErrorContext(ctx, "fetch candidates failed", "uid", userID, "err", err)
		return nil, ErrUpstreamUnavailable
	}

	ranked := rank.Rank(candidates, profile, user, now, rank.ParamsFromConfig(s.feedCfg))
	pageItems := rank.Paginate(ranked, page, limit)

	// 曝光写失败不影响已经算好的页面
	s.recordExposure(ctx, userID, postIDs(pageItems), now)

	list, err := batchToPostDTO(pageItems)
	if err != nil {
		return nil, err
	}

	return &dto.FeedPageDTO{List: list}, nil
}

// UpdateViewHistory 单条浏览事件，按查找后更新的语义幂等写入
func (s *feedServiceImpl) UpdateViewHistory(ctx context.Context, userID uint64, postID uint64) error {
	if userID == 0 || postID == 0 {
		return ErrParamInvalid
	}

	if err := s.interactionRepo.UpsertView(ctx, userID, postID, time.Now()); err != nil {
		log.ErrorContext(ctx, "upsert view failed", "uid", userID, "post_id", postID, "err", err)
		return ErrUpstreamUnavailable
	}
	return nil
}

// recordExposure 把本页返回的帖子整批记为已浏览
// 同步写互动日志 (失败入补偿队列)，异步刷新 Redis 曝光缓存
func (s *feedServiceImpl) recordExposure(ctx context.Context, userID uint64, ids []uint64, now time.Time) {
	if len(ids) == 0 {
		return
	}

	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), exposureWriteTimeout)
	defer cancel()

	if err := s.interactionRepo.BulkUpsertViews(writeCtx, userID, ids, now); err != nil {
		log.WarnContext(ctx, "record exposure failed, enqueue for retry", "uid", userID, "count", len(ids), "err", err)
		s.enqueueExposureRetry(ctx, userID, ids)
	}

	go func(ids []uint64) {
		if redis.GetRdbClient() == nil {
			return
		}
		bgCtx := context.Background()
		key := consts.FeedViewedKey + strconv.FormatUint(userID, 10)

		members := make([]interface{}, len(ids))
		for i, id := range ids {
			members[i] = id
		}

		ttl := time.Duration(s.feedCfg.ViewedCacheTTLHours) * time.Hour
		_ = redis.SAddWithExpire(bgCtx, key, members, ttl)
	}(ids)
}

// enqueueExposureRetry 曝光批次入补偿队列，由定时任务重放
func (s *feedServiceImpl) enqueueExposureRetry(ctx context.Context, userID uint64, ids []uint64) {
	if redis.GetRdbClient() == nil {
		return
	}
	payload, err := json.Marshal(&model.ExposureBatch{UserID: userID, PostIDs: ids})
	if err != nil {
		return
	}
	if err = redis.RPush(ctx, consts.FeedExposureRetryKey, payload); err != nil {
		log.ErrorContext(ctx, "enqueue exposure retry failed", "uid", userID, "err", err)
	}
}

// withCachedExposures 合并 Redis 曝光缓存到排除集
func (s *feedServiceImpl) withCachedExposures(ctx context.Context, userID uint64, viewedIDs []uint64) []uint64 {
	if redis.GetRdbClient() == nil {
		return viewedIDs
	}

	key := consts.FeedViewedKey + strconv.FormatUint(userID, 10)
	cached, err := redis.SMembers(ctx, key)
	if err != nil || len(cached) == 0 {
		return viewedIDs
	}

	seen := make(map[uint64]struct{}, len(viewedIDs))
	excluded := make([]uint64, 0, len(viewedIDs)+len(cached))
	for _, id := range viewedIDs {
		seen[id] = struct{}{}
		excluded = append(excluded, id)
	}
	for _, member := range cached {
		id, convErr := strconv.ParseUint(member, 10, 64)
		if convErr != nil {
			continue
		}
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			excluded = append(excluded, id)
		}
	}

	return excluded
}

// viewedPostIDs 提取窗口内浏览过的帖子 ID，去重
func viewedPostIDs(window []*model.Interaction) []uint64 {
	seen := make(map[uint64]struct{}, len(window))
	var ids []uint64
	for _, it := range window {
		if it.Type != consts.InteractionView {
			continue
		}
		if _, ok := seen[it.PostID]; ok {
			continue
		}
		seen[it.PostID] = struct{}{}
		ids = append(ids, it.PostID)
	}
	return ids
}

func postIDs(posts []*model.Post) []uint64 {
	ids := make([]uint64, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	return ids
}

// toPostDTO 将 Model 转换为返回给前端的 DTO
func toPostDTO(post *model.Post) (*dto.PostDTO, error) {
	out := &dto.PostDTO{}
	if err := copier.Copy(out, post); err != nil {
		return nil, err
	}
	out.MediaURL = minio.GetPublicURL(post.MediaKey)
	out.CreatedAt = post.CreatedAt.Format("2006-01-02 15:04:05")
	return out, nil
}

// batchToPostDTO 批量转换辅助
func batchToPostDTO(posts []*model.Post) ([]*dto.PostDTO, error) {
	out := make([]*dto.PostDTO, len(posts))
	for i, post := range posts {
		item, err := toPostDTO(post)
		if err != nil {
			return nil, err
		}
		out[i] = item
	}
	return out, nil
}
