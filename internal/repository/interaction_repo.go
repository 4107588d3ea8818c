package repository

import (
	"Lumina/internal/model"
	"Lumina/internal/pkg/consts"
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type InteractionRepo interface {
	RecentByUser(ctx context.Context, userID uint64, limit int64) ([]*model.Interaction, error)
	UpsertView(ctx context.Context, userID uint64, postID uint64, now time.Time) error
	BulkUpsertViews(ctx context.Context, userID uint64, postIDs []uint64, now time.Time) error
}

type interactionRepoImpl struct {
	col *mongo.Collection
}

func NewInteractionRepo(db *mongo.Database) InteractionRepo {
	return &interactionRepoImpl{
		col: db.Collection("interactions"),
	}
}

// RecentByUser 拉取用户最近的互动窗口，按最后互动时间降序
func (s *interactionRepoImpl) RecentByUser(ctx context.Context, userID uint64, limit int64) ([]*model.Interaction, error) {
	filter := bson.M{"user_id": userID}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "last_interacted_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := s.col.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var interactions []*model.Interaction
	if err := cursor.All(ctx, &interactions); err != nil {
		return nil, err
	}

	return interactions, nil
}

// UpsertView 单条浏览记录的幂等写入
// 已存在则 view_count + 1 并刷新时间，不存在则落一条新记录 (view_count 从 1 开始)
func (s *interactionRepoImpl) UpsertView(ctx context.Context, userID uint64, postID uint64, now time.Time) error {
	filter := bson.M{
		"user_id": userID,
		"post_id": postID,
		"type":    consts.InteractionView,
	}
	update := bson.M{
		"$inc": bson.M{"view_count": 1},
		"$set": bson.M{"last_interacted_at": now},
	}

	_, err := s.col.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// BulkUpsertViews 曝光批量写入，走和单条路径一致的 upsert 语义，避免重复行堆积
func (s *interactionRepoImpl) BulkUpsertViews(ctx context.Context, userID uint64, postIDs []uint64, now time.Time) error {
	if len(postIDs) == 0 {
		return nil
	}

	models := make([]mongo.WriteModel, 0, len(postIDs))
	for _, postID := range postIDs {
		filter := bson.M{
			"user_id": userID,
			"post_id": postID,
			"type":    consts.InteractionView,
		}
		update := bson.M{
			"$inc": bson.M{"view_count": 1},
			"$set": bson.M{"last_interacted_at": now},
		}
		models = append(models, mongo.NewUpdateOneModel().
			SetFilter(filter).
			SetUpdate(update).
			SetUpsert(true))
	}

	_, err := s.col.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false))
	return err
}
