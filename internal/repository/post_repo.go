package repository

import (
	"Lumina/internal/model"
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PostRepo interface {
	GetPostsByIds(ctx context.Context, ids []uint64) ([]*model.Post, error)
	GetPostsExcluding(ctx context.Context, excludedIDs []uint64) ([]*model.Post, error)
}

type postRepoImpl struct {
	col *mongo.Collection
}

func NewPostRepo(db *mongo.Database) PostRepo {
	return &postRepoImpl{
		col: db.Collection("posts"),
	}
}

// GetPostsByIds 批量查询帖子
func (s *postRepoImpl) GetPostsByIds(ctx context.Context, ids []uint64) ([]*model.Post, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	cursor, err := s.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var posts []*model.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}

	return posts, nil
}

// GetPostsExcluding 查询候选帖子，排除给定 ID 集合
// 按 _id 升序返回，保证同分帖子的先后顺序在多次调用间稳定
func (s *postRepoImpl) GetPostsExcluding(ctx context.Context, excludedIDs []uint64) ([]*model.Post, error) {
	filter := bson.M{}
	if len(excludedIDs) > 0 {
		filter["_id"] = bson.M{"$nin": excludedIDs}
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := s.col.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var posts []*model.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}

	return posts, nil
}
