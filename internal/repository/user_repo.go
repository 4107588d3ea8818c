package repository

import (
	"Lumina/internal/model"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type UserRepo interface {
	GetUser(ctx context.Context, userID uint64) (*model.User, error)
}

type userRepoImpl struct {
	col *mongo.Collection
}

func NewUserRepo(db *mongo.Database) UserRepo {
	return &userRepoImpl{
		col: db.Collection("users"),
	}
}

// GetUser 根据用户 ID 查询用户，不存在时返回 nil
func (s *userRepoImpl) GetUser(ctx context.Context, userID uint64) (*model.User, error) {
	var user model.User
	err := s.col.FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}
