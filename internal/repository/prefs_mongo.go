package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"pincer/internal/model"
)

// PrefsCollection 偏好设置集合名
const PrefsCollection = "preferences"

// MongoPrefsRepo 基于 MongoDB 的偏好设置仓库
type MongoPrefsRepo struct {
	collection *mongo.Collection
}

// NewMongoPrefsRepo 创建 MongoDB 仓库
func NewMongoPrefsRepo(db *mongo.Database) *MongoPrefsRepo {
	return &MongoPrefsRepo{
		collection: db.Collection(PrefsCollection),
	}
}

// Get 读取偏好设置
func (r *MongoPrefsRepo) Get(ctx context.Context) (*model.Preferences, error) {
	var prefs model.Preferences
	err := r.collection.FindOne(ctx, bson.M{"_id": model.PrefsRecordID}).Decode(&prefs)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrPrefsNotFound
	}
	if err != nil {
		return nil, err
	}
	return &prefs, nil
}

// Save 保存偏好设置（不存在时插入）
func (r *MongoPrefsRepo) Save(ctx context.Context, prefs *model.Preferences) error {
	cp := *prefs
	cp.UpdatedAt = time.Now()

	_, err := r.collection.ReplaceOne(
		ctx,
		bson.M{"_id": model.PrefsRecordID},
		&cp,
		options.Replace().SetUpsert(true),
	)
	return err
}
