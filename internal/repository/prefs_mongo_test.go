package repository

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	. "github.com/smartystreets/goconvey/convey"
	"go.mongodb.org/mongo-driver/bson"

	"pincer/internal/config"
	"pincer/internal/model"
	"pincer/internal/pkg/mongodb"
)

// 需要可用的 MongoDB，通过 PINCER_TEST_MONGO_URI 指定
func TestMongoPrefsRepo(t *testing.T) {
	uri := os.Getenv("PINCER_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("PINCER_TEST_MONGO_URI not set")
	}

	Convey("MongoPrefsRepo", t, func() {
		ctx := context.Background()
		client, err := mongodb.New(ctx, &config.MongoConfig{URI: uri, Database: "pincer_test_" + uuid.NewString()[:8]})
		So(err, ShouldBeNil)
		defer func() {
			_ = client.Database().Drop(ctx)
			_ = client.Close(ctx)
		}()
		repo := NewMongoPrefsRepo(client.Database())

		_, err = repo.Get(ctx)
		So(err, ShouldEqual, ErrPrefsNotFound)

		So(repo.Save(ctx, &model.Preferences{OpenAIAPIKey: "gsk_mongo", TermsAccepted: true, PrivacyAccepted: true}), ShouldBeNil)
		So(repo.Save(ctx, &model.Preferences{OpenAIAPIKey: "gsk_mongo2", TermsAccepted: true, PrivacyAccepted: true}), ShouldBeNil)

		out, err := repo.Get(ctx)
		So(err, ShouldBeNil)
		So(out.APIKey(), ShouldEqual, "gsk_mongo2")
		So(out.UpdatedAt.IsZero(), ShouldBeFalse)

		n, err := client.Database().Collection(PrefsCollection).CountDocuments(ctx, bson.M{})
		So(err, ShouldBeNil)
		So(n, ShouldEqual, 1)
	})
}
