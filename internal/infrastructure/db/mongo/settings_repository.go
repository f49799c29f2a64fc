package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kargopanel/mng-bridge/internal/core/domain"
)

const collectionSettings = "shop_settings"

type SettingsRepository struct {
	col *mongo.Collection
}

func NewSettingsRepository(db *mongo.Database) *SettingsRepository {
	return &SettingsRepository{col: db.Collection(collectionSettings)}
}

// Upsert stores the settings document keyed by shop domain, replacing any
// previous version.
func (r *SettingsRepository) Upsert(ctx context.Context, s *domain.ShopSettings) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Replace().SetUpsert(true)
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": s.Shop}, s, opts)
	return err
}

func (r *SettingsRepository) FindByShop(ctx context.Context, shop string) (*domain.ShopSettings, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var s domain.ShopSettings
	err := r.col.FindOne(ctx, bson.M{"_id": shop}).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrShopNotConfigured
		}
		return nil, err
	}
	return &s, nil
}
