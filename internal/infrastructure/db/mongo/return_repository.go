package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kargopanel/mng-bridge/internal/core/domain"
)

const collectionReturns = "returns"

type ReturnRepository struct {
	col *mongo.Collection
}

func NewReturnRepository(db *mongo.Database) *ReturnRepository {
	return &ReturnRepository{col: db.Collection(collectionReturns)}
}

// returnRecord mirrors domain.Return with an ObjectID primary key.
type returnRecord struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty"`
	OrderID    string              `bson:"order_id"`
	CustomerID string              `bson:"customer_id,omitempty"`
	Reason     string              `bson:"reason"`
	Status     domain.ReturnStatus `bson:"status"`
	Shipment   *domain.ShipmentRef `bson:"shipment,omitempty"`
	CreatedAt  time.Time           `bson:"created_at"`
	UpdatedAt  time.Time           `bson:"updated_at"`
}

func (rec returnRecord) toDomain() *domain.Return {
	return &domain.Return{
		ID:         rec.ID.Hex(),
		OrderID:    rec.OrderID,
		CustomerID: rec.CustomerID,
		Reason:     rec.Reason,
		Status:     rec.Status,
		Shipment:   rec.Shipment,
		CreatedAt:  rec.CreatedAt,
		UpdatedAt:  rec.UpdatedAt,
	}
}

func (r *ReturnRepository) Create(ctx context.Context, ret *domain.Return) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rec := returnRecord{
		OrderID:    ret.OrderID,
		CustomerID: ret.CustomerID,
		Reason:     ret.Reason,
		Status:     ret.Status,
		Shipment:   ret.Shipment,
		CreatedAt:  ret.CreatedAt,
		UpdatedAt:  ret.UpdatedAt,
	}
	res, err := r.col.InsertOne(ctx, rec)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		ret.ID = oid.Hex()
	}
	return nil
}

// List returns every return request, newest first.
func (r *ReturnRepository) List(ctx context.Context) ([]*domain.Return, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var records []returnRecord
	if err := cur.All(ctx, &records); err != nil {
		return nil, err
	}

	returns := make([]*domain.Return, len(records))
	for i, rec := range records {
		returns[i] = rec.toDomain()
	}
	return returns, nil
}

func (r *ReturnRepository) FindByID(ctx context.Context, id string) (*domain.Return, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrReturnNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rec returnRecord
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&rec); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrReturnNotFound
		}
		return nil, err
	}
	return rec.toDomain(), nil
}

func (r *ReturnRepository) UpdateStatus(ctx context.Context, id string, status domain.ReturnStatus) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrReturnNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now().UTC()}}
	res, err := r.col.UpdateByID(ctx, oid, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrReturnNotFound
	}
	return nil
}

// AttachShipment records the pickup shipment tracking info on a return.
func (r *ReturnRepository) AttachShipment(ctx context.Context, id string, ref domain.ShipmentRef) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrReturnNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"shipment": ref, "updated_at": time.Now().UTC()}}
	res, err := r.col.UpdateByID(ctx, oid, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrReturnNotFound
	}
	return nil
}
