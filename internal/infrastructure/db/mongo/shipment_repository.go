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

const collectionShipments = "shipments"

type ShipmentRepository struct {
	col *mongo.Collection
}

func NewShipmentRepository(db *mongo.Database) *ShipmentRepository {
	return &ShipmentRepository{col: db.Collection(collectionShipments)}
}

// shipmentRecord mirrors domain.Shipment with an ObjectID primary key.
type shipmentRecord struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	OrderID        string             `bson:"order_id"`
	Shop           string             `bson:"shop,omitempty"`
	Courier        string             `bson:"courier"`
	IsReturn       bool               `bson:"is_return,omitempty"`
	TrackingNumber string             `bson:"tracking_number"`
	LabelURL       string             `bson:"label_url"`
	Barcode        string             `bson:"barcode"`
	CityName       string             `bson:"city_name"`
	DistrictName   string             `bson:"district_name"`
	CreatedAt      time.Time          `bson:"created_at"`
}

func newShipmentRecord(s *domain.Shipment) shipmentRecord {
	return shipmentRecord{
		OrderID:        s.OrderID,
		Shop:           s.Shop,
		Courier:        s.Courier,
		IsReturn:       s.IsReturn,
		TrackingNumber: s.TrackingNumber,
		LabelURL:       s.LabelURL,
		Barcode:        s.Barcode,
		CityName:       s.CityName,
		DistrictName:   s.DistrictName,
		CreatedAt:      s.CreatedAt,
	}
}

func (rec shipmentRecord) toDomain() *domain.Shipment {
	return &domain.Shipment{
		ID:             rec.ID.Hex(),
		OrderID:        rec.OrderID,
		Shop:           rec.Shop,
		Courier:        rec.Courier,
		IsReturn:       rec.IsReturn,
		TrackingNumber: rec.TrackingNumber,
		LabelURL:       rec.LabelURL,
		Barcode:        rec.Barcode,
		CityName:       rec.CityName,
		DistrictName:   rec.DistrictName,
		CreatedAt:      rec.CreatedAt,
	}
}

// Create inserts a new shipment record.
func (r *ShipmentRepository) Create(ctx context.Context, s *domain.Shipment) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, newShipmentRecord(s))
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		s.ID = oid.Hex()
	}
	return nil
}

// FindByOrderIDs returns all shipment records for the given order ids,
// newest first.
func (r *ShipmentRepository) FindByOrderIDs(ctx context.Context, ids []string) ([]*domain.Shipment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"order_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var records []shipmentRecord
	if err := cur.All(ctx, &records); err != nil {
		return nil, err
	}

	shipments := make([]*domain.Shipment, len(records))
	for i, rec := range records {
		shipments[i] = rec.toDomain()
	}
	return shipments, nil
}

// FindByOrderID retrieves the shipment record for one order.
func (r *ShipmentRepository) FindByOrderID(ctx context.Context, orderID string) (*domain.Shipment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rec shipmentRecord
	err := r.col.FindOne(ctx, bson.M{"order_id": orderID}).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrShipmentNotFound
		}
		return nil, err
	}
	return rec.toDomain(), nil
}

// EnsureIndexes creates the indexes the shipments collection needs.
func (r *ShipmentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "order_id", Value: 1}}},
		{Keys: bson.D{{Key: "tracking_number", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
