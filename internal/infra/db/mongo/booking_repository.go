package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainbooking "staysia/internal/domain/booking"
	domainpricing "staysia/internal/domain/pricing"
	"staysia/internal/domain/properties"
	"staysia/internal/domain/shared/daterange"
	"staysia/internal/domain/shared/money"
)

var ErrConcurrentUpdate = errors.New("mongo: concurrent update detected")

type BookingRepository struct {
	col *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) *BookingRepository {
	col := db.Collection("bookings")
	_, _ = col.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys: bson.D{{Key: "guest_id", Value: 1}, {Key: "range.check_in", Value: -1}},
	})
	return &BookingRepository{col: col}
}

func (r *BookingRepository) ByID(ctx context.Context, id domainbooking.BookingID) (*domainbooking.Booking, error) {
	var doc bookingDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainbooking.ErrBookingNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *BookingRepository) Save(ctx context.Context, b *domainbooking.Booking) error {
	doc := newBookingDocument(b)
	filter := bson.M{"_id": doc.ID, "version": b.Version}
	doc.Version = b.Version + 1
	res, err := r.col.UpdateOne(ctx, filter, bson.M{"$set": doc}, options.Update().SetUpsert(true))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrConcurrentUpdate
		}
		return err
	}
	if res.MatchedCount == 0 && res.UpsertedCount == 0 {
		return ErrConcurrentUpdate
	}
	b.Version = doc.Version
	return nil
}

func (r *BookingRepository) ListByGuest(ctx context.Context, guestID string) ([]*domainbooking.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "range.check_in", Value: -1}, {Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"guest_id": guestID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*domainbooking.Booking
	for cur.Next(ctx) {
		var doc bookingDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cur.Err()
}

type bookingDocument struct {
	ID           string          `bson:"_id"`
	PropertyID   int64           `bson:"property_id"`
	PropertyName string          `bson:"property_name"`
	GuestID      string          `bson:"guest_id"`
	Range        rangeDocument   `bson:"range"`
	Guests       int             `bson:"guests"`
	Nights       []nightDocument `bson:"nights"`
	Total        int64           `bson:"total"`
	Currency     string          `bson:"currency"`
	State        string          `bson:"state"`
	CreatedAt    int64           `bson:"created_at"`
	UpdatedAt    int64           `bson:"updated_at"`
	Version      int64           `bson:"version"`
}

type rangeDocument struct {
	CheckIn  int64 `bson:"check_in"`
	CheckOut int64 `bson:"check_out"`
}

type nightDocument struct {
	Date   string `bson:"date"`
	Price  int64  `bson:"price"`
	Status string `bson:"status"`
}

func newBookingDocument(b *domainbooking.Booking) bookingDocument {
	nights := make([]nightDocument, 0, len(b.Price.Nights))
	for _, n := range b.Price.Nights {
		nights = append(nights, nightDocument{Date: daterange.FormatDay(n.Date), Price: n.Price, Status: string(n.Status)})
	}
	return bookingDocument{
		ID:           string(b.ID),
		PropertyID:   int64(b.PropertyID),
		PropertyName: b.PropertyName,
		GuestID:      b.GuestID,
		Range:        rangeDocument{CheckIn: b.Range.CheckIn.UnixMilli(), CheckOut: b.Range.CheckOut.UnixMilli()},
		Guests:       b.Guests,
		Nights:       nights,
		Total:        b.Price.Total.Amount,
		Currency:     b.Price.Total.Currency,
		State:        string(b.State),
		CreatedAt:    b.CreatedAt.UnixMilli(),
		UpdatedAt:    b.UpdatedAt.UnixMilli(),
		Version:      b.Version,
	}
}

func (d bookingDocument) toAggregate() *domainbooking.Booking {
	nights := make([]domainpricing.Night, 0, len(d.Nights))
	for _, n := range d.Nights {
		day, err := daterange.ParseDay(n.Date)
		if err != nil {
			continue
		}
		nights = append(nights, domainpricing.Night{Date: day, Price: n.Price, Status: domainpricing.Status(n.Status)})
	}
	currency := d.Currency
	if currency == "" {
		currency = money.BaseCurrency
	}
	return &domainbooking.Booking{
		ID:           domainbooking.BookingID(d.ID),
		PropertyID:   properties.PropertyID(d.PropertyID),
		PropertyName: d.PropertyName,
		GuestID:      d.GuestID,
		Range:        daterange.DateRange{CheckIn: timestampToTime(d.Range.CheckIn), CheckOut: timestampToTime(d.Range.CheckOut)},
		Guests:       d.Guests,
		Price:        domainpricing.PriceBreakdown{Nights: nights, Total: money.Money{Amount: d.Total, Currency: currency}},
		State:        domainbooking.BookingState(d.State),
		CreatedAt:    timestampToTime(d.CreatedAt),
		UpdatedAt:    timestampToTime(d.UpdatedAt),
		Version:      d.Version,
	}
}

func timestampToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
