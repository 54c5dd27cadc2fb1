// Package store provides access to the document store holding one
// collection per entity type.
package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrUnavailable is returned by every operation when the store
	// connection was never established.
	ErrUnavailable = errors.New("database not available")
	// ErrInvalidID is returned when an id is not a well-formed object id.
	ErrInvalidID = errors.New("invalid id")
)

// Collection names
const (
	Categories      = "category"
	Products        = "product"
	Reviews         = "review"
	Carts           = "cart"
	Orders          = "order"
	PackagingGuides = "packagingguide"
	Abouts          = "about"
	Notifications   = "notification"
	Users           = "user"
)

// Query selects documents of a collection. All non-empty clauses must hold.
type Query struct {
	// IDs restricts the result to the given document ids.
	IDs []string
	// Equals requires exact equality of top-level string fields.
	Equals map[string]string
	// Match requires a case-insensitive substring match on any of its fields.
	Match *TextMatch
	// Limit caps the number of documents returned; zero means no limit.
	Limit int
}

// TextMatch is a case-insensitive substring search over several fields
type TextMatch struct {
	Fields []string
	Term   string
}

// ByID builds a query for a single document
func ByID(id string) Query {
	return Query{IDs: []string{id}, Limit: 1}
}

// Where builds an equality query on a single field
func Where(field, value string) Query {
	return Query{Equals: map[string]string{field: value}}
}

// Store is the document store contract shared by every backend.
//
// Documents are Go structs tagged for both encoding/json and bson. The id
// is carried in the field tagged `json:"id" bson:"_id"` and is always a
// 24 character hex object id generated by the store.
type Store interface {
	// Driver names the backend (mongo, postgres, memory).
	Driver() string
	// Name is the database name.
	Name() string
	Ping(ctx context.Context) error
	Collections(ctx context.Context) ([]string, error)

	// Insert persists doc and returns its new id.
	Insert(ctx context.Context, collection string, doc any) (string, error)
	// Find decodes matching documents, in insertion order, into out,
	// which must be a pointer to a slice.
	Find(ctx context.Context, collection string, q Query, out any) error
	// Update sets top-level fields on the document with the given id.
	Update(ctx context.Context, collection, id string, fields map[string]any) (bool, error)
	// Increment adds delta to a numeric field of the document with the given id.
	Increment(ctx context.Context, collection, id, field string, delta int) (bool, error)

	Close(ctx context.Context) error
}

// NewID returns a fresh object id in hex form
func NewID() string {
	return primitive.NewObjectID().Hex()
}

// ParseID validates an id and returns its object id form
func ParseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return oid, nil
}

// ValidID reports whether id is a well-formed object id
func ValidID(id string) bool {
	_, err := ParseID(id)
	return err == nil
}

func parseIDs(ids []string) ([]primitive.ObjectID, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := ParseID(id)
		if err != nil {
			return nil, err
		}
		oids = append(oids, oid)
	}
	return oids, nil
}
