package attendance

import (
	"context"
	"fmt"
	"time"

	"diaconisas/internal/adapters/storage"
	domain "diaconisas/internal/domain/attendance"
	"diaconisas/internal/domain/person"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// recordDoc is the document layout of the attendance collection.
// created_at is an ISO-8601 string so existing collections stay readable.
type recordDoc struct {
	ID         string `bson:"id"`
	Tipo       string `bson:"tipo"`
	PersonID   string `bson:"person_id"`
	PersonName string `bson:"person_name"`
	Fecha      string `bson:"fecha"`
	Presente   bool   `bson:"presente"`
	CreatedAt  string `bson:"created_at"`
}

func (d recordDoc) toDomain() (domain.Record, error) {
	kind, err := person.ParseKind(d.Tipo)
	if err != nil {
		return domain.Record{}, fmt.Errorf("attendance %s: %w", d.ID, err)
	}
	createdAt, err := storage.ParseTime(d.CreatedAt)
	if err != nil {
		return domain.Record{}, fmt.Errorf("attendance %s created_at: %w", d.ID, err)
	}
	return domain.Record{
		ID:         d.ID,
		Kind:       kind,
		PersonID:   d.PersonID,
		PersonName: d.PersonName,
		Date:       d.Fecha,
		Present:    d.Presente,
		CreatedAt:  createdAt,
	}, nil
}

// MongoStore implements Store on a MongoDB collection.
type MongoStore struct {
	coll *mongo.Collection
	now  func() time.Time
}

// NewMongoStore creates a store backed by coll.
func NewMongoStore(coll *mongo.Collection) *MongoStore {
	return &MongoStore{coll: coll, now: time.Now}
}

// EnsureIndexes creates the lookup indexes used by List and Upsert.
// The key index is not unique: legacy collections may hold both friend labels for one
// day, and two concurrent first upserts of one key can each insert a document.
// List and Count collapse such duplicates, so readers always see one record per key and day.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "tipo", Value: 1}, {Key: "person_id", Value: 1}, {Key: "fecha", Value: 1}}},
		{Keys: bson.D{{Key: "fecha", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create attendance indexes: %w", err)
	}
	return nil
}

// Upsert writes r keyed on (kind, person_id, fecha).
// PRE: r has been validated
// POST: Returns the stored record; an existing document keeps its id and created_at
func (s *MongoStore) Upsert(ctx context.Context, r domain.Record) (domain.Record, error) {
	labels := Labels(r.Kind)
	if len(labels) == 0 {
		return domain.Record{}, domain.ErrInvalidKind
	}
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = s.now()
	}

	filter := bson.M{
		"tipo":      bson.M{"$in": labels},
		"person_id": r.PersonID,
		"fecha":     r.Date,
	}
	update := bson.M{
		"$set": bson.M{
			"tipo":        r.Kind.String(),
			"person_name": r.PersonName,
			"presente":    r.Present,
		},
		"$setOnInsert": bson.M{
			"id":         r.ID,
			"created_at": storage.FormatTime(r.CreatedAt),
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var doc recordDoc
	if err := s.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		return domain.Record{}, fmt.Errorf("upsert attendance %s: %w", r.Key(), err)
	}
	return doc.toDomain()
}

// List returns matching records ordered by fecha then creation time.
// POST: at most one record per (kind, person_id, fecha); the latest created_at wins
func (s *MongoStore) List(ctx context.Context, filter Filter) ([]domain.Record, error) {
	opts := options.Find().SetSort(bson.D{{Key: "fecha", Value: 1}, {Key: "created_at", Value: 1}})
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}

	cursor, err := s.coll.Find(ctx, mongoFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("find attendance: %w", err)
	}
	defer cursor.Close(ctx)

	results := make([]domain.Record, 0)
	seen := make(map[dayKey]int)
	for cursor.Next(ctx) {
		var doc recordDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode attendance: %w", err)
		}
		r, err := doc.toDomain()
		if err != nil {
			return nil, err
		}
		k := dayKey{key: r.Key(), date: r.Date}
		if i, ok := seen[k]; ok {
			if !r.CreatedAt.Before(results[i].CreatedAt) {
				results[i] = r
			}
			continue
		}
		seen[k] = len(results)
		results = append(results, r)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return results, nil
}

type dayKey struct {
	key  person.Key
	date string
}

// Count returns the number of matching records, counting duplicates of one key and day once.
func (s *MongoStore) Count(ctx context.Context, filter Filter) (int, error) {
	filter.Limit = 0
	rs, err := s.List(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count attendance: %w", err)
	}
	return len(rs), nil
}

func mongoFilter(filter Filter) bson.M {
	q := bson.M{}

	fecha := bson.M{}
	if filter.Start != "" {
		fecha["$gte"] = filter.Start
	}
	if filter.End != "" {
		fecha["$lte"] = filter.End
	}
	switch {
	case filter.Date != "" && len(fecha) == 0:
		q["fecha"] = filter.Date
	case filter.Date != "":
		fecha["$eq"] = filter.Date
		q["fecha"] = fecha
	case len(fecha) > 0:
		q["fecha"] = fecha
	}

	if labels := Labels(filter.Kind); len(labels) > 0 {
		q["tipo"] = bson.M{"$in": labels}
	}
	if filter.PersonID != "" {
		q["person_id"] = filter.PersonID
	}
	if filter.PresentOnly {
		q["presente"] = true
	}
	return q
}
