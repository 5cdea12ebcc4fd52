package cache

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoDoc is the on-disk shape of a Request in the requests
// collection; Mongo's own ObjectID is not used as the request's public
// ID so that IDs stay the same small monotonic integers across
// backends.
type mongoDoc struct {
	ID        int64     `bson:"_id"`
	Hash      string    `bson:"hash"`
	Content   []byte    `bson:"content,omitempty"`
	Timestamp time.Time `bson:"timestamp"`
	Status    string    `bson:"status"`
	Result    []byte    `bson:"result,omitempty"`
}

// MongoStore is a durable Store backend for multi-process deployments.
type MongoStore struct {
	collection *mongo.Collection
	counters   *mongo.Collection
}

// NewMongoStore connects to db's "requests" collection, creating a
// unique index on hash so concurrent inserts of the same request
// collapse to one document, and returns a ready-to-use MongoStore.
func NewMongoStore(ctx context.Context, db *mongo.Database) (*MongoStore, error) {
	requests := db.Collection("requests")
	_, err := requests.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "hash", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, err
	}
	return &MongoStore{
		collection: requests,
		counters:   db.Collection("request_counters"),
	}, nil
}

func (s *MongoStore) GetByHash(ctx context.Context, hash string) (Request, error) {
	var doc mongoDoc
	err := s.collection.FindOne(ctx, bson.M{"hash": hash}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return Request{}, ErrNotFound
	}
	if err != nil {
		return Request{}, err
	}
	return fromDoc(doc), nil
}

func (s *MongoStore) Insert(ctx context.Context, hash string, content []byte) (Request, error) {
	id, err := s.nextID(ctx)
	if err != nil {
		return Request{}, err
	}
	doc := mongoDoc{
		ID:        id,
		Hash:      hash,
		Content:   content,
		Timestamp: time.Now().UTC(),
		Status:    string(StatusPending),
	}
	if _, err := s.collection.InsertOne(ctx, doc); err != nil {
		return Request{}, err
	}
	return fromDoc(doc), nil
}

func (s *MongoStore) Complete(ctx context.Context, id int64, result []byte) error {
	res, err := s.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": string(StatusCompleted), "result": result}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) List(ctx context.Context) ([]Request, error) {
	cursor, err := s.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []Request
	for cursor.Next(ctx) {
		var doc mongoDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, fromDoc(doc))
	}
	return out, cursor.Err()
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.collection.Database().Client().Disconnect(ctx)
}

// nextID atomically increments and returns the shared request-ID
// counter, emulating an auto-increment primary key; the value is stored
// as the document's _id in place of Mongo's default ObjectID.
func (s *MongoStore) nextID(ctx context.Context) (int64, error) {
	var doc struct {
		Seq int64 `bson:"seq"`
	}
	err := s.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": "request_id"},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return 0, err
	}
	return doc.Seq, nil
}

func fromDoc(doc mongoDoc) Request {
	return Request{
		ID:        doc.ID,
		Hash:      doc.Hash,
		Content:   doc.Content,
		Timestamp: doc.Timestamp,
		Status:    Status(doc.Status),
		Result:    doc.Result,
	}
}

var _ Store = (*MongoStore)(nil)
