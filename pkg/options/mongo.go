package options

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	mongooptions "go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

// Mongo defaults used when the URI names no database.
const (
	MongoDatabase   = "themefont"
	MongoCollection = "options"
)

type mongoOption struct {
	Name      string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// MongoBackend stores options as documents keyed by name.
type MongoBackend struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// OpenMongo connects to uri and uses the options collection of the URI's
// default database (or "themefont").
func OpenMongo(ctx context.Context, uri string) (*MongoBackend, error) {
	if uri == "" {
		return nil, fmt.Errorf("mongo uri is required")
	}
	clientOpts := mongooptions.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	db := MongoDatabase
	if cs, err := connstring.Parse(uri); err == nil && cs.Database != "" {
		db = cs.Database
	}
	return &MongoBackend{
		client: client,
		coll:   client.Database(db).Collection(MongoCollection),
	}, nil
}

func (b *MongoBackend) Get(ctx context.Context, name string) (string, bool, error) {
	var doc mongoOption
	err := b.coll.FindOne(ctx, bson.M{"_id": name}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get option %s: %w", name, err)
	}
	return doc.Value, true, nil
}

func (b *MongoBackend) Set(ctx context.Context, name, value string) error {
	if err := requireName(name); err != nil {
		return err
	}
	_, err := b.coll.UpdateOne(ctx,
		bson.M{"_id": name},
		bson.M{"$set": bson.M{"value": value, "updated_at": time.Now().UTC()}},
		mongooptions.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("set option %s: %w", name, err)
	}
	return nil
}

func (b *MongoBackend) Delete(ctx context.Context, name string) error {
	if _, err := b.coll.DeleteOne(ctx, bson.M{"_id": name}); err != nil {
		return fmt.Errorf("delete option %s: %w", name, err)
	}
	return nil
}

func (b *MongoBackend) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return b.client.Disconnect(ctx)
}

var _ Backend = (*MongoBackend)(nil)
