package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Connect opens a client against the document store and verifies it with a
// ping. The returned database handle is the single store dependency injected
// into the repositories; there is no package-level state.
func Connect(uri, database string, timeout time.Duration) (*mongo.Database, func(context.Context) error, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	clientOpts := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(25).
		SetMinPoolSize(5).
		SetMaxConnIdleTime(5 * time.Minute)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	if err = client.Ping(ctx, readpref.Primary()); err != nil {
		// Close the handle if ping fails
		if disconnectErr := client.Disconnect(context.Background()); disconnectErr != nil {
			fmt.Printf("failed to disconnect mongo client after ping error: %v\n", disconnectErr)
		}
		return nil, nil, fmt.Errorf("failed to ping mongo within %v: %w", timeout, err)
	}

	return client.Database(database), client.Disconnect, nil
}
