package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
)

// Store is a Firestore-based RepositoryStore
type Store struct {
	client *firestore.Client
}

// New creates a new Firestore-based repository store
func New(ctx context.Context, projectID, databaseID string) (*Store, error) {
	var client *firestore.Client
	var err error

	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}

	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Firestore client",
			goerr.V("projectID", projectID),
			goerr.V("databaseID", databaseID),
		)
	}

	return &Store{
		client: client,
	}, nil
}

// Client returns the underlying client so that the lease can share it.
func (s *Store) Client() *firestore.Client {
	return s.client
}

func (s *Store) Close() error {
	return s.client.Close()
}
