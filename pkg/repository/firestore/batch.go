package firestore

import (
	"context"
	"sort"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/regmig/pkg/domain/model"
	"github.com/m-mizutani/regmig/pkg/domain/types"
	"github.com/m-mizutani/regmig/pkg/repository"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *Store) CreateBatchImport(ctx context.Context, batch *model.BatchImport) error {
	if batch.ID == "" {
		return goerr.Wrap(repository.ErrInvalidInput, "batch import ID is empty")
	}

	_, err := s.client.Collection(collectionBatch).Doc(batch.ID.String()).Create(ctx, batch)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return goerr.Wrap(repository.ErrAlreadyExists, "batch import already exists", goerr.V("id", batch.ID))
		}
		return goerr.Wrap(err, "failed to create batch import", goerr.V("id", batch.ID))
	}
	return nil
}

func (s *Store) GetBatchImport(ctx context.Context, id types.BatchImportID) (*model.BatchImport, error) {
	snap, err := s.client.Collection(collectionBatch).Doc(id.String()).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, goerr.Wrap(repository.ErrNotFound, "batch import not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get batch import", goerr.V("id", id))
	}

	var batch model.BatchImport
	if err := snap.DataTo(&batch); err != nil {
		return nil, goerr.Wrap(err, "failed to decode batch import", goerr.V("id", id))
	}
	return &batch, nil
}

func (s *Store) UpdateBatchImport(ctx context.Context, batch *model.BatchImport) error {
	ref := s.client.Collection(collectionBatch).Doc(batch.ID.String())

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(ref); err != nil {
			if isNotFound(err) {
				return goerr.Wrap(repository.ErrNotFound, "batch import not found", goerr.V("id", batch.ID))
			}
			return err
		}
		return tx.Set(ref, batch)
	})
	if err != nil {
		return goerr.Wrap(err, "failed to update batch import", goerr.V("id", batch.ID))
	}
	return nil
}

func (s *Store) ListEnqueuedBatchImports(ctx context.Context) ([]*model.BatchImport, error) {
	iter := s.client.Collection(collectionBatch).
		Where("status", "in", []string{string(types.BatchStatusScheduled), string(types.BatchStatusStarted)}).
		Documents(ctx)
	defer iter.Stop()

	var batches []*model.BatchImport
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate batch imports")
		}

		var batch model.BatchImport
		if err := snap.DataTo(&batch); err != nil {
			return nil, goerr.Wrap(err, "failed to decode batch import", goerr.V("docID", snap.Ref.ID))
		}
		batches = append(batches, &batch)
	}

	sort.Slice(batches, func(i, j int) bool {
		return batches[i].CreatedAt.Before(batches[j].CreatedAt)
	})
	return batches, nil
}
