package firestore

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/firestore/apiv1/firestorepb"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/regmig/pkg/domain/model"
	"github.com/m-mizutani/regmig/pkg/domain/types"
	"github.com/m-mizutani/regmig/pkg/repository"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	collectionRepository = "repositories"
	collectionPath       = "repository_paths"
	collectionBatch      = "batch_imports"
	collectionCounter    = "counters"
	counterRepository    = "repositories"
	pageSize             = 500
)

// repositoryDoc adds fields that only exist to make queries possible.
type repositoryDoc struct {
	model.Repository
	LastStepDoneAt time.Time `firestore:"last_step_done_at"`
}

func newRepositoryDoc(repo *model.Repository) *repositoryDoc {
	return &repositoryDoc{
		Repository:     *repo,
		LastStepDoneAt: repo.LastImportStepDoneAt(),
	}
}

type counterDoc struct {
	LastID int64 `firestore:"last_id"`
}

type pathDoc struct {
	ID types.RepositoryID `firestore:"id"`
}

// ToPathDocID converts a repository path to a Firestore-safe document ID
// Replaces "/" with ":" since registry paths can not contain ":"
func ToPathDocID(path types.RepositoryPath) (string, error) {
	if path == "" {
		return "", goerr.Wrap(repository.ErrInvalidInput, "repository path is empty")
	}
	if strings.Contains(string(path), ":") {
		return "", goerr.Wrap(repository.ErrInvalidInput, "repository path contains invalid character ':'",
			goerr.V("path", path),
		)
	}
	return strings.ReplaceAll(string(path), "/", ":"), nil
}

func repositoryDocID(id types.RepositoryID) string {
	return strconv.FormatInt(int64(id), 10)
}

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

func decodeRepository(snap *firestore.DocumentSnapshot) (*model.Repository, error) {
	var doc repositoryDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode repository", goerr.V("docID", snap.Ref.ID))
	}
	return &doc.Repository, nil
}

// Repository operations

func (s *Store) CreateRepository(ctx context.Context, repo *model.Repository) error {
	pathID, err := ToPathDocID(repo.Path)
	if err != nil {
		return err
	}
	if repo.MigrationState == "" {
		repo.MigrationState = types.MigrationStateDefault
	}

	pathRef := s.client.Collection(collectionPath).Doc(pathID)
	counterRef := s.client.Collection(collectionCounter).Doc(counterRepository)

	var assigned types.RepositoryID
	err = s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(pathRef); err == nil {
			return goerr.Wrap(repository.ErrAlreadyExists, "repository path already exists", goerr.V("path", repo.Path))
		} else if !isNotFound(err) {
			return goerr.Wrap(err, "failed to get repository path")
		}

		var counter counterDoc
		snap, err := tx.Get(counterRef)
		if err == nil {
			if err := snap.DataTo(&counter); err != nil {
				return goerr.Wrap(err, "failed to decode counter")
			}
		} else if !isNotFound(err) {
			return goerr.Wrap(err, "failed to get counter")
		}

		assigned = repo.ID
		if assigned == 0 {
			assigned = types.RepositoryID(counter.LastID + 1)
		} else if _, err := tx.Get(s.client.Collection(collectionRepository).Doc(repositoryDocID(assigned))); err == nil {
			return goerr.Wrap(repository.ErrAlreadyExists, "repository already exists", goerr.V("id", assigned))
		} else if !isNotFound(err) {
			return goerr.Wrap(err, "failed to get repository")
		}

		if int64(assigned) > counter.LastID {
			if err := tx.Set(counterRef, &counterDoc{LastID: int64(assigned)}); err != nil {
				return err
			}
		}

		created := repo.Copy()
		created.ID = assigned
		if err := tx.Create(pathRef, &pathDoc{ID: assigned}); err != nil {
			return err
		}
		return tx.Create(s.client.Collection(collectionRepository).Doc(repositoryDocID(assigned)), newRepositoryDoc(created))
	})
	if err != nil {
		return goerr.Wrap(err, "failed to create repository", goerr.V("path", repo.Path))
	}

	repo.ID = assigned
	return nil
}

func (s *Store) GetRepository(ctx context.Context, id types.RepositoryID) (*model.Repository, error) {
	snap, err := s.client.Collection(collectionRepository).Doc(repositoryDocID(id)).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, goerr.Wrap(repository.ErrNotFound, "repository not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get repository", goerr.V("id", id))
	}
	return decodeRepository(snap)
}

func (s *Store) GetRepositoryByPath(ctx context.Context, path types.RepositoryPath) (*model.Repository, error) {
	pathID, err := ToPathDocID(path)
	if err != nil {
		return nil, err
	}

	snap, err := s.client.Collection(collectionPath).Doc(pathID).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, goerr.Wrap(repository.ErrNotFound, "repository not found", goerr.V("path", path))
		}
		return nil, goerr.Wrap(err, "failed to get repository path", goerr.V("path", path))
	}

	var p pathDoc
	if err := snap.DataTo(&p); err != nil {
		return nil, goerr.Wrap(err, "failed to decode repository path", goerr.V("path", path))
	}
	return s.GetRepository(ctx, p.ID)
}

func (s *Store) UpdateRepository(ctx context.Context, repo *model.Repository) error {
	ref := s.client.Collection(collectionRepository).Doc(repositoryDocID(repo.ID))

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			if isNotFound(err) {
				return goerr.Wrap(repository.ErrNotFound, "repository not found", goerr.V("id", repo.ID))
			}
			return err
		}

		current, err := decodeRepository(snap)
		if err != nil {
			return err
		}
		if current.Path != repo.Path {
			return goerr.Wrap(repository.ErrInvalidInput, "repository path can not be changed",
				goerr.V("id", repo.ID),
				goerr.V("path", repo.Path),
			)
		}

		return tx.Set(ref, newRepositoryDoc(repo))
	})
	if err != nil {
		return goerr.Wrap(err, "failed to update repository", goerr.V("id", repo.ID))
	}
	return nil
}

// Migration queries

func collectRepositories(iter *firestore.DocumentIterator, limit int, match func(*model.Repository) bool) ([]*model.Repository, error) {
	defer iter.Stop()

	var repos []*model.Repository
	for limit <= 0 || len(repos) < limit {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate repositories")
		}

		repo, err := decodeRepository(snap)
		if err != nil {
			return nil, err
		}
		if match == nil || match(repo) {
			repos = append(repos, repo)
		}
	}
	return repos, nil
}

func (s *Store) stateQuery(state types.MigrationState) firestore.Query {
	return s.client.Collection(collectionRepository).
		Where("migration_state", "==", state.String()).
		OrderBy("id", firestore.Asc)
}

// ListReadyForImport filters creation time on the client. Firestore would otherwise require the
// first ordering to be on created_at.
func (s *Store) ListReadyForImport(ctx context.Context, createdBefore time.Time, limit int) ([]*model.Repository, error) {
	iter := s.stateQuery(types.MigrationStateDefault).Documents(ctx)
	return collectRepositories(iter, limit, func(repo *model.Repository) bool {
		return createdBefore.IsZero() || repo.CreatedAt.Before(createdBefore)
	})
}

func (s *Store) ListByMigrationState(ctx context.Context, state types.MigrationState, limit int) ([]*model.Repository, error) {
	query := s.stateQuery(state)
	if limit > 0 {
		query = query.Limit(limit)
	}
	return collectRepositories(query.Documents(ctx), limit, nil)
}

func (s *Store) ListStaleMigrations(ctx context.Context, before time.Time, limit int) ([]*model.Repository, error) {
	stages := []struct {
		state types.MigrationState
		field string
	}{
		{types.MigrationStatePreImporting, "migration_pre_import_started_at"},
		{types.MigrationStatePreImportDone, "migration_pre_import_done_at"},
		{types.MigrationStateImporting, "migration_import_started_at"},
	}

	var repos []*model.Repository
	for _, stage := range stages {
		query := s.client.Collection(collectionRepository).
			Where("migration_state", "==", stage.state.String()).
			Where(stage.field, "<", before)
		found, err := collectRepositories(query.Documents(ctx), 0, nil)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list stale migrations", goerr.V("state", stage.state))
		}
		repos = append(repos, found...)
	}

	sort.Slice(repos, func(i, j int) bool {
		return repos[i].ID < repos[j].ID
	})
	if limit > 0 && len(repos) > limit {
		repos = repos[:limit]
	}
	return repos, nil
}

func (s *Store) GetLastStepCompleted(ctx context.Context) (*model.Repository, error) {
	query := s.client.Collection(collectionRepository).
		Where("last_step_done_at", ">", time.Time{}).
		OrderBy("last_step_done_at", firestore.Desc).
		Limit(1)

	repos, err := collectRepositories(query.Documents(ctx), 1, nil)
	if err != nil {
		return nil, err
	}
	if len(repos) == 0 {
		return nil, nil
	}
	return repos[0], nil
}

func count(ctx context.Context, query firestore.Query) (int64, error) {
	result, err := query.NewAggregationQuery().WithCount("all").Get(ctx)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to run count query")
	}

	v, ok := result["all"].(*firestorepb.Value)
	if !ok {
		return 0, goerr.New("unexpected count result", goerr.V("result", result))
	}
	return v.GetIntegerValue(), nil
}

func (s *Store) CountByMigrationStates(ctx context.Context, states []types.MigrationState) (int64, error) {
	if len(states) == 0 {
		return 0, nil
	}

	names := make([]string, len(states))
	for i, st := range states {
		names[i] = st.String()
	}
	query := s.client.Collection(collectionRepository).Where("migration_state", "in", names)
	return count(ctx, query)
}

// nextID returns the smallest repository id at or above from, or 0 if there is none.
func (s *Store) nextID(ctx context.Context, from int64) (int64, error) {
	repos, err := collectRepositories(
		s.client.Collection(collectionRepository).Where("id", ">=", from).OrderBy("id", firestore.Asc).Limit(1).Documents(ctx), 1, nil)
	if err != nil {
		return 0, err
	}
	if len(repos) == 0 {
		return 0, nil
	}
	return int64(repos[0].ID), nil
}

// BatchCountByMigrationState counts in id ranges of batchSize. Each range starts at the next
// existing id so gaps cost one lookup.
func (s *Store) BatchCountByMigrationState(ctx context.Context, state types.MigrationState, batchSize int) (int64, error) {
	if batchSize <= 0 {
		return 0, goerr.Wrap(repository.ErrInvalidInput, "batch size must be positive",
			goerr.V("batchSize", batchSize),
		)
	}

	var total int64
	var from int64
	for {
		start, err := s.nextID(ctx, from)
		if err != nil {
			return 0, err
		}
		if start == 0 {
			return total, nil
		}

		end := start + int64(batchSize)
		query := s.client.Collection(collectionRepository).
			Where("migration_state", "==", state.String()).
			Where("id", ">=", start).
			Where("id", "<", end)
		n, err := count(ctx, query)
		if err != nil {
			return 0, goerr.Wrap(err, "failed to count batch", goerr.V("state", state), goerr.V("start", start))
		}
		total += n
		from = end
	}
}
