package lease

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/regmig/pkg/domain/interfaces"
	"github.com/m-mizutani/regmig/pkg/utils/logging"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const collectionLease = "leases"

type leaseDoc struct {
	Token     string    `firestore:"token"`
	ExpiresAt time.Time `firestore:"expires_at"`
}

// Firestore keeps leases as documents of the leases collection and updates them in transactions.
type Firestore struct {
	client *firestore.Client
}

var _ interfaces.ExclusiveLease = (*Firestore)(nil)

func NewFirestore(client *firestore.Client) *Firestore {
	return &Firestore{client: client}
}

func (x *Firestore) TryObtain(ctx context.Context, key string, timeout time.Duration) (string, error) {
	now := logging.CtxTime(ctx)
	ref := x.client.Collection(collectionLease).Doc(key)

	var token string
	err := x.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		token = ""

		snap, err := tx.Get(ref)
		if err != nil && status.Code(err) != codes.NotFound {
			return err
		}
		if err == nil {
			var current leaseDoc
			if err := snap.DataTo(&current); err != nil {
				return goerr.Wrap(err, "failed to decode lease")
			}
			if current.ExpiresAt.After(now) {
				return nil
			}
		}

		token = uuid.NewString()
		return tx.Set(ref, &leaseDoc{Token: token, ExpiresAt: now.Add(timeout)})
	})
	if err != nil {
		return "", goerr.Wrap(err, "failed to obtain lease", goerr.V("key", key))
	}
	return token, nil
}

func (x *Firestore) Cancel(ctx context.Context, key, token string) error {
	ref := x.client.Collection(collectionLease).Doc(key)

	err := x.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if status.Code(err) == codes.NotFound {
			return nil
		}
		if err != nil {
			return err
		}

		var current leaseDoc
		if err := snap.DataTo(&current); err != nil {
			return goerr.Wrap(err, "failed to decode lease")
		}
		if current.Token != token {
			return nil
		}
		return tx.Delete(ref)
	})
	if err != nil {
		return goerr.Wrap(err, "failed to cancel lease", goerr.V("key", key))
	}
	return nil
}
