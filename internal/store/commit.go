package store

import (
	"context"
	"fmt"

	"github.com/grana-dev/grana/internal/model"
)

// TransactionCreator is the persistence collaborator for committing one
// transaction.
type TransactionCreator interface {
	CreateTransaction(ctx context.Context, txn model.CanonicalTransaction) (string, error)
}

// CommitFailure records one rejected transaction.
type CommitFailure struct {
	Description string
	Err         error
}

func (f CommitFailure) Error() string {
	return fmt.Sprintf("committing %q: %v", f.Description, f.Err)
}

func (f CommitFailure) Unwrap() error { return f.Err }

// CommitResult aggregates the outcome of a commit loop.
type CommitResult struct {
	CreatedIDs []string
	Failures   []CommitFailure
}

// AllSucceeded reports whether every transaction was stored.
func (r CommitResult) AllSucceeded() bool { return len(r.Failures) == 0 }

// CommitAll stores the batch one transaction at a time, sequentially. A
// failure does not abort the loop: it is collected and reported in aggregate,
// and already-committed transactions are never undone.
func CommitAll(ctx context.Context, creator TransactionCreator, txns []model.CanonicalTransaction) CommitResult {
	var res CommitResult
	for _, txn := range txns {
		id, err := creator.CreateTransaction(ctx, txn)
		if err != nil {
			res.Failures = append(res.Failures, CommitFailure{Description: txn.Description, Err: err})
			continue
		}
		res.CreatedIDs = append(res.CreatedIDs, id)
	}
	return res
}
