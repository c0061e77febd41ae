package uow

import "context"

// AfterCommit is a function that runs after a successful transaction commit.
// Cache invalidation and pub/sub notifications belong here, never inside the
// transaction itself.
type AfterCommit func(ctx context.Context)

// Tx is the transactional slice of a repository: fn runs inside one
// transaction carried on the context it receives.
type Tx interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// UoW represents a unit of work over any transactional repository.
type UoW struct {
	tx Tx
}

func New(tx Tx) *UoW {
	return &UoW{tx: tx}
}

// Do runs fn inside a transaction. After a successful commit it executes all
// registered after-commit hooks in order.
func (u *UoW) Do(
	ctx context.Context,
	fn func(ctx context.Context, after func(AfterCommit)) error,
) error {
	var hooks []AfterCommit

	err := u.tx.InTx(ctx, func(ctx context.Context) error {
		return fn(ctx, func(h AfterCommit) {
			hooks = append(hooks, h)
		})
	})
	if err != nil {
		return err
	}

	for _, h := range hooks {
		h(ctx)
	}

	return nil
}
