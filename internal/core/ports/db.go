package ports

import (
	"context"

	"github.com/NikhilRaikwar/solpacket-daemon/internal/core/domain"
)

// RepoManager gives access to all the domain repositories and to the
// transactional boundary they share.
type RepoManager interface {
	EscrowRepository() domain.EscrowRepository
	VaultRepository() domain.VaultRepository
	AccountRepository() domain.AccountRepository

	Close()

	// RunTransaction runs the given handler within a single storage
	// transaction: either every read and write it performs is committed, or
	// none is. Repositories called with the handler's context take part in
	// the same transaction. Implementations must serialize conflicting
	// transactions touching the same records, so that a settlement committed
	// first makes a concurrent one observe the updated state.
	RunTransaction(
		ctx context.Context,
		readOnly bool,
		handler func(ctx context.Context) (interface{}, error),
	) (interface{}, error)
}

// Transaction defines the methods to commit or discard a database transaction.
type Transaction interface {
	Commit() error
	Discard()
}
