package dbbadger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"

	"github.com/NikhilRaikwar/solpacket-daemon/internal/core/domain"
	"github.com/NikhilRaikwar/solpacket-daemon/internal/core/ports"
)

// number of times a conflicting transaction is replayed against fresh state
// before giving up. A settlement that lost the race fails on its first replay
// with ErrAlreadyClaimed, well before the retries run out.
const maxTxRetries = 5

type repoManager struct {
	store *badgerhold.Store

	escrowRepository  domain.EscrowRepository
	vaultRepository   domain.VaultRepository
	accountRepository domain.AccountRepository
}

// NewRepoManager opens (or creates if not exists) the badger store on disk
// and returns the repositories backed by it.
func NewRepoManager(baseDbDir string, logger badger.Logger) (ports.RepoManager, error) {
	store, err := createDb(baseDbDir, logger)
	if err != nil {
		return nil, fmt.Errorf("opening escrow db: %w", err)
	}

	rm := &repoManager{store: store}
	rm.escrowRepository = newEscrowRepositoryImpl(rm)
	rm.vaultRepository = newVaultRepositoryImpl(rm)
	rm.accountRepository = newAccountRepositoryImpl(rm)
	return rm, nil
}

func (d *repoManager) EscrowRepository() domain.EscrowRepository {
	return d.escrowRepository
}

func (d *repoManager) VaultRepository() domain.VaultRepository {
	return d.vaultRepository
}

func (d *repoManager) AccountRepository() domain.AccountRepository {
	return d.accountRepository
}

func (d *repoManager) Close() {
	d.store.Close()
}

// RunTransaction runs the handler within a single badger transaction,
// threaded to the repositories through the context. Badger detects
// conflicting concurrent transactions at commit time; a conflicting handler
// is replayed against the committed state, so a settlement that lost a race
// re-reads the record, observes claimed=true and fails cleanly.
func (d *repoManager) RunTransaction(
	ctx context.Context,
	readOnly bool,
	handler func(ctx context.Context) (interface{}, error),
) (interface{}, error) {
	for i := 0; i < maxTxRetries; i++ {
		tx := d.store.Badger().NewTransaction(!readOnly)
		res, err := handler(context.WithValue(ctx, "tx", tx))
		if err != nil {
			tx.Discard()
			return nil, err
		}
		if readOnly {
			tx.Discard()
			return res, nil
		}

		err = tx.Commit()
		if err == nil {
			return res, nil
		}
		if err != badger.ErrConflict {
			return nil, err
		}
	}
	return nil, badger.ErrConflict
}

// JSONEncode is a custom JSON based encoder for badger.
func JSONEncode(value interface{}) ([]byte, error) {
	var buff bytes.Buffer
	if err := json.NewEncoder(&buff).Encode(value); err != nil {
		return nil, err
	}
	return buff.Bytes(), nil
}

// JSONDecode is a custom JSON based decoder for badger.
func JSONDecode(data []byte, value interface{}) error {
	return json.NewDecoder(bytes.NewReader(data)).Decode(value)
}

func createDb(dbDir string, logger badger.Logger) (*badgerhold.Store, error) {
	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger

	return badgerhold.Open(badgerhold.Options{
		Encoder:          JSONEncode,
		Decoder:          JSONDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
}
