package integration

import (
	"context"
	"fmt"
	"sync"

	"card-casino/internal/core/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// --- In-Memory Account Repo ---

type inMemoryAccountRepo struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account
}

func newInMemoryAccountRepo() *inMemoryAccountRepo {
	return &inMemoryAccountRepo{accounts: make(map[string]*domain.Account)}
}

func (r *inMemoryAccountRepo) Create(ctx context.Context, a *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[a.Username]; ok {
		return fmt.Errorf("username already exists")
	}
	clone := *a
	r.accounts[a.Username] = &clone
	return nil
}

func (r *inMemoryAccountRepo) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.accounts[username]
	if !ok {
		return nil, nil
	}
	clone := *a
	return &clone, nil
}

func (r *inMemoryAccountRepo) GetByUsernameForUpdate(ctx context.Context, tx pgx.Tx, username string) (*domain.Account, error) {
	// The serializing transactor already holds the "row lock".
	return r.GetByUsername(ctx, username)
}

func (r *inMemoryAccountRepo) UpdateLedger(ctx context.Context, tx pgx.Tx, a *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[a.Username]; !ok {
		return fmt.Errorf("account not found")
	}
	clone := *a
	r.accounts[a.Username] = &clone
	return nil
}

// --- Serializing Transactor ---

// serializingTransactor emulates SELECT ... FOR UPDATE with a single
// global mutex: only one ledger transaction runs at a time, which is
// exactly the guarantee the row lock provides per account.
type serializingTransactor struct {
	mu sync.Mutex
}

func newSerializingTransactor() *serializingTransactor {
	return &serializingTransactor{}
}

func (t *serializingTransactor) Begin(ctx context.Context) (pgx.Tx, error) {
	t.mu.Lock()
	return &lockedTx{release: &t.mu}, nil
}

// lockedTx is a pgx.Tx that holds the transactor lock until Commit or
// Rollback, whichever comes first.
type lockedTx struct {
	release *sync.Mutex
	once    sync.Once
}

func (t *lockedTx) done() {
	t.once.Do(t.release.Unlock)
}

func (t *lockedTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *lockedTx) Commit(ctx context.Context) error          { t.done(); return nil }
func (t *lockedTx) Rollback(ctx context.Context) error        { t.done(); return nil }
func (t *lockedTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *lockedTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *lockedTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *lockedTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *lockedTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag(""), nil
}
func (t *lockedTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *lockedTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}
func (t *lockedTx) Conn() *pgx.Conn { return nil }
