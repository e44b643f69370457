package service

import (
	"context"
	"errors"
	"testing"

	"card-casino/internal/core/domain"
	"card-casino/internal/core/ports/mocks"
	"card-casino/pkg/apperror"
	"card-casino/pkg/logger"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// mockTx implements pgx.Tx for testing
type mockTx struct{ pgx.Tx }

func (m *mockTx) Rollback(_ context.Context) error { return nil }
func (m *mockTx) Commit(_ context.Context) error   { return nil }

const testMaxPayout = 2

type ledgerDeps struct {
	svc         *LedgerServiceImpl
	accountRepo *mocks.MockAccountRepository
	transactor  *mocks.MockDBTransactor
	ctrl        *gomock.Controller
}

func setupLedgerService(t *testing.T) ledgerDeps {
	ctrl := gomock.NewController(t)
	accountRepo := mocks.NewMockAccountRepository(ctrl)
	transactor := mocks.NewMockDBTransactor(ctrl)

	svc := NewLedgerService(accountRepo, transactor, testMaxPayout, logger.New("error", false))
	return ledgerDeps{svc: svc, accountRepo: accountRepo, transactor: transactor, ctrl: ctrl}
}

func testAccount(credits int64) *domain.Account {
	return &domain.Account{Username: "alice", Credits: credits}
}

func TestLedgerService_ApplyGameResult_Win(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	tx := &mockTx{}
	account := testAccount(1000)

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.accountRepo.EXPECT().GetByUsernameForUpdate(ctx, tx, "alice").Return(account, nil)
	d.accountRepo.EXPECT().UpdateLedger(ctx, tx, account).DoAndReturn(
		func(_ context.Context, _ pgx.Tx, a *domain.Account) error {
			assert.Equal(t, int64(1100), a.Credits)
			assert.Equal(t, int64(200), a.TotalWon)
			assert.Equal(t, int64(100), a.TotalLost)
			assert.Equal(t, int64(100), a.NetEarnings)
			return nil
		})

	credits, err := d.svc.ApplyGameResult(ctx, "alice", 100, 200)
	require.NoError(t, err)
	assert.Equal(t, int64(1100), credits)
}

func TestLedgerService_ApplyGameResult_Loss(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	tx := &mockTx{}
	account := testAccount(1000)

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.accountRepo.EXPECT().GetByUsernameForUpdate(ctx, tx, "alice").Return(account, nil)
	d.accountRepo.EXPECT().UpdateLedger(ctx, tx, account).Return(nil)

	credits, err := d.svc.ApplyGameResult(ctx, "alice", 100, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(900), credits)
}

func TestLedgerService_ApplyGameResult_PayoutLimit(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	// win of 201 on a bet of 100 exceeds the 2x cap; no transaction
	// is even started.
	credits, err := d.svc.ApplyGameResult(context.Background(), "alice", 100, 201)
	assert.Zero(t, credits)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "LED_004", appErr.Code)
}

func TestLedgerService_ApplyGameResult_InvalidAmounts(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	tests := []struct {
		name string
		bet  int64
		win  int64
	}{
		{"zero bet", 0, 0},
		{"negative bet", -50, 0},
		{"negative win", 100, -10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := d.svc.ApplyGameResult(context.Background(), "alice", tt.bet, tt.win)

			var appErr *apperror.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, "LED_003", appErr.Code)
		})
	}
}

func TestLedgerService_ApplyGameResult_AccountMissing(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	tx := &mockTx{}

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.accountRepo.EXPECT().GetByUsernameForUpdate(ctx, tx, "alice").Return(nil, nil)

	_, err := d.svc.ApplyGameResult(ctx, "alice", 100, 0)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "LED_001", appErr.Code)
}

func TestLedgerService_ApplyGameResult_BeginFails(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.transactor.EXPECT().Begin(ctx).Return(nil, errors.New("pool exhausted"))

	_, err := d.svc.ApplyGameResult(ctx, "alice", 100, 0)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "SYS_001", appErr.Code)
}

func TestLedgerService_AddCredits(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	tx := &mockTx{}
	account := testAccount(100)

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.accountRepo.EXPECT().GetByUsernameForUpdate(ctx, tx, "alice").Return(account, nil)
	d.accountRepo.EXPECT().UpdateLedger(ctx, tx, account).DoAndReturn(
		func(_ context.Context, _ pgx.Tx, a *domain.Account) error {
			// purchases do not touch the win/loss totals
			assert.Zero(t, a.TotalWon)
			assert.Zero(t, a.NetEarnings)
			return nil
		})

	credits, err := d.svc.AddCredits(ctx, "alice", 500)
	require.NoError(t, err)
	assert.Equal(t, int64(600), credits)
}

func TestLedgerService_AddCredits_InvalidAmount(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	_, err := d.svc.AddCredits(context.Background(), "alice", 0)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "LED_003", appErr.Code)
}

func TestLedgerService_Withdraw_Success(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	tx := &mockTx{}
	account := testAccount(1100)

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.accountRepo.EXPECT().GetByUsernameForUpdate(ctx, tx, "alice").Return(account, nil)
	d.accountRepo.EXPECT().UpdateLedger(ctx, tx, account).DoAndReturn(
		func(_ context.Context, _ pgx.Tx, a *domain.Account) error {
			assert.Equal(t, int64(1100), a.TotalWithdrawn)
			return nil
		})

	credits, err := d.svc.Withdraw(ctx, "alice", 1100)
	require.NoError(t, err)
	assert.Zero(t, credits)
}

func TestLedgerService_Withdraw_InsufficientFunds(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	tx := &mockTx{}
	account := testAccount(0)

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.accountRepo.EXPECT().GetByUsernameForUpdate(ctx, tx, "alice").Return(account, nil)
	// UpdateLedger must not be called: the rejected withdrawal leaves
	// the row untouched.

	credits, err := d.svc.Withdraw(ctx, "alice", 1)
	assert.Zero(t, credits)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "LED_002", appErr.Code)
	assert.Zero(t, account.TotalWithdrawn)
}

func TestLedgerService_GetStats(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	account := &domain.Account{
		Username:       "alice",
		Credits:        1100,
		TotalWon:       200,
		TotalLost:      100,
		NetEarnings:    100,
		TotalWithdrawn: 50,
	}
	d.accountRepo.EXPECT().GetByUsername(ctx, "alice").Return(account, nil)

	stats, err := d.svc.GetStats(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1100), stats.Credits)
	assert.Equal(t, int64(100), stats.NetEarnings)
	assert.Equal(t, int64(50), stats.TotalWithdrawn)
}

func TestLedgerService_GetStats_Unknown(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.accountRepo.EXPECT().GetByUsername(ctx, "ghost").Return(nil, nil)

	stats, err := d.svc.GetStats(ctx, "ghost")
	assert.Nil(t, stats)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "LED_001", appErr.Code)
}
