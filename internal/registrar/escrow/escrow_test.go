package escrow

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/suite"

	"namevault/internal/funds"
	"namevault/internal/registrar/namehash"
	id "namevault/pkg/domain"
	dErrors "namevault/pkg/domain-errors"
	"namevault/pkg/platform/reentrancy"
)

const poolAccount = id.Account("escrow-pool")

type EscrowSuite struct {
	suite.Suite
	escrow *Escrow
	teller *Teller
	ledger *funds.Ledger
	guard  *reentrancy.Guard
	ctx    context.Context
}

func (s *EscrowSuite) SetupTest() {
	s.ledger = funds.NewLedger(poolAccount)
	s.guard = reentrancy.NewGuard()
	s.escrow = New(NewInMemoryStore(), s.ledger, s.guard, slog.New(slog.DiscardHandler))
	teller, err := s.escrow.Capability()
	s.Require().NoError(err)
	s.teller = teller
	s.ctx = context.Background()
}

func TestEscrowSuite(t *testing.T) {
	suite.Run(t, new(EscrowSuite))
}

func (s *EscrowSuite) TestCapabilitySingleGrant() {
	_, err := s.escrow.Capability()
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func (s *EscrowSuite) TestDeposit() {
	stakeID := namehash.Hash("alice")

	s.Run("pulls value and records the stake", func() {
		s.ledger.Credit("acct-a", 500)
		s.Require().NoError(s.teller.Deposit(s.ctx, stakeID, 100, "acct-a"))

		amount, err := s.escrow.StakeOf(s.ctx, stakeID)
		s.Require().NoError(err)
		s.Equal(id.Quantity(100), amount)
		s.Equal(id.Quantity(100), s.ledger.BalanceOf(poolAccount))
		s.Equal(id.Quantity(400), s.ledger.BalanceOf("acct-a"))
	})

	s.Run("rejects duplicate stake and refunds the pull", func() {
		err := s.teller.Deposit(s.ctx, stakeID, 100, "acct-a")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeAlreadyExists))
		s.Equal(id.Quantity(400), s.ledger.BalanceOf("acct-a"))
		s.Equal(id.Quantity(100), s.ledger.BalanceOf(poolAccount))
	})

	s.Run("rejects the null payer", func() {
		err := s.teller.Deposit(s.ctx, namehash.Hash("other"), 100, id.ZeroAccount)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeZeroAddress))
	})

	s.Run("fails when the payer cannot cover the pull", func() {
		err := s.teller.Deposit(s.ctx, namehash.Hash("poor"), 10_000, "acct-a")
		s.Require().Error(err)
		_, err = s.escrow.StakeOf(s.ctx, namehash.Hash("poor"))
		s.True(dErrors.HasCode(err, dErrors.CodeNoStake))
	})
}

func (s *EscrowSuite) TestWithdraw() {
	stakeID := namehash.Hash("bob")
	s.ledger.Credit("acct-b", 300)
	s.Require().NoError(s.teller.Deposit(s.ctx, stakeID, 300, "acct-b"))

	s.Run("rejects the null beneficiary", func() {
		err := s.teller.Withdraw(s.ctx, stakeID, id.ZeroAccount)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeZeroAddress))
	})

	s.Run("returns the full stake", func() {
		s.Require().NoError(s.teller.Withdraw(s.ctx, stakeID, "acct-b"))
		s.Equal(id.Quantity(300), s.ledger.BalanceOf("acct-b"))
		s.Equal(id.Quantity(0), s.ledger.BalanceOf(poolAccount))
	})

	s.Run("second withdraw is NoStake", func() {
		err := s.teller.Withdraw(s.ctx, stakeID, "acct-b")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNoStake))
	})
}

func (s *EscrowSuite) TestWithdrawRestoresStakeOnFailedPush() {
	stakeID := namehash.Hash("carol")
	s.ledger.Credit("acct-c", 200)
	s.Require().NoError(s.teller.Deposit(s.ctx, stakeID, 200, "acct-c"))

	s.ledger.SetPushHook(func(context.Context) error {
		return dErrors.New(dErrors.CodeConflict, "beneficiary rejected transfer")
	})

	err := s.teller.Withdraw(s.ctx, stakeID, "acct-c")
	s.Require().Error(err)

	// No net effect: stake still held, pool balance unchanged.
	amount, err := s.escrow.StakeOf(s.ctx, stakeID)
	s.Require().NoError(err)
	s.Equal(id.Quantity(200), amount)
	s.Equal(id.Quantity(200), s.ledger.BalanceOf(poolAccount))
}

func (s *EscrowSuite) TestReentrantWithdrawDuringPush() {
	stakeID := namehash.Hash("dave")
	s.ledger.Credit("acct-d", 150)
	s.Require().NoError(s.teller.Deposit(s.ctx, stakeID, 150, "acct-d"))

	// Counterparty tries to withdraw again from inside the push. The stake
	// record is already gone (effects before interactions) so it finds
	// NoStake, and the shared guard reports an operation in progress.
	var nested error
	s.ledger.SetPushHook(func(ctx context.Context) error {
		s.True(s.guard.InProgress())
		nested = s.teller.Withdraw(ctx, stakeID, "acct-d")
		return nil
	})

	s.Require().NoError(s.teller.Withdraw(s.ctx, stakeID, "acct-d"))
	s.Require().Error(nested)
	s.True(dErrors.HasCode(nested, dErrors.CodeNoStake))

	// Exactly one stake's worth of value left the pool.
	s.Equal(id.Quantity(150), s.ledger.BalanceOf("acct-d"))
	s.Equal(id.Quantity(0), s.ledger.BalanceOf(poolAccount))
}
