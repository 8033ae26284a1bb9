package service

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"namevault/internal/funds"
	"namevault/internal/registrar/escrow"
	"namevault/internal/registrar/events"
	"namevault/internal/registrar/events/mocks"
	"namevault/internal/registrar/store"
	"namevault/internal/registrar/token"
	"namevault/pkg/platform/reentrancy"
)

func newServiceWithPublisher(t *testing.T, pub events.Publisher) *Service {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	ledger := funds.NewLedger(poolAccount)
	ledger.Credit(accountA, 1_000)

	guard := reentrancy.NewGuard()
	issuer := token.NewIssuer(token.NewInMemoryStore())
	esc := escrow.New(escrow.NewInMemoryStore(), ledger, guard, logger)

	svc, err := NewService(
		store.NewInMemoryStore(),
		issuer,
		esc,
		guard,
		100,
		WithLogger(logger),
		WithEvents(pub),
	)
	require.NoError(t, err)
	return svc
}

func TestClaimPublishesClaimedEvent(t *testing.T) {
	ctrl := gomock.NewController(t)
	pub := mocks.NewMockPublisher(ctrl)

	var got events.Event
	pub.EXPECT().
		Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event events.Event) error {
			got = event
			return nil
		})

	svc := newServiceWithPublisher(t, pub)
	_, err := svc.Claim(context.Background(), accountA, "alice")
	require.NoError(t, err)

	require.Equal(t, events.TypeClaimed, got.Type)
	require.Equal(t, "alice", got.Name)
	require.Equal(t, accountA, got.Account)
}

func TestClaimSucceedsWhenPublishFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	pub := mocks.NewMockPublisher(ctrl)
	pub.EXPECT().
		Publish(gomock.Any(), gomock.Any()).
		Return(errors.New("broker unreachable"))

	svc := newServiceWithPublisher(t, pub)

	result, err := svc.Claim(context.Background(), accountA, "alice")
	require.NoError(t, err)
	require.Equal(t, accountA, result.Record.Owner)

	available, err := svc.IsAvailable(context.Background(), "alice")
	require.NoError(t, err)
	require.False(t, available)
}
