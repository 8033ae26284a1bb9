package handler_test

import (
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	jwttoken "namevault/internal/jwt_token"
	"namevault/internal/registrar/handler"
	"namevault/internal/registrar/handler/mocks"
	"namevault/internal/registrar/models"
	"namevault/internal/registrar/namehash"
	"namevault/internal/registrar/service"
	id "namevault/pkg/domain"
	dErrors "namevault/pkg/domain-errors"
	"namevault/pkg/testutil"
)

func newRouter(t *testing.T) (chi.Router, *mocks.MockService, *jwttoken.Service) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockService := mocks.NewMockService(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	jwt := jwttoken.NewService("test-signing-key", "namevault-test", "namevault")

	h := handler.New(mockService, logger, jwt)
	r := chi.NewRouter()
	h.Register(r)
	return r, mockService, jwt
}

func bearer(t *testing.T, jwt *jwttoken.Service, account id.Account) string {
	t.Helper()
	token, err := jwt.GenerateAccessToken(account, time.Minute)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestClaimRequiresAuth(t *testing.T) {
	router, _, _ := newRouter(t)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/names/claim", map[string]string{"name": "alice"})
	rr := testutil.DoRequest(router, req)

	testutil.AssertStatus(t, rr, http.StatusUnauthorized)
}

func TestClaimRejectsGarbageToken(t *testing.T) {
	router, _, _ := newRouter(t)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/names/claim", map[string]string{"name": "alice"})
	req.Header.Set("Authorization", "Bearer not-a-token")
	rr := testutil.DoRequest(router, req)

	testutil.AssertStatus(t, rr, http.StatusUnauthorized)
}

func TestClaimWithBearerToken(t *testing.T) {
	router, mockService, jwt := newRouter(t)
	record := newRecord("alice", "acct-a")
	mockService.EXPECT().
		Claim(gomock.Any(), id.Account("acct-a"), "alice").
		Return(&service.ClaimResult{Record: record, Deposited: 100}, nil)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/names/claim", map[string]string{"name": "alice"})
	req.Header.Set("Authorization", bearer(t, jwt, "acct-a"))
	rr := testutil.DoRequest(router, req)

	testutil.AssertStatus(t, rr, http.StatusCreated)
	resp := testutil.UnmarshalResponse[map[string]any](t, rr)
	assert.Equal(t, float64(100), (*resp)["deposited"])
}

func TestReleaseNotOwnerThroughRouter(t *testing.T) {
	router, mockService, jwt := newRouter(t)
	mockService.EXPECT().
		Release(gomock.Any(), id.Account("acct-b"), "alice").
		Return(nil, dErrors.New(dErrors.CodeNotOwner, "caller does not hold the token"))

	req := testutil.NewJSONRequest(t, http.MethodPost, "/names/release", map[string]string{"name": "alice"})
	req.Header.Set("Authorization", bearer(t, jwt, "acct-b"))
	rr := testutil.DoRequest(router, req)

	testutil.AssertStatusAndError(t, rr, http.StatusForbidden, string(dErrors.CodeNotOwner))
}

func TestAvailabilityIsPublic(t *testing.T) {
	router, mockService, _ := newRouter(t)
	mockService.EXPECT().IsAvailable(gomock.Any(), "alice").Return(false, nil)

	req := testutil.NewRequest(t, http.MethodGet, "/names/alice/availability")
	rr := testutil.DoRequest(router, req)

	testutil.AssertStatus(t, rr, http.StatusOK)
	resp := testutil.UnmarshalResponse[map[string]any](t, rr)
	assert.Equal(t, false, (*resp)["available"])
}

func newRecord(name string, owner id.Account) models.NameRecord {
	now := time.Date(2026, 4, 12, 9, 30, 0, 0, time.UTC)
	return models.NameRecord{
		ID:        namehash.Hash(name),
		Owner:     owner,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
