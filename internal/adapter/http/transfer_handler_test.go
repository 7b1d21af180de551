package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	beneficiarydomain "corebanking-review/internal/domain/beneficiary"
	"corebanking-review/internal/domain/ledger"
	tierdomain "corebanking-review/internal/domain/tier"
	"corebanking-review/internal/testutil/beneficiarymock"
	"corebanking-review/internal/testutil/ledgermock"
	"corebanking-review/internal/testutil/tiermock"
	"corebanking-review/internal/usecase/limits"
	"corebanking-review/pkg/clock"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

func newTransferHandler(beneficiaries *beneficiarymock.Repo, tiers *tiermock.Resolver, ledgerRepo *ledgermock.Repo, cfg limits.GuardConfig) *TransferHandler {
	if beneficiaries == nil {
		beneficiaries = &beneficiarymock.Repo{}
	}
	if tiers == nil {
		tiers = &tiermock.Resolver{}
	}
	if ledgerRepo == nil {
		ledgerRepo = &ledgermock.Repo{}
	}
	fixed := clock.Fixed{Date: time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)}
	g := limits.NewGuard(beneficiaries, tiers, limits.NewAggregator(ledgerRepo), fixed, cfg)
	return NewTransferHandler(g)
}

func transferBody() map[string]any {
	return map[string]any{
		"user_id":                1,
		"source_account_id":      2,
		"destination_account_id": 3,
		"account_type":           "savings",
		"amount":                 "250.00",
		"transaction_date":       "2024-06-15",
	}
}

func TestCheckTransfer_Accepted(t *testing.T) {
	e := newEchoWithValidator()
	h := newTransferHandler(nil, nil, nil, limits.GuardConfig{})

	req := httptest.NewRequest(stdhttp.MethodPost, "/transfers/check", mustJSON(transferBody()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CheckTransfer(c); err != nil {
		t.Fatalf("CheckTransfer error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
}

func TestCheckTransfer_ValidationError(t *testing.T) {
	e := newEchoWithValidator()
	h := newTransferHandler(nil, nil, nil, limits.GuardConfig{})

	body := transferBody()
	body["amount"] = "not-a-number"
	body["account_type"] = "crypto"
	body["transaction_date"] = "15/06/2024"

	req := httptest.NewRequest(stdhttp.MethodPost, "/transfers/check", mustJSON(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CheckTransfer(c); err != nil {
		t.Fatalf("CheckTransfer error: %v", err)
	}
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	var er ErrorResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &er)
	if !containsFieldMsg(er.Details, "Amount", "decimal") {
		t.Fatalf("missing Amount detail: %+v", er.Details)
	}
	if !containsFieldMsg(er.Details, "AccountType", "one of") {
		t.Fatalf("missing AccountType detail: %+v", er.Details)
	}
}

func TestCheckTransfer_BeneficiaryLimitExceeded(t *testing.T) {
	e := newEchoWithValidator()

	beneficiaries := &beneficiarymock.Repo{
		GetFn: func(ctx context.Context, userID, accountID uint64, accountType ledger.AccountType) (*beneficiarydomain.Beneficiary, error) {
			limit := decimal.NewFromInt(100)
			return &beneficiarydomain.Beneficiary{TransferLimit: &limit}, nil
		},
	}
	h := newTransferHandler(beneficiaries, nil, nil, limits.GuardConfig{})

	req := httptest.NewRequest(stdhttp.MethodPost, "/transfers/check", mustJSON(transferBody()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CheckTransfer(c); err != nil {
		t.Fatalf("CheckTransfer error: %v", err)
	}
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422: %s", rec.Code, rec.Body.String())
	}
}

func TestCheckTransfer_DailyAggregateExceeded(t *testing.T) {
	e := newEchoWithValidator()

	ledgerRepo := &ledgermock.Repo{
		TotalAmountFn: func(ctx context.Context, accountID uint64, accountType ledger.AccountType, from, to time.Time) (decimal.Decimal, error) {
			return decimal.NewFromInt(900), nil
		},
	}
	cfg := limits.GuardConfig{DailyTPTLimitEnabled: true, DailyTPTLimit: decimal.NewFromInt(1000)}
	h := newTransferHandler(nil, nil, ledgerRepo, cfg)

	req := httptest.NewRequest(stdhttp.MethodPost, "/transfers/check", mustJSON(transferBody()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CheckTransfer(c); err != nil {
		t.Fatalf("CheckTransfer error: %v", err)
	}
	// 900 + 250 over the 1000 cap
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422: %s", rec.Code, rec.Body.String())
	}
}

func TestCheckTransfer_TierWithdrawalChecked(t *testing.T) {
	e := newEchoWithValidator()

	limit := decimal.NewFromInt(200)
	tiers := &tiermock.Resolver{
		ResolveFn: func(ctx context.Context, clientTypeID uint64, activationChannelID *uint64) (*tierdomain.Tier, error) {
			return &tierdomain.Tier{DailyWithdrawalLimit: &limit}, nil
		},
	}
	h := newTransferHandler(nil, tiers, nil, limits.GuardConfig{})

	body := transferBody()
	body["client_type_id"] = 5

	req := httptest.NewRequest(stdhttp.MethodPost, "/transfers/check", mustJSON(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CheckTransfer(c); err != nil {
		t.Fatalf("CheckTransfer error: %v", err)
	}
	// 250 against a 200 daily withdrawal limit
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422: %s", rec.Code, rec.Body.String())
	}
}

func TestCheckDeposit_Accepted(t *testing.T) {
	e := newEchoWithValidator()

	tiers := &tiermock.Resolver{
		ResolveFn: func(ctx context.Context, clientTypeID uint64, activationChannelID *uint64) (*tierdomain.Tier, error) {
			return &tierdomain.Tier{}, nil
		},
	}
	h := newTransferHandler(nil, tiers, nil, limits.GuardConfig{})

	req := httptest.NewRequest(stdhttp.MethodPost, "/deposits/check", mustJSON(map[string]any{
		"account_id":     1,
		"account_type":   "savings",
		"amount":         "5000",
		"client_type_id": 5,
	}))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CheckDeposit(c); err != nil {
		t.Fatalf("CheckDeposit error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
}

func TestCheckDeposit_SingleDepositExceeded(t *testing.T) {
	e := newEchoWithValidator()

	limit := decimal.NewFromInt(1000)
	tiers := &tiermock.Resolver{
		ResolveFn: func(ctx context.Context, clientTypeID uint64, activationChannelID *uint64) (*tierdomain.Tier, error) {
			return &tierdomain.Tier{SingleDepositLimit: &limit}, nil
		},
	}
	h := newTransferHandler(nil, tiers, nil, limits.GuardConfig{})

	req := httptest.NewRequest(stdhttp.MethodPost, "/deposits/check", mustJSON(map[string]any{
		"account_id":     1,
		"account_type":   "savings",
		"amount":         "1000.01",
		"client_type_id": 5,
	}))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CheckDeposit(c); err != nil {
		t.Fatalf("CheckDeposit error: %v", err)
	}
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422: %s", rec.Code, rec.Body.String())
	}
}
