package http

import (
	"net/http"
	"time"

	"corebanking-review/internal/domain/ledger"
	"corebanking-review/internal/usecase/limits"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// TransferHandler runs the limit checks for a proposed transfer or
// withdrawal before the posting layer acts on it.
type TransferHandler struct{ guard *limits.Guard }

func NewTransferHandler(g *limits.Guard) *TransferHandler { return &TransferHandler{guard: g} }

type checkTransferReq struct {
	UserID               uint64  `json:"user_id"                validate:"required"`
	SourceAccountID      uint64  `json:"source_account_id"      validate:"required"`
	DestinationAccountID uint64  `json:"destination_account_id" validate:"required"`
	AccountType          string  `json:"account_type"           validate:"required,oneof=savings loan"`
	Amount               string  `json:"amount"                 validate:"required,decimalstr"`
	TransactionDate      string  `json:"transaction_date"       validate:"required,datetime=2006-01-02"`
	ClientTypeID         *uint64 `json:"client_type_id"`
	ActivationChannelID  *uint64 `json:"activation_channel_id"`
}

// CheckTransfer validates a third-party transfer intent: per-beneficiary
// cap first, then the daily aggregate cap, then the tier's withdrawal
// limit when the caller supplies a client type.
func (h *TransferHandler) CheckTransfer(c echo.Context) error {
	var req checkTransferReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	amount, _ := decimal.NewFromString(req.Amount)
	txnDate, _ := time.Parse("2006-01-02", req.TransactionDate)
	accountType := ledger.AccountType(req.AccountType)
	ctx := c.Request().Context()

	if err := h.guard.CheckBeneficiaryTransferLimit(ctx, req.UserID, req.DestinationAccountID, accountType, amount); err != nil {
		return writeDomainError(c, err)
	}
	if err := h.guard.CheckDailyAggregateLimit(ctx, req.SourceAccountID, accountType, txnDate, amount); err != nil {
		return writeDomainError(c, err)
	}
	if req.ClientTypeID != nil {
		err := h.guard.CheckWithdrawal(ctx, limits.WithdrawalCheckInput{
			AccountID:           req.SourceAccountID,
			AccountType:         accountType,
			ClientTypeID:        *req.ClientTypeID,
			ActivationChannelID: req.ActivationChannelID,
			TransactionDate:     txnDate,
			Amount:              amount,
		})
		if err != nil {
			return writeDomainError(c, err)
		}
	}

	return c.JSON(http.StatusOK, map[string]string{"result": "accepted"})
}

type checkDepositReq struct {
	AccountID           uint64  `json:"account_id"            validate:"required"`
	AccountType         string  `json:"account_type"          validate:"required,oneof=savings loan"`
	Amount              string  `json:"amount"                validate:"required,decimalstr"`
	ClientTypeID        uint64  `json:"client_type_id"        validate:"required"`
	ActivationChannelID *uint64 `json:"activation_channel_id"`
}

// CheckDeposit validates a deposit intent against the tier's single
// deposit limit and cumulative balance cap.
func (h *TransferHandler) CheckDeposit(c echo.Context) error {
	var req checkDepositReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	amount, _ := decimal.NewFromString(req.Amount)
	err := h.guard.CheckDeposit(c.Request().Context(), limits.DepositCheckInput{
		AccountID:           req.AccountID,
		AccountType:         ledger.AccountType(req.AccountType),
		ClientTypeID:        req.ClientTypeID,
		ActivationChannelID: req.ActivationChannelID,
		Amount:              amount,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"result": "accepted"})
}
