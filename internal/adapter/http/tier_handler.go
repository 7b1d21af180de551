package http

import (
	"net/http"
	"strconv"

	tierdomain "corebanking-review/internal/domain/tier"
	tieruc "corebanking-review/internal/usecase/tier"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type TierHandler struct{ uc *tieruc.Usecase }

func NewTierHandler(uc *tieruc.Usecase) *TierHandler { return &TierHandler{uc: uc} }

type tierDTO struct {
	TierID               string  `json:"tier_id"`
	Name                 string  `json:"name"`
	Description          string  `json:"description,omitempty"`
	ClientTypeID         uint64  `json:"client_type_id"`
	ActivationChannelID  *uint64 `json:"activation_channel_id,omitempty"`
	DailyWithdrawalLimit *string `json:"daily_withdrawal_limit,omitempty"`
	SingleDepositLimit   *string `json:"single_deposit_limit,omitempty"`
	CumulativeBalanceCap *string `json:"cumulative_balance_cap,omitempty"`
}

func toTierDTO(t *tierdomain.Tier) tierDTO {
	dto := tierDTO{
		TierID:              t.TierID,
		Name:                t.Name,
		Description:         t.Description,
		ClientTypeID:        t.ClientTypeID,
		ActivationChannelID: t.ActivationChannelID,
	}
	fmtDec := func(d *decimal.Decimal) *string {
		if d == nil {
			return nil
		}
		s := d.String()
		return &s
	}
	dto.DailyWithdrawalLimit = fmtDec(t.DailyWithdrawalLimit)
	dto.SingleDepositLimit = fmtDec(t.SingleDepositLimit)
	dto.CumulativeBalanceCap = fmtDec(t.CumulativeBalanceCap)
	return dto
}

type createTierReq struct {
	Name                 string  `json:"name"                   validate:"required"`
	Description          string  `json:"description"`
	ClientTypeID         uint64  `json:"client_type_id"         validate:"required"`
	ParentTierID         *string `json:"parent_tier_id"         validate:"omitempty,hex32"`
	ActivationChannelID  *uint64 `json:"activation_channel_id"`
	DailyWithdrawalLimit *string `json:"daily_withdrawal_limit" validate:"omitempty,decimalstr"`
	SingleDepositLimit   *string `json:"single_deposit_limit"   validate:"omitempty,decimalstr"`
	CumulativeBalanceCap *string `json:"cumulative_balance_cap" validate:"omitempty,decimalstr"`
}

func parseDec(s *string) *decimal.Decimal {
	if s == nil {
		return nil
	}
	d, err := decimal.NewFromString(*s)
	if err != nil {
		return nil
	}
	return &d
}

func (h *TierHandler) Create(c echo.Context) error {
	var req createTierReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	t, err := h.uc.Create(c.Request().Context(), tieruc.CreateInput{
		Name:                 req.Name,
		Description:          req.Description,
		ClientTypeID:         req.ClientTypeID,
		ParentTierID:         req.ParentTierID,
		ActivationChannelID:  req.ActivationChannelID,
		DailyWithdrawalLimit: parseDec(req.DailyWithdrawalLimit),
		SingleDepositLimit:   parseDec(req.SingleDepositLimit),
		CumulativeBalanceCap: parseDec(req.CumulativeBalanceCap),
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, toTierDTO(t))
}

type updateTierReq struct {
	Name                 *string `json:"name"`
	Description          *string `json:"description"`
	ParentTierID         *string `json:"parent_tier_id"         validate:"omitempty,hex32"`
	ActivationChannelID  *uint64 `json:"activation_channel_id"`
	DailyWithdrawalLimit *string `json:"daily_withdrawal_limit" validate:"omitempty,decimalstr"`
	SingleDepositLimit   *string `json:"single_deposit_limit"   validate:"omitempty,decimalstr"`
	CumulativeBalanceCap *string `json:"cumulative_balance_cap" validate:"omitempty,decimalstr"`
}

// Update applies the fields present in the request and echoes back the
// map of applied changes.
func (h *TierHandler) Update(c echo.Context) error {
	var req updateTierReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	changes, err := h.uc.Update(c.Request().Context(), c.Param("tier_id"), tieruc.UpdateInput{
		Name:                 req.Name,
		Description:          req.Description,
		ParentTierID:         req.ParentTierID,
		ActivationChannelID:  req.ActivationChannelID,
		DailyWithdrawalLimit: parseDec(req.DailyWithdrawalLimit),
		SingleDepositLimit:   parseDec(req.SingleDepositLimit),
		CumulativeBalanceCap: parseDec(req.CumulativeBalanceCap),
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"changes": changes})
}

func (h *TierHandler) Get(c echo.Context) error {
	t, err := h.uc.Get(c.Request().Context(), c.Param("tier_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, toTierDTO(t))
}

func (h *TierHandler) Delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), c.Param("tier_id")); err != nil {
		return writeDomainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Resolve answers "which limits apply to this client type on this
// channel", with the channel-less tier as the fallback.
func (h *TierHandler) Resolve(c echo.Context) error {
	clientTypeID, err := strconv.ParseUint(c.QueryParam("client_type_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid client_type_id"})
	}
	var channelID *uint64
	if v := c.QueryParam("activation_channel_id"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid activation_channel_id"})
		}
		channelID = &n
	}
	t, err := h.uc.Resolve(c.Request().Context(), clientTypeID, channelID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, toTierDTO(t))
}
