package http

import (
	"net/http"
	"strconv"
	"time"

	overdraftuc "corebanking-review/internal/usecase/overdraft"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type OverdraftHandler struct{ uc *overdraftuc.Usecase }

func NewOverdraftHandler(uc *overdraftuc.Usecase) *OverdraftHandler {
	return &OverdraftHandler{uc: uc}
}

type requestOverdraftReq struct {
	SavingsID         uint64  `json:"savings_id"          validate:"required"`
	Amount            string  `json:"amount"              validate:"required,decimalstr"`
	NominalAnnualRate string  `json:"nominal_annual_rate" validate:"required,decimalstr"`
	StartDate         string  `json:"start_date"          validate:"required,datetime=2006-01-02"`
	NumberOfDays      int     `json:"number_of_days"      validate:"required,gt=0"`
	Note              string  `json:"note"`
	StaffID           *uint64 `json:"staff_id"`
}

func (h *OverdraftHandler) Request(c echo.Context) error {
	var req requestOverdraftReq
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
	rate, _ := decimal.NewFromString(req.NominalAnnualRate)
	startDate, _ := time.Parse("2006-01-02", req.StartDate)

	dto, err := h.uc.Request(c.Request().Context(), overdraftuc.RequestInput{
		SavingsID:         req.SavingsID,
		Amount:            amount,
		NominalAnnualRate: rate,
		StartDate:         startDate,
		NumberOfDays:      req.NumberOfDays,
		Note:              req.Note,
		ActorStaffID:      req.StaffID,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

type overdraftCommandReq struct {
	Action string `json:"action" validate:"required"`
}

func (h *OverdraftHandler) Command(c echo.Context) error {
	facilityID := c.Param("facility_id")
	if facilityID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing facility_id path param"})
	}
	var req overdraftCommandReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Execute(c.Request().Context(), facilityID, req.Action)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *OverdraftHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("facility_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *OverdraftHandler) ListBySavings(c echo.Context) error {
	savingsID, err := strconv.ParseUint(c.Param("savings_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid savings_id"})
	}
	dtos, err := h.uc.ListBySavings(c.Request().Context(), savingsID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}
