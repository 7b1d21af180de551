package http

import (
	"net/http"
	"strconv"

	reviewdomain "corebanking-review/internal/domain/review"
	reviewuc "corebanking-review/internal/usecase/review"

	"github.com/labstack/echo/v4"
)

type ReviewHandler struct{ uc *reviewuc.Usecase }

func NewReviewHandler(uc *reviewuc.Usecase) *ReviewHandler { return &ReviewHandler{uc: uc} }

type enqueueReviewReq struct {
	LoanID    *uint64 `json:"loan_id"`
	SavingsID *uint64 `json:"savings_id"`
	Note      string  `json:"note"`
	StaffID   *uint64 `json:"staff_id"`
}

func (h *ReviewHandler) Enqueue(c echo.Context) error {
	var req enqueueReviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	dto, err := h.uc.Enqueue(c.Request().Context(), reviewuc.EnqueueInput{
		LoanID:       req.LoanID,
		SavingsID:    req.SavingsID,
		Note:         req.Note,
		ActorStaffID: req.StaffID,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

type reviewCommandReq struct {
	Action        string  `json:"action"          validate:"required"`
	Note          string  `json:"note"`
	StaffID       *uint64 `json:"staff_id"`
	Rank          *int    `json:"rank"`
	PaymentTypeID *uint64 `json:"payment_type_id"`
	ActorStaffID  *uint64 `json:"actor_staff_id"`
}

func (h *ReviewHandler) Command(c echo.Context) error {
	itemID := c.Param("item_id")
	if itemID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing item_id path param"})
	}
	var req reviewCommandReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Execute(c.Request().Context(), reviewuc.CommandInput{
		ItemID:        itemID,
		Action:        req.Action,
		Note:          req.Note,
		StaffID:       req.StaffID,
		Rank:          req.Rank,
		PaymentTypeID: req.PaymentTypeID,
		ActorStaffID:  req.ActorStaffID,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type assignBalancedReq struct {
	ItemID            string   `json:"item_id"             validate:"required,hex32"`
	CandidateStaffIDs []uint64 `json:"candidate_staff_ids" validate:"required,min=1"`
	Note              string   `json:"note"`
	ActorStaffID      *uint64  `json:"actor_staff_id"`
}

func (h *ReviewHandler) AssignBalanced(c echo.Context) error {
	var req assignBalancedReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.AssignBalanced(c.Request().Context(), reviewuc.AssignBalancedInput{
		ItemID:            req.ItemID,
		CandidateStaffIDs: req.CandidateStaffIDs,
		Note:              req.Note,
		ActorStaffID:      req.ActorStaffID,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ReviewHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("item_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// List reads the optional filters off the query string; absent parameters
// add no predicate.
func (h *ReviewHandler) List(c echo.Context) error {
	var f reviewdomain.ItemFilter
	if v := c.QueryParam("staff_id"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid staff_id"})
		}
		f.AssignedStaffID = &n
	}
	if v := c.QueryParam("status"); v != "" {
		code, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid status"})
		}
		st, err := reviewdomain.StatusFromCode(code)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		}
		f.Status = &st
	}
	if v := c.QueryParam("loan_id"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loan_id"})
		}
		f.LoanID = &n
	}
	if v := c.QueryParam("savings_id"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid savings_id"})
		}
		f.SavingsID = &n
	}
	dtos, err := h.uc.List(c.Request().Context(), f)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *ReviewHandler) Backlog(c echo.Context) error {
	staffID, err := strconv.ParseUint(c.Param("staff_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid staff_id"})
	}
	n, err := h.uc.Backlog(c.Request().Context(), staffID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"staff_id": staffID, "backlog": n})
}
