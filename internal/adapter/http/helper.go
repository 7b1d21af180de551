package http

import (
	"errors"
	"net/http"
	"strings"

	beneficiarydomain "corebanking-review/internal/domain/beneficiary"
	overdraftdomain "corebanking-review/internal/domain/overdraft"
	reviewdomain "corebanking-review/internal/domain/review"
	tierdomain "corebanking-review/internal/domain/tier"
	"corebanking-review/internal/usecase/limits"
	overdraftuc "corebanking-review/internal/usecase/overdraft"
	reviewuc "corebanking-review/internal/usecase/review"

	"github.com/labstack/echo/v4"
)

// writeDomainError translates core errors onto transport codes. The core
// raises; this is the only place that decides status codes.
func writeDomainError(c echo.Context, err error) error {
	var (
		limitErr       *limits.LimitExceededError
		validationErrs limits.ValidationErrors
		badReviewCmd   *reviewdomain.UnrecognizedCommandError
		badODCmd       *overdraftuc.UnrecognizedCommandError
		badReviewMove  *reviewdomain.InvalidTransitionError
		badODMove      *overdraftdomain.InvalidTransitionError
	)

	switch {
	case errors.Is(err, reviewdomain.ErrNotFound),
		errors.Is(err, tierdomain.ErrNotFound),
		errors.Is(err, tierdomain.ErrPolicyNotFound),
		errors.Is(err, overdraftdomain.ErrNotFound),
		errors.Is(err, beneficiarydomain.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})

	case errors.Is(err, reviewdomain.ErrRankConflict):
		// data-integrity conflict: caller recomputes the rank and retries
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})

	case errors.Is(err, reviewdomain.ErrSubjectRequired),
		errors.Is(err, reviewdomain.ErrSubjectAmbiguous),
		errors.Is(err, reviewuc.ErrNoteRequired),
		errors.Is(err, reviewuc.ErrStaffRequired),
		errors.Is(err, reviewuc.ErrNoCandidates),
		errors.Is(err, tierdomain.ErrNegativeLimit),
		errors.Is(err, tierdomain.ErrUnknownParent):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})

	case errors.As(err, &badReviewCmd), errors.As(err, &badODCmd):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})

	case errors.As(err, &badReviewMove), errors.As(err, &badODMove):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})

	case errors.As(err, &limitErr):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: limitErr.Error()})

	case errors.As(err, &validationErrs):
		details := make([]FieldError, 0, len(validationErrs))
		for _, f := range validationErrs {
			details = append(details, FieldError{Field: f.Field, Message: f.Message})
		}
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: details})
	}

	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
