package limits

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Limit check kinds, carried on LimitExceededError.
const (
	KindBeneficiaryTransfer = "beneficiary-transfer"
	KindDailyAggregate      = "daily-third-party-transfer"
	KindDailyWithdrawal     = "tier-daily-withdrawal"
	KindSingleDeposit       = "tier-single-deposit"
	KindCumulativeBalance   = "tier-cumulative-balance"
)

// LimitExceededError is a business rejection, not a system fault. It is
// reported verbatim to the end user and never swallowed or truncated.
type LimitExceededError struct {
	Kind     string
	Limit    decimal.Decimal
	Current  decimal.Decimal // realized total or balance before the proposal
	Proposed decimal.Decimal
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("%s limit exceeded: limit %s, current %s, proposed %s",
		e.Kind, e.Limit, e.Current, e.Proposed)
}

// FieldFault is one failed input rule in an overdraft request.
type FieldFault struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors collects every failed rule so the caller can fix the
// whole request in one round trip.
type ValidationErrors []FieldFault

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, f := range v {
		msgs = append(msgs, f.Field+" "+f.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}
