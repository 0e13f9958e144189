package loan

import "time"

// BuildSchedule turns the four parallel origination arrays into ordered
// intervals. Due times are unix seconds.
func BuildSchedule(dueAt []int64, principal, interest, fee []uint64) ([]PaymentInterval, error) {
	if len(dueAt) == 0 {
		return nil, ErrVectorEmpty
	}
	if len(principal) != len(dueAt) || len(interest) != len(dueAt) || len(fee) != len(dueAt) {
		return nil, ErrVectorLengthMismatch
	}
	out := make([]PaymentInterval, len(dueAt))
	for i := range dueAt {
		out[i] = PaymentInterval{
			Sequence:  i,
			DueAt:     time.Unix(dueAt[i], 0).UTC(),
			Principal: principal[i],
			Interest:  interest[i],
			Fee:       fee[i],
			Status:    IntervalPending,
		}
	}
	return out, nil
}

// ApplyResult reports how a payment landed and whether the loan retired.
// Retirement is a side-effect instruction: the caller destroys the loan's
// auxiliary resources in the same transaction.
type ApplyResult struct {
	// Applied is the part of the payment booked to any component.
	Applied uint64
	// PrincipalApplied is the part that reduced remaining debt.
	PrincipalApplied uint64
	Retired          bool
}

// ApplyPayment books amount across intervals in schedule order, honoring the
// payment-order mask within each interval. Intervals are mutated in place; an
// interval is marked paid once every masked component is settled. The loan
// retires when no unpaid principal remains.
func ApplyPayment(intervals []PaymentInterval, order PaymentOrder, amount uint64, at time.Time) ApplyResult {
	var res ApplyResult
	components := order.Components()
	pool := amount
	for i := range intervals {
		if pool == 0 {
			break
		}
		iv := &intervals[i]
		if iv.Status == IntervalPaid {
			continue
		}
		for _, c := range components {
			out := iv.Outstanding(c)
			if out == 0 {
				continue
			}
			pay := min(pool, out)
			iv.pay(c, pay)
			pool -= pay
			res.Applied += pay
			if c == ComponentPrincipal {
				res.PrincipalApplied += pay
			}
			if pool == 0 {
				break
			}
		}
		if intervalSettled(iv, components) {
			iv.Status = IntervalPaid
			paidAt := at
			iv.PaidAt = &paidAt
		}
	}
	res.Retired = remainingPrincipal(intervals) == 0
	return res
}

func intervalSettled(iv *PaymentInterval, components []Component) bool {
	for _, c := range components {
		if iv.Outstanding(c) != 0 {
			return false
		}
	}
	return true
}

func remainingPrincipal(intervals []PaymentInterval) uint64 {
	var debt uint64
	for i := range intervals {
		debt += intervals[i].Outstanding(ComponentPrincipal)
	}
	return debt
}
