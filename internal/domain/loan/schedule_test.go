package loan

import (
	"errors"
	"testing"
	"time"
)

func threeEqualIntervals(principal uint64) []PaymentInterval {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]PaymentInterval, 3)
	for i := range out {
		out[i] = PaymentInterval{
			Sequence:  i,
			DueAt:     base.AddDate(0, i+1, 0),
			Principal: principal,
			Status:    IntervalPending,
		}
	}
	return out
}

func TestBuildSchedule_Errors(t *testing.T) {
	if _, err := BuildSchedule(nil, nil, nil, nil); !errors.Is(err, ErrVectorEmpty) {
		t.Fatalf("want ErrVectorEmpty, got %v", err)
	}
	if _, err := BuildSchedule([]int64{1, 2}, []uint64{100}, []uint64{0, 0}, []uint64{0, 0}); !errors.Is(err, ErrVectorLengthMismatch) {
		t.Fatalf("want ErrVectorLengthMismatch, got %v", err)
	}
}

func TestBuildSchedule_OrdersBySequence(t *testing.T) {
	ivs, err := BuildSchedule([]int64{100, 200, 300}, []uint64{1, 2, 3}, []uint64{0, 0, 0}, []uint64{0, 0, 0})
	if err != nil {
		t.Fatalf("BuildSchedule: %v", err)
	}
	for i, iv := range ivs {
		if iv.Sequence != i {
			t.Errorf("interval %d sequence = %d", i, iv.Sequence)
		}
		if iv.Status != IntervalPending {
			t.Errorf("interval %d status = %s", i, iv.Status)
		}
	}
}

func TestPaymentOrder_Decode(t *testing.T) {
	if !PaymentOrderAll.Valid() {
		t.Fatal("full mask should be valid")
	}
	if PaymentOrder(0).Valid() || PaymentOrder(8).Valid() {
		t.Fatal("0 and out-of-range masks must be invalid")
	}
	got := (PayFee | PayPrincipal).Components()
	want := []Component{ComponentPrincipal, ComponentFee}
	if len(got) != len(want) {
		t.Fatalf("components = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("component order = %v, want %v", got, want)
		}
	}
}

// Mirrors the canonical flow: 3 x 100_000 principal, pay 150_000 twice.
func TestApplyPayment_PartialThenRetire(t *testing.T) {
	ivs := threeEqualIntervals(100_000)
	at := time.Now().UTC()

	res := ApplyPayment(ivs, PaymentOrderAll, 150_000, at)
	if res.Applied != 150_000 || res.PrincipalApplied != 150_000 {
		t.Fatalf("first apply: %+v", res)
	}
	if res.Retired {
		t.Fatal("loan must not retire at half debt")
	}
	if remainingPrincipal(ivs) != 150_000 {
		t.Fatalf("remaining = %d", remainingPrincipal(ivs))
	}
	// first interval cleared, second half-paid
	if ivs[0].Status != IntervalPaid || ivs[0].PaidAt == nil {
		t.Fatalf("interval 0 not settled: %+v", ivs[0])
	}
	if ivs[1].Status != IntervalPending || ivs[1].PrincipalPaid != 50_000 {
		t.Fatalf("interval 1 unexpected: %+v", ivs[1])
	}

	res = ApplyPayment(ivs, PaymentOrderAll, 150_000, at)
	if !res.Retired {
		t.Fatal("loan must retire at zero debt")
	}
	if remainingPrincipal(ivs) != 0 {
		t.Fatalf("remaining = %d", remainingPrincipal(ivs))
	}
	for i := range ivs {
		if ivs[i].Status != IntervalPaid {
			t.Fatalf("interval %d not paid", i)
		}
	}
}

func TestApplyPayment_OverpayBooksOnlyOutstanding(t *testing.T) {
	ivs := threeEqualIntervals(100_000)
	res := ApplyPayment(ivs, PaymentOrderAll, 1_000_000, time.Now().UTC())
	if res.Applied != 300_000 {
		t.Fatalf("applied = %d", res.Applied)
	}
	if !res.Retired {
		t.Fatal("want retirement")
	}
}

func TestApplyPayment_HonorsMaskPriority(t *testing.T) {
	ivs := []PaymentInterval{{
		Sequence:  0,
		DueAt:     time.Now().UTC(),
		Principal: 1000,
		Interest:  300,
		Fee:       200,
		Status:    IntervalPending,
	}}
	// principal has the lower bit, so it settles first
	res := ApplyPayment(ivs, PayPrincipal|PayInterest, 1100, time.Now().UTC())
	if res.PrincipalApplied != 1000 {
		t.Fatalf("principal applied = %d", res.PrincipalApplied)
	}
	if ivs[0].InterestPaid != 100 {
		t.Fatalf("interest paid = %d", ivs[0].InterestPaid)
	}
	// fee is outside the mask and must stay untouched
	if ivs[0].FeePaid != 0 {
		t.Fatalf("fee paid = %d", ivs[0].FeePaid)
	}
	if ivs[0].Status == IntervalPaid {
		t.Fatal("interval still owes masked interest, must stay pending")
	}
	if !res.Retired {
		t.Fatal("no unpaid principal remains, loan retires")
	}
}

func TestApplyPayment_SkipsPaidIntervals(t *testing.T) {
	ivs := threeEqualIntervals(100_000)
	at := time.Now().UTC()
	ApplyPayment(ivs, PaymentOrderAll, 100_000, at)
	if ivs[0].Status != IntervalPaid {
		t.Fatal("setup: interval 0 should be paid")
	}
	ApplyPayment(ivs, PaymentOrderAll, 100_000, at)
	if ivs[0].PrincipalPaid != 100_000 {
		t.Fatalf("paid interval mutated: %+v", ivs[0])
	}
	if ivs[1].Status != IntervalPaid {
		t.Fatalf("interval 1 should now be paid: %+v", ivs[1])
	}
}

func TestRemainingDebt_MatchesScheduledPrincipal(t *testing.T) {
	l := &Loan{Intervals: threeEqualIntervals(100_000)}
	if l.RemainingDebt() != 300_000 {
		t.Fatalf("remaining = %d", l.RemainingDebt())
	}
	if l.TotalPrincipal() != 300_000 {
		t.Fatalf("total = %d", l.TotalPrincipal())
	}
}
