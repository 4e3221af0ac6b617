package bill

import (
	"strings"
	"testing"

	"github.com/iov-one/billchain"
	"github.com/iov-one/billchain/chaintest"
	"github.com/iov-one/billchain/coin"
	"github.com/iov-one/billchain/errors"
	"github.com/iov-one/billchain/x/risk"
)

func validBill() *Bill {
	gross, fee, net := eth(1, 0), eth(0, 44000000), eth(0, 956000000)
	return &Bill{
		Metadata:      &billchain.Metadata{Schema: 1},
		Maker:         chaintest.NewCondition().Address(),
		Asset:         NativeAsset,
		Gross:         &gross,
		Fee:           &fee,
		Net:           &net,
		FeeBps:        DefaultFeeBps,
		FiatAmount:    40000,
		PaymentMethod: risk.SEPA,
		Status:        StatusFunded,
		CreatedAt:     billchain.AsUnixTime(start),
		ExpiresAt:     billchain.AsUnixTime(start.Add(DefaultBillTTL)),
		Address:       EscrowCondition(chaintest.SequenceID(1)).Address(),
	}
}

func TestBillValidation(t *testing.T) {
	cases := map[string]struct {
		mutate  func(b *Bill)
		wantErr *errors.Error
	}{
		"valid": {
			mutate: func(b *Bill) {},
		},
		"claimed": {
			mutate: func(b *Bill) {
				b.Status = StatusClaimed
				b.Payer = chaintest.NewCondition().Address()
			},
		},
		"missing metadata": {
			mutate:  func(b *Bill) { b.Metadata = nil },
			wantErr: errors.ErrMetadata,
		},
		"unknown status": {
			mutate:  func(b *Bill) { b.Status = "LOST" },
			wantErr: errors.ErrState,
		},
		"fee and net do not add up": {
			mutate: func(b *Bill) {
				net := eth(0, 956000001)
				b.Net = &net
			},
			wantErr: errors.ErrAmount,
		},
		"negative fee": {
			mutate: func(b *Bill) {
				fee, net := eth(0, -1), eth(1, 1)
				b.Fee, b.Net = &fee, &net
			},
			wantErr: errors.ErrAmount,
		},
		"fee in another currency": {
			mutate: func(b *Bill) {
				fee := coin.NewCoin(0, 44000000, "DAI")
				b.Fee = &fee
			},
			wantErr: errors.ErrCurrency,
		},
		"missing net": {
			mutate:  func(b *Bill) { b.Net = nil },
			wantErr: errors.ErrEmpty,
		},
		"zero fiat": {
			mutate:  func(b *Bill) { b.FiatAmount = 0 },
			wantErr: errors.ErrAmount,
		},
		"disputed without a reason": {
			mutate:  func(b *Bill) { b.Status = StatusDisputed },
			wantErr: errors.ErrState,
		},
		"reason outside of a dispute": {
			mutate:  func(b *Bill) { b.DisputeReason = "late" },
			wantErr: errors.ErrState,
		},
		"reason too long": {
			mutate: func(b *Bill) {
				b.Status = StatusDisputed
				b.DisputeReason = strings.Repeat("x", maxDisputeReasonLength+1)
			},
			wantErr: errors.ErrInput,
		},
		"missing escrow address": {
			mutate:  func(b *Bill) { b.Address = nil },
			wantErr: errors.ErrInput,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			b := validBill()
			tc.mutate(b)
			if err := b.Validate(); !tc.wantErr.Is(err) {
				t.Fatalf("want %q error, got %+v", tc.wantErr, err)
			}
		})
	}
}

func TestStatusTerminal(t *testing.T) {
	for _, s := range statuses {
		want := s == StatusReleased || s == StatusCancelled || s == StatusRefunded
		if s.IsTerminal() != want {
			t.Errorf("%s: terminal %v", s, s.IsTerminal())
		}
	}
}

func TestEscrowAddressIsPerBill(t *testing.T) {
	a := EscrowCondition(chaintest.SequenceID(1)).Address()
	b := EscrowCondition(chaintest.SequenceID(2)).Address()
	if a.Equals(b) {
		t.Fatal("two bills share an escrow address")
	}
}
