package bill

import (
	"context"
	"encoding/binary"

	"github.com/iov-one/billchain"
	"github.com/iov-one/billchain/errors"
	"github.com/iov-one/billchain/x/risk"
)

// RegisterQuery exposes bills as "/bills", with the maker, payer, status
// and reference indexes, and the release state as "/billstate".
func RegisterQuery(qr billchain.QueryRouter) {
	NewBucket().Register("bills", qr)
	qr.Register("/billstate", stateQuery{ctrl: NewController(nil, risk.NewController())})
}

// BillState is the result of a "/billstate" query.
type BillState struct {
	Status     Status `json:"status"`
	CanRelease bool   `json:"can_release"`
	// Reason is the error that blocks the release.
	Reason string `json:"reason,omitempty"`
	// ReleasableAt is set once the payment was verified.
	ReleasableAt billchain.UnixTime `json:"releasable_at,omitempty"`
}

func (s *BillState) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(s)
}

func (s *BillState) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, s)
}

// StateQueryData builds the "/billstate" query data: the bill ID followed by
// the time the state is evaluated at.
func StateQueryData(id []byte, at billchain.UnixTime) []byte {
	data := make([]byte, len(id)+8)
	copy(data, id)
	binary.BigEndian.PutUint64(data[len(id):], uint64(at))
	return data
}

type stateQuery struct {
	ctrl *BaseController
}

func (q stateQuery) Query(db billchain.ReadOnlyKVStore, mod string, data []byte) ([]billchain.Model, error) {
	if mod != billchain.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "unknown query mod %q", mod)
	}
	if len(data) != 16 {
		return nil, errors.Wrap(errors.ErrInput, "want 8 byte bill id and 8 byte time")
	}
	id, at := data[:8], billchain.UnixTime(binary.BigEndian.Uint64(data[8:]))
	if err := at.Validate(); err != nil {
		return nil, err
	}

	b, err := q.ctrl.Bill(db, id)
	if err != nil {
		if errors.ErrNotFound.Is(err) {
			return nil, nil
		}
		return nil, err
	}
	ctx := billchain.WithBlockTime(context.Background(), at.Time())
	state, err := q.ctrl.state(ctx, db, b)
	if err != nil {
		return nil, err
	}
	raw, err := state.Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "marshal bill state")
	}
	return []billchain.Model{billchain.Pair(id, raw)}, nil
}

// state evaluates the release gates of a bill at the block time.
func (c *BaseController) state(ctx billchain.Context, db billchain.ReadOnlyKVStore, b *Bill) (*BillState, error) {
	s := BillState{Status: b.Status, CanRelease: true}
	if err := c.checkRelease(ctx, db, b); err != nil {
		s.CanRelease = false
		s.Reason = err.Error()
	}
	if b.OracleVerified {
		hold, err := c.risk.HoldPeriod(db, b.PaymentMethod)
		if err != nil {
			return nil, err
		}
		s.ReleasableAt = b.VerifiedAt.Add(hold)
	}
	return &s, nil
}
