package utils

import (
	"github.com/iov-one/billchain"
	"github.com/tendermint/tendermint/libs/common"
)

// ActionKey is the tag key under which the path of every successfully
// delivered message is published. Clients subscribe to
// action='bill/release' and similar queries to follow bill transitions.
const ActionKey = "action"

// ActionTagger tags delivered transactions with the path of their message.
type ActionTagger struct{}

var _ billchain.Decorator = ActionTagger{}

func NewActionTagger() ActionTagger {
	return ActionTagger{}
}

func (ActionTagger) Check(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx, next billchain.Checker) (*billchain.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

// Deliver tags only successful calls.
func (ActionTagger) Deliver(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx, next billchain.Deliverer) (*billchain.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	res, err := next.Deliver(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res.Tags = append(res.Tags, common.KVPair{Key: []byte(ActionKey), Value: []byte(msg.Path())})
	return res, nil
}
