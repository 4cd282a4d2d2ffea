package domain

import (
	"github.com/shopspring/decimal"
)

// Party identifies a side of the partnership
type Party string

const (
	PartyLP Party = "LP"
	PartyGP Party = "GP"
)

// CapitalAccount is the per-party, per-tier running balance: the amount owed
// to the party before the next tier may receive cash. It is mutated once per
// period by the orchestrator and owned exclusively by the ledger for its
// tier/party pair; it is never shared across concurrent runs.
//
// Invariant: EndingBalance = BeginningBalance + Accrued + Contributed -
// Distributed (prior-tier distributions are netted against a later tier's
// need at distribution time, so they surface here as a smaller Distributed).
// The ending balance is never negative.
type CapitalAccount struct {
	BeginningBalance decimal.Decimal
	Accrued          decimal.Decimal // accrued this period
	Contributed      decimal.Decimal // contributed this period
	Distributed      decimal.Decimal // distributed this period
	EndingBalance    decimal.Decimal
}

// Balance returns the amount currently owed to the party: the beginning
// balance plus this period's accrual and contribution, net of what has
// already been distributed this period.
func (a *CapitalAccount) Balance() decimal.Decimal {
	return a.BeginningBalance.Add(a.Accrued).Add(a.Contributed).Sub(a.Distributed)
}
