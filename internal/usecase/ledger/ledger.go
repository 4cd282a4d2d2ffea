// Package ledger owns the capital accounts of a single waterfall run: one
// account per tier and party, mutated only by the orchestrator, never shared
// across runs.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/simaogato/waterfall-backend/internal/domain"
)

// Ledger holds the running capital-account balances for every tier/party
// pair of one run
type Ledger struct {
	tiers []tierAccounts
}

type tierAccounts struct {
	lp domain.CapitalAccount
	gp domain.CapitalAccount
}

// New creates a ledger with zeroed accounts for tierCount tiers
func New(tierCount int) *Ledger {
	return &Ledger{tiers: make([]tierAccounts, tierCount)}
}

func (l *Ledger) account(tierIndex int, party domain.Party) *domain.CapitalAccount {
	if party == domain.PartyGP {
		return &l.tiers[tierIndex].gp
	}
	return &l.tiers[tierIndex].lp
}

// Balance returns what the party is currently owed for the tier: beginning
// balance plus this period's accrual and contribution, net of this period's
// distributions so far
func (l *Ledger) Balance(tierIndex int, party domain.Party) decimal.Decimal {
	return l.account(tierIndex, party).Balance()
}

// BeginningBalance returns the balance the period opened with, the base for
// preferred-return accrual
func (l *Ledger) BeginningBalance(tierIndex int, party domain.Party) decimal.Decimal {
	return l.account(tierIndex, party).BeginningBalance
}

// AddAccrual records compounded preferred return accrued this period
func (l *Ledger) AddAccrual(tierIndex int, party domain.Party, amount decimal.Decimal) {
	acct := l.account(tierIndex, party)
	acct.Accrued = acct.Accrued.Add(amount)
}

// AddContribution records capital contributed this period
func (l *Ledger) AddContribution(tierIndex int, party domain.Party, amount decimal.Decimal) {
	acct := l.account(tierIndex, party)
	acct.Contributed = acct.Contributed.Add(amount)
}

// ApplyDistribution records cash distributed to the party this period
func (l *Ledger) ApplyDistribution(tierIndex int, party domain.Party, amount decimal.Decimal) {
	acct := l.account(tierIndex, party)
	acct.Distributed = acct.Distributed.Add(amount)
}

// Account returns a snapshot copy of the tier/party account
func (l *Ledger) Account(tierIndex int, party domain.Party) domain.CapitalAccount {
	return *l.account(tierIndex, party)
}

// ClosePeriod settles every account: ending balance = beginning + accrued +
// contributed - distributed, floored at zero (the residual tier has no
// capital ceiling, so its distributions may exceed its balance), then rolls
// the ending balance into the next period's beginning balance and clears the
// period columns.
func (l *Ledger) ClosePeriod() {
	for i := range l.tiers {
		closeAccount(&l.tiers[i].lp)
		closeAccount(&l.tiers[i].gp)
	}
}

func closeAccount(acct *domain.CapitalAccount) {
	ending := acct.Balance()
	if ending.LessThan(decimal.Zero) {
		ending = decimal.Zero
	}

	acct.EndingBalance = ending
	acct.BeginningBalance = ending
	acct.Accrued = decimal.Zero
	acct.Contributed = decimal.Zero
	acct.Distributed = decimal.Zero
}
