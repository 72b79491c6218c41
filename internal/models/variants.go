package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Kind names an account variant.
type Kind string

const (
	KindChequing   Kind = "chequing"
	KindSavings    Kind = "savings"
	KindInvestment Kind = "investment"
)

// SavingsPremium multiplies the base charge of a savings account that has
// fallen below its minimum balance.
const SavingsPremium = 2.0

// Investment accounts older than this many years pay only the base charge.
const investmentWaiverYears = 10

func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindChequing, KindSavings, KindInvestment:
		return k, nil
	}
	return "", invalid("new account", "type", s, "must be one of chequing, savings, investment, got %q", s)
}

// Terms are the variant-specific parameters of an account. Only the fields
// relevant to a given Kind are read.
type Terms struct {
	OverdraftLimit float64 `json:"overdraft_limit,omitempty"`
	OverdraftRate  float64 `json:"overdraft_rate,omitempty"`
	MinimumBalance float64 `json:"minimum_balance,omitempty"`
	ManagementFee  float64 `json:"management_fee,omitempty"`
}

// New wraps base in the variant named by kind.
func New(kind Kind, base *Account, terms Terms) (BankAccount, error) {
	switch kind {
	case KindChequing:
		return NewChequing(base, terms.OverdraftLimit, terms.OverdraftRate), nil
	case KindSavings:
		return NewSavings(base, terms.MinimumBalance), nil
	case KindInvestment:
		return NewInvestment(base, terms.ManagementFee), nil
	}
	return nil, invalid("new account", "type", string(kind), "unknown account type %q", kind)
}

// Chequing charges interest on the shortfall below its overdraft limit.
type Chequing struct {
	*Account
	overdraftLimit float64
	overdraftRate  float64
}

func NewChequing(base *Account, overdraftLimit, overdraftRate float64) *Chequing {
	return &Chequing{Account: base, overdraftLimit: overdraftLimit, overdraftRate: overdraftRate}
}

func (c *Chequing) Kind() Kind { return KindChequing }

func (c *Chequing) Terms() Terms {
	return Terms{OverdraftLimit: c.overdraftLimit, OverdraftRate: c.overdraftRate}
}

func (c *Chequing) ServiceCharges() float64 {
	base := decimal.NewFromFloat(BaseServiceCharge)
	if c.Balance() >= c.overdraftLimit {
		return base.InexactFloat64()
	}
	shortfall := decimal.NewFromFloat(c.overdraftLimit).Sub(decimal.NewFromFloat(c.Balance()))
	return base.Add(shortfall.Mul(decimal.NewFromFloat(c.overdraftRate))).Round(2).InexactFloat64()
}

// Savings doubles the base charge while the balance is under the minimum.
type Savings struct {
	*Account
	minimumBalance float64
}

func NewSavings(base *Account, minimumBalance float64) *Savings {
	return &Savings{Account: base, minimumBalance: minimumBalance}
}

func (s *Savings) Kind() Kind { return KindSavings }

func (s *Savings) Terms() Terms { return Terms{MinimumBalance: s.minimumBalance} }

func (s *Savings) ServiceCharges() float64 {
	base := decimal.NewFromFloat(BaseServiceCharge)
	if s.Balance() >= s.minimumBalance {
		return base.InexactFloat64()
	}
	return base.Mul(decimal.NewFromFloat(SavingsPremium)).Round(2).InexactFloat64()
}

// Investment adds a management fee unless the account is more than ten
// years old.
type Investment struct {
	*Account
	managementFee float64
}

func NewInvestment(base *Account, managementFee float64) *Investment {
	return &Investment{Account: base, managementFee: managementFee}
}

func (i *Investment) Kind() Kind { return KindInvestment }

func (i *Investment) Terms() Terms { return Terms{ManagementFee: i.managementFee} }

func (i *Investment) ServiceCharges() float64 {
	base := decimal.NewFromFloat(BaseServiceCharge)
	if i.matured(i.today()) {
		return base.InexactFloat64()
	}
	return base.Add(decimal.NewFromFloat(i.managementFee)).Round(2).InexactFloat64()
}

func (i *Investment) matured(today time.Time) bool {
	return !i.DateCreated().After(today.AddDate(-investmentWaiverYears, 0, 0))
}
