package models

import (
	"math"
	"strconv"
	"time"
)

// BaseServiceCharge seeds every variant's service charge computation.
const BaseServiceCharge = 0.50

// BankAccount is the full public surface of an account variant. The base
// Account does not satisfy it on its own: a variant has to supply
// ServiceCharges.
type BankAccount interface {
	Kind() Kind
	AccountNumber() int64
	ClientNumber() int64
	DateCreated() time.Time
	Balance() float64
	Deposit(amount float64) (float64, error)
	DepositValue(v any) (float64, error)
	Withdraw(amount float64) (float64, error)
	WithdrawValue(v any) (float64, error)
	UpdateBalance(amount float64) float64
	ServiceCharges() float64
	Terms() Terms
	String() string
}

var (
	_ BankAccount = (*Chequing)(nil)
	_ BankAccount = (*Savings)(nil)
	_ BankAccount = (*Investment)(nil)
)

// Account holds the state and balance arithmetic shared by all variants.
// It is not safe for concurrent use.
type Account struct {
	accountNumber int64
	clientNumber  int64
	dateCreated   time.Time
	balance       float64
	now           func() time.Time
}

type Option func(*Account)

// WithClock overrides the source of "today". The returned time's location
// decides which calendar day an account falls on.
func WithClock(now func() time.Time) Option {
	return func(a *Account) {
		if now != nil {
			a.now = now
		}
	}
}

// NewAccount builds the shared account state. A zero dateCreated falls
// back to today without error; balance is stored as given.
func NewAccount(accountNumber, clientNumber int64, dateCreated time.Time, balance float64, opts ...Option) *Account {
	a := &Account{
		accountNumber: accountNumber,
		clientNumber:  clientNumber,
		balance:       balance,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	if dateCreated.IsZero() {
		dateCreated = a.today()
	}
	a.dateCreated = truncateDay(dateCreated)
	return a
}

func (a *Account) AccountNumber() int64   { return a.accountNumber }
func (a *Account) ClientNumber() int64    { return a.clientNumber }
func (a *Account) DateCreated() time.Time { return a.dateCreated }
func (a *Account) Balance() float64       { return a.balance }

// UpdateBalance adjusts the balance by amount without any validation: a
// negative amount decreases the balance, anything else increases it. The
// result may be negative.
func (a *Account) UpdateBalance(amount float64) float64 {
	a.balance += amount
	return a.balance
}

// Deposit adds a positive amount and returns the new balance.
func (a *Account) Deposit(amount float64) (float64, error) {
	if err := checkPositive("deposit", amount); err != nil {
		return 0, err
	}
	a.balance += amount
	return a.balance, nil
}

// DepositValue coerces v to an amount before depositing it.
func (a *Account) DepositValue(v any) (float64, error) {
	amount, err := coerceAmount("deposit", v)
	if err != nil {
		return 0, err
	}
	return a.Deposit(amount)
}

// Withdraw removes a positive amount no greater than the current balance
// and returns the new balance.
func (a *Account) Withdraw(amount float64) (float64, error) {
	if err := checkPositive("withdraw", amount); err != nil {
		return 0, err
	}
	if amount > a.balance {
		return 0, invalid("withdraw", "amount", amount,
			"%s must not exceed the account balance: %s", FormatMoney(amount), FormatMoney(a.balance))
	}
	return a.UpdateBalance(-amount), nil
}

// WithdrawValue coerces v to an amount before withdrawing it.
func (a *Account) WithdrawValue(v any) (float64, error) {
	amount, err := coerceAmount("withdraw", v)
	if err != nil {
		return 0, err
	}
	return a.Withdraw(amount)
}

func (a *Account) String() string {
	return "Account Number: " + strconv.FormatInt(a.accountNumber, 10) + " Balance: " + FormatMoney(a.balance)
}

func (a *Account) today() time.Time {
	return truncateDay(a.now())
}

func checkPositive(op string, amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return invalid(op, "amount", amount, "must be numeric")
	}
	if amount <= 0 {
		return invalid(op, "amount", amount, "%s must be positive", FormatMoney(amount))
	}
	return nil
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
