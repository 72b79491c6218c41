// Package registry keeps live accounts in memory and serializes every
// mutation behind one mutex, so accounts can be shared by concurrent
// HTTP handlers.
package registry

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"bankaccount-go/internal/models"
)

var (
	// ErrNotFound means no open account carries the number.
	ErrNotFound = errors.New("account not found")

	// ErrDuplicate means an open account already carries the number.
	ErrDuplicate = errors.New("account number already in use")
)

// Snapshot is a read-only copy of an account's state. Callers never get
// the live account.
type Snapshot struct {
	Kind           models.Kind
	AccountNumber  int64
	ClientNumber   int64
	DateCreated    time.Time
	Balance        float64
	ServiceCharges float64
	Terms          models.Terms
	Display        string
}

func snapshot(a models.BankAccount) Snapshot {
	return Snapshot{
		Kind:           a.Kind(),
		AccountNumber:  a.AccountNumber(),
		ClientNumber:   a.ClientNumber(),
		DateCreated:    a.DateCreated(),
		Balance:        a.Balance(),
		ServiceCharges: a.ServiceCharges(),
		Terms:          a.Terms(),
		Display:        a.String(),
	}
}

type Registry struct {
	mu    sync.Mutex
	accts map[int64]models.BankAccount
}

func New() *Registry {
	return &Registry{accts: make(map[int64]models.BankAccount)}
}

// Open takes ownership of a and makes it reachable by its account number.
func (r *Registry) Open(a models.BankAccount) (Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := a.AccountNumber()
	if _, ok := r.accts[n]; ok {
		return Snapshot{}, fmt.Errorf("account %d: %w", n, ErrDuplicate)
	}
	r.accts[n] = a
	return snapshot(a), nil
}

func (r *Registry) Get(number int64) (Snapshot, error) {
	var out Snapshot
	err := r.with(number, func(a models.BankAccount) error {
		out = snapshot(a)
		return nil
	})
	return out, err
}

// Deposit coerces amount and deposits it. The balance is untouched on error.
func (r *Registry) Deposit(number int64, amount any) (Snapshot, error) {
	return r.mutate(number, func(a models.BankAccount) error {
		_, err := a.DepositValue(amount)
		return err
	})
}

// Withdraw coerces amount and withdraws it. The balance is untouched on error.
func (r *Registry) Withdraw(number int64, amount any) (Snapshot, error) {
	return r.mutate(number, func(a models.BankAccount) error {
		_, err := a.WithdrawValue(amount)
		return err
	})
}

// UpdateBalance applies an unchecked adjustment. Only numeric coercion can
// fail; the resulting balance may be negative.
func (r *Registry) UpdateBalance(number int64, amount any) (Snapshot, error) {
	return r.mutate(number, func(a models.BankAccount) error {
		f, err := models.ParseAmount(amount)
		if err != nil {
			return err
		}
		a.UpdateBalance(f)
		return nil
	})
}

func (r *Registry) ServiceCharges(number int64) (float64, error) {
	var out float64
	err := r.with(number, func(a models.BankAccount) error {
		out = a.ServiceCharges()
		return nil
	})
	return out, err
}

// Close releases the account. Its number becomes free again.
func (r *Registry) Close(number int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accts[number]; !ok {
		return fmt.Errorf("account %d: %w", number, ErrNotFound)
	}
	delete(r.accts, number)
	return nil
}

func (r *Registry) mutate(number int64, fn func(models.BankAccount) error) (Snapshot, error) {
	var out Snapshot
	err := r.with(number, func(a models.BankAccount) error {
		if err := fn(a); err != nil {
			return err
		}
		out = snapshot(a)
		return nil
	})
	return out, err
}

func (r *Registry) with(number int64, fn func(models.BankAccount) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accts[number]
	if !ok {
		return fmt.Errorf("account %d: %w", number, ErrNotFound)
	}
	return fn(a)
}
