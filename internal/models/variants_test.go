package models

import (
	"errors"
	"testing"
	"time"
)

func TestChequingServiceCharges(t *testing.T) {
	cases := []struct {
		name    string
		balance float64
		limit   float64
		rate    float64
		want    float64
	}{
		{"above limit", 100, -100, 0.05, 0.50},
		{"at limit", -100, -100, 0.05, 0.50},
		{"below limit", -150, -100, 0.05, 3.00},
		{"positive limit shortfall", 200, 500, 0.1, 30.50},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewChequing(newTestAccount(tc.balance), tc.limit, tc.rate)
			if got := c.ServiceCharges(); got != tc.want {
				t.Fatalf("ServiceCharges() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSavingsServiceCharges(t *testing.T) {
	s := NewSavings(newTestAccount(50), 50)
	if got := s.ServiceCharges(); got != BaseServiceCharge {
		t.Fatalf("at minimum: got %v", got)
	}
	if _, err := s.Withdraw(0.01); err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if got := s.ServiceCharges(); got != 1.00 {
		t.Fatalf("below minimum: got %v, want 1.00", got)
	}
}

func TestInvestmentServiceCharges(t *testing.T) {
	young := NewInvestment(NewAccount(1, 1, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), 0, WithClock(fixedClock)), 2.55)
	if got := young.ServiceCharges(); got != 3.05 {
		t.Fatalf("young account: got %v, want 3.05", got)
	}
	old := NewInvestment(NewAccount(2, 1, time.Date(2010, 6, 1, 0, 0, 0, 0, time.UTC), 0, WithClock(fixedClock)), 2.55)
	if got := old.ServiceCharges(); got != BaseServiceCharge {
		t.Fatalf("old account: got %v, want base", got)
	}
	boundary := NewInvestment(NewAccount(3, 1, time.Date(2016, 3, 14, 0, 0, 0, 0, time.UTC), 0, WithClock(fixedClock)), 2.55)
	if got := boundary.ServiceCharges(); got != BaseServiceCharge {
		t.Fatalf("exactly ten years: got %v, want base", got)
	}
}

func TestVariantsShareBaseBehaviour(t *testing.T) {
	var acct BankAccount = NewSavings(newTestAccount(500), 0)
	if _, err := acct.Deposit(100); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if _, err := acct.Withdraw(200); err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if acct.Balance() != 400 {
		t.Fatalf("balance = %v, want 400", acct.Balance())
	}
	if acct.Kind() != KindSavings {
		t.Fatalf("kind = %s", acct.Kind())
	}
	if acct.String() != "Account Number: 1001 Balance: 400.00" {
		t.Fatalf("unexpected rendering %q", acct.String())
	}
}

func TestNewByKind(t *testing.T) {
	terms := Terms{OverdraftLimit: -50, OverdraftRate: 0.1, MinimumBalance: 25, ManagementFee: 1}
	for _, k := range []Kind{KindChequing, KindSavings, KindInvestment} {
		acct, err := New(k, newTestAccount(10), terms)
		if err != nil {
			t.Fatalf("New(%s): %v", k, err)
		}
		if acct.Kind() != k {
			t.Fatalf("New(%s) built %s", k, acct.Kind())
		}
	}
	if got := mustNew(t, KindChequing, terms).Terms(); got.MinimumBalance != 0 || got.OverdraftLimit != -50 {
		t.Fatalf("chequing terms leaked other fields: %+v", got)
	}
	if _, err := New("premium", newTestAccount(10), terms); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected invalid argument for unknown kind, got %v", err)
	}
}

func TestParseKind(t *testing.T) {
	if k, err := ParseKind(" Chequing "); err != nil || k != KindChequing {
		t.Fatalf("ParseKind = %q, %v", k, err)
	}
	if _, err := ParseKind("gold"); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}

func mustNew(t *testing.T, k Kind, terms Terms) BankAccount {
	t.Helper()
	acct, err := New(k, newTestAccount(10), terms)
	if err != nil {
		t.Fatalf("New(%s): %v", k, err)
	}
	return acct
}
