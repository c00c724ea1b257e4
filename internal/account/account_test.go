package account

import (
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// funded returns an account of kind holding balance.
func funded(t *testing.T, kind Kind, balance string) *Account {
	t.Helper()
	a := New(kind)
	if err := a.Deposit(dec(balance)); err != nil {
		t.Fatalf("seed deposit %s: %v", balance, err)
	}
	return a
}

func assertBalance(t *testing.T, a *Account, want string) {
	t.Helper()
	if got := a.Balance(); !got.Equal(dec(want)) {
		t.Fatalf("balance=%s want=%s", got.StringFixed(2), want)
	}
}

func TestNewAccountStartsEmpty(t *testing.T) {
	for _, k := range Kinds() {
		a := New(k)
		if !a.Balance().IsZero() {
			t.Errorf("%s: balance=%s want 0", k, a.Balance())
		}
		if a.Kind() != k {
			t.Errorf("kind=%s want %s", a.Kind(), k)
		}
	}
}

func TestMinimumBalance(t *testing.T) {
	if got := NewSavings().MinimumBalance(); !got.Equal(dec("50")) {
		t.Errorf("savings minimum=%s want 50", got)
	}
	if got := NewCurrent().MinimumBalance(); !got.Equal(dec("200")) {
		t.Errorf("current minimum=%s want 200", got)
	}
}

func TestDeposit(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		wantErr error
		want    string
	}{
		{name: "positive amount is credited", amount: "100", want: "100"},
		{name: "fractional amount is credited exactly", amount: "0.01", want: "0.01"},
		{name: "zero is rejected", amount: "0", wantErr: ErrInvalidAmount, want: "0"},
		{name: "negative is rejected", amount: "-5", wantErr: ErrInvalidAmount, want: "0"},
	}
	for _, tt := range tests {
		for _, k := range Kinds() {
			t.Run(k.String()+"/"+tt.name, func(t *testing.T) {
				a := New(k)
				err := a.Deposit(dec(tt.amount))
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err=%v want %v", err, tt.wantErr)
				}
				assertBalance(t, a, tt.want)
			})
		}
	}
}

func TestWithdraw(t *testing.T) {
	tests := []struct {
		name    string
		kind    Kind
		start   string
		amount  string
		wantErr error
		want    string
	}{
		{name: "savings keeps minimum", kind: Savings, start: "100", amount: "40", want: "60"},
		{name: "savings would drop below minimum", kind: Savings, start: "100", amount: "60", wantErr: ErrInsufficientFunds, want: "100"},
		{name: "savings exactly to minimum", kind: Savings, start: "100", amount: "50", want: "50"},
		{name: "current exactly to minimum", kind: Current, start: "250", amount: "50", want: "200"},
		{name: "current one over the boundary", kind: Current, start: "250", amount: "51", wantErr: ErrInsufficientFunds, want: "250"},
		{name: "current from empty", kind: Current, start: "0.00", amount: "1", wantErr: ErrInsufficientFunds, want: "0"},
		{name: "zero amount", kind: Savings, start: "100", amount: "0", wantErr: ErrInvalidAmount, want: "100"},
		{name: "negative amount", kind: Current, start: "500", amount: "-10", wantErr: ErrInvalidAmount, want: "500"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := New(tt.kind)
			if s := dec(tt.start); s.IsPositive() {
				a = funded(t, tt.kind, tt.start)
			}
			err := a.Withdraw(dec(tt.amount))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err=%v want %v", err, tt.wantErr)
			}
			assertBalance(t, a, tt.want)
		})
	}
}

func TestWithdrawNeverBreaksMinimum(t *testing.T) {
	amounts := []string{"1", "10", "25.5", "49.99", "50", "75", "150", "1000"}
	for _, k := range Kinds() {
		a := funded(t, k, "300")
		for _, amt := range amounts {
			before := a.Balance()
			err := a.Withdraw(dec(amt))
			after := a.Balance()
			if err != nil && !after.Equal(before) {
				t.Fatalf("%s: failed withdrawal of %s changed balance %s -> %s", k, amt, before, after)
			}
			if err == nil && !after.Equal(before.Sub(dec(amt))) {
				t.Fatalf("%s: withdrawal of %s gave %s from %s", k, amt, after, before)
			}
			if after.LessThan(k.MinimumBalance()) {
				t.Fatalf("%s: balance %s below minimum %s", k, after, k.MinimumBalance())
			}
		}
	}
}

func TestCalculateInterest(t *testing.T) {
	a := funded(t, Savings, "100")
	interest, err := a.CalculateInterest()
	if err != nil {
		t.Fatal(err)
	}
	if !interest.Equal(dec("5")) {
		t.Fatalf("interest=%s want 5", interest)
	}
	assertBalance(t, a, "105")
	if got := a.Balance().StringFixed(2); got != "105.00" {
		t.Fatalf("formatted=%s want 105.00", got)
	}
}

func TestCalculateInterestCompounds(t *testing.T) {
	a := funded(t, Savings, "100")
	for i := 0; i < 2; i++ {
		if _, err := a.CalculateInterest(); err != nil {
			t.Fatal(err)
		}
	}
	// 100 * 1.05 * 1.05, not 100 * 1.10
	assertBalance(t, a, "110.25")
}

func TestCalculateInterestOnCurrent(t *testing.T) {
	a := funded(t, Current, "400")
	if _, err := a.CalculateInterest(); !errors.Is(err, ErrInterestNotSupported) {
		t.Fatalf("err=%v want ErrInterestNotSupported", err)
	}
	assertBalance(t, a, "400")
}

func TestConcurrentDeposits(t *testing.T) {
	a := NewCurrent()
	const workers = 100

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			if err := a.Deposit(dec("2.50")); err != nil {
				t.Errorf("deposit: %v", err)
			}
		}()
	}
	wg.Wait()
	assertBalance(t, a, "250")
}

func TestConcurrentWithdrawalsRespectMinimum(t *testing.T) {
	a := funded(t, Savings, "150")
	const workers = 50

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_ = a.Withdraw(dec("10"))
		}()
	}
	wg.Wait()
	// only ten 10.00 withdrawals fit between 150 and the 50 floor
	assertBalance(t, a, "50")
}

func TestCreditDebitReturnOwnBalance(t *testing.T) {
	a := NewSavings()
	const workers = 100

	var (
		mu   sync.Mutex
		seen = make(map[string]bool)
		wg   sync.WaitGroup
	)
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			bal, err := a.Credit(dec("1"))
			if err != nil {
				t.Errorf("credit: %v", err)
				return
			}
			mu.Lock()
			seen[bal.String()] = true
			mu.Unlock()
		}()
	}
	wg.Wait()
	// every credit observed the balance it produced: 1..100, each once
	if len(seen) != workers {
		t.Fatalf("distinct balances=%d want %d", len(seen), workers)
	}
	if !seen["100"] || !seen["1"] {
		t.Errorf("missing endpoints in %v", seen)
	}

	bal, err := a.Debit(dec("50"))
	if err != nil || !bal.Equal(dec("50")) {
		t.Errorf("debit: bal=%s err=%v want 50", bal, err)
	}
	if _, err := a.Debit(dec("0.01")); !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("debit below minimum: err=%v", err)
	}

	interest, bal, err := a.AccrueInterest()
	if err != nil || !interest.Equal(dec("2.5")) || !bal.Equal(dec("52.5")) {
		t.Errorf("accrue: interest=%s bal=%s err=%v", interest, bal, err)
	}
	if _, _, err := NewCurrent().AccrueInterest(); !errors.Is(err, ErrInterestNotSupported) {
		t.Errorf("accrue on current: err=%v", err)
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{in: "savings", want: Savings},
		{in: "Current", want: Current},
		{in: " SAVINGS ", want: Savings},
		{in: "business", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownKind) {
				t.Errorf("ParseKind(%q) err=%v want ErrUnknownKind", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseKind(%q)=%v,%v want %v", tt.in, got, err, tt.want)
		}
	}
}
