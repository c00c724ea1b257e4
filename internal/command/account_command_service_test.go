package command

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/eaglebank/banking/internal/account"
	"github.com/eaglebank/banking/internal/repository"
	"github.com/eaglebank/banking/internal/session"
	"github.com/eaglebank/banking/shared/cqrs"
	"github.com/eaglebank/banking/shared/events"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ---- fakes ----

type published struct {
	channel   string
	eventType string
	data      any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []published
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, channel, eventType string, data any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, published{channel: channel, eventType: eventType, data: data})
	return p.err
}

func (p *recordingPublisher) last() published {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.events[len(p.events)-1]
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

// ---- helpers ----

func newService(t *testing.T) (*AccountCommandService, *recordingPublisher, string) {
	t.Helper()
	pub := &recordingPublisher{}
	svc := NewAccountCommandService(
		repository.NewAccountRepository(session.NewRegistry()),
		account.NewBank(),
		pub,
		zap.NewNop(),
	)
	view, err := svc.OpenSession(cqrs.OpenSessionCommand{})
	if err != nil {
		t.Fatal(err)
	}
	return svc, pub, view.ID
}

func amt(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func deposit(t *testing.T, svc *AccountCommandService, sessionID, accountType, amount string) {
	t.Helper()
	if _, err := svc.Deposit(cqrs.DepositCommand{SessionID: sessionID, AccountType: accountType, Amount: amt(amount)}); err != nil {
		t.Fatalf("deposit %s into %s: %v", amount, accountType, err)
	}
}

// ---- tests ----

func TestOpenSession(t *testing.T) {
	svc, pub, id := newService(t)
	if id == "" {
		t.Fatal("session id should be set")
	}
	if got := pub.last(); got.eventType != events.SessionOpened || got.channel != events.BalanceChannel(id) {
		t.Fatalf("unexpected event: %+v", got)
	}
	if err := svc.CloseSession(cqrs.CloseSessionCommand{SessionID: id}); err != nil {
		t.Fatal(err)
	}
	if err := svc.CloseSession(cqrs.CloseSessionCommand{SessionID: id}); !errors.Is(err, session.ErrSessionNotFound) {
		t.Fatalf("want ErrSessionNotFound, got %v", err)
	}
}

func TestDeposit(t *testing.T) {
	svc, pub, id := newService(t)

	view, err := svc.Deposit(cqrs.DepositCommand{SessionID: id, AccountType: "savings", Amount: amt("100")})
	if err != nil {
		t.Fatal(err)
	}
	if view.Balance != "100.00" {
		t.Fatalf("balance=%s want 100.00", view.Balance)
	}
	ev, ok := pub.last().data.(events.BalanceUpdatedEvent)
	if !ok || ev.Operation != events.OperationDeposit || ev.Change != "100.00" || ev.NewBalance != "100.00" {
		t.Fatalf("unexpected event: %+v", pub.last())
	}
}

func TestDepositRejectsNonPositive(t *testing.T) {
	svc, pub, id := newService(t)
	before := pub.count()
	_, err := svc.Deposit(cqrs.DepositCommand{SessionID: id, AccountType: "current", Amount: amt("0")})
	if !errors.Is(err, account.ErrInvalidAmount) {
		t.Fatalf("want ErrInvalidAmount, got %v", err)
	}
	if pub.count() != before {
		t.Fatal("rejected deposit must not publish")
	}
}

func TestWithdraw(t *testing.T) {
	tests := []struct {
		name        string
		accountType string
		seed        string
		amount      string
		wantErr     error
		wantBalance string
	}{
		{name: "savings keeps minimum", accountType: "savings", seed: "100", amount: "40", wantBalance: "60.00"},
		{name: "savings below minimum", accountType: "savings", seed: "100", amount: "60", wantErr: account.ErrInsufficientFunds, wantBalance: "100.00"},
		{name: "current to minimum", accountType: "current", seed: "250", amount: "50", wantBalance: "200.00"},
		{name: "current past minimum", accountType: "current", seed: "250", amount: "51", wantErr: account.ErrInsufficientFunds, wantBalance: "250.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, pub, id := newService(t)
			deposit(t, svc, id, tt.accountType, tt.seed)
			before := pub.count()

			view, err := svc.Withdraw(cqrs.WithdrawCommand{SessionID: id, AccountType: tt.accountType, Amount: amt(tt.amount)})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err=%v want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil {
				if view.Balance != tt.wantBalance {
					t.Fatalf("balance=%s want %s", view.Balance, tt.wantBalance)
				}
				ev := pub.last().data.(events.BalanceUpdatedEvent)
				if ev.Change != "-"+amt(tt.amount).StringFixed(2) {
					t.Fatalf("change=%s", ev.Change)
				}
				return
			}
			if pub.count() != before {
				t.Fatal("rejected withdrawal must not publish")
			}
			acct, _ := svc.repo.GetAccount(id, tt.accountType)
			if got := acct.Balance().StringFixed(2); got != tt.wantBalance {
				t.Fatalf("balance=%s want %s", got, tt.wantBalance)
			}
		})
	}
}

func TestApplyInterest(t *testing.T) {
	svc, pub, id := newService(t)
	deposit(t, svc, id, "savings", "100")

	view, err := svc.ApplyInterest(cqrs.ApplyInterestCommand{SessionID: id, AccountType: "savings"})
	if err != nil {
		t.Fatal(err)
	}
	if view.Balance != "105.00" {
		t.Fatalf("balance=%s want 105.00", view.Balance)
	}
	if ev := pub.last().data.(events.BalanceUpdatedEvent); ev.Change != "5.00" || ev.Operation != events.OperationInterest {
		t.Fatalf("unexpected event: %+v", ev)
	}

	view, err = svc.ApplyInterest(cqrs.ApplyInterestCommand{SessionID: id, AccountType: "savings"})
	if err != nil {
		t.Fatal(err)
	}
	if view.Balance != "110.25" {
		t.Fatalf("compounded balance=%s want 110.25", view.Balance)
	}
}

func TestApplyInterestOnCurrent(t *testing.T) {
	svc, _, id := newService(t)
	deposit(t, svc, id, "current", "300")
	if _, err := svc.ApplyInterest(cqrs.ApplyInterestCommand{SessionID: id, AccountType: "current"}); !errors.Is(err, account.ErrInterestNotSupported) {
		t.Fatalf("want ErrInterestNotSupported, got %v", err)
	}
}

func TestUnknownSessionAndAccount(t *testing.T) {
	svc, _, id := newService(t)
	if _, err := svc.Deposit(cqrs.DepositCommand{SessionID: "missing", AccountType: "savings", Amount: amt("1")}); !errors.Is(err, session.ErrSessionNotFound) {
		t.Fatalf("want ErrSessionNotFound, got %v", err)
	}
	if _, err := svc.Withdraw(cqrs.WithdrawCommand{SessionID: id, AccountType: "business", Amount: amt("1")}); !errors.Is(err, account.ErrUnknownKind) {
		t.Fatalf("want ErrUnknownKind, got %v", err)
	}
}

func TestPublishFailureDoesNotFailCommand(t *testing.T) {
	svc, pub, id := newService(t)
	pub.err = errors.New("redis down")
	view, err := svc.Deposit(cqrs.DepositCommand{SessionID: id, AccountType: "savings", Amount: amt("20")})
	if err != nil {
		t.Fatalf("publish failure leaked: %v", err)
	}
	if view.Balance != "20.00" {
		t.Fatalf("balance=%s", view.Balance)
	}
}

func TestConcurrentDepositsReportOwnBalance(t *testing.T) {
	svc, pub, id := newService(t)
	const workers = 50

	var (
		mu    sync.Mutex
		views = make(map[string]bool)
		wg    sync.WaitGroup
	)
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			view, err := svc.Deposit(cqrs.DepositCommand{SessionID: id, AccountType: "savings", Amount: amt("1")})
			if err != nil {
				t.Errorf("deposit: %v", err)
				return
			}
			mu.Lock()
			views[view.Balance] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	if len(views) != workers {
		t.Fatalf("distinct returned balances=%d want %d", len(views), workers)
	}

	announced := make(map[string]bool)
	pub.mu.Lock()
	for _, e := range pub.events {
		if ev, ok := e.data.(events.BalanceUpdatedEvent); ok {
			announced[ev.NewBalance] = true
		}
	}
	pub.mu.Unlock()
	if len(announced) != workers || !announced["50.00"] {
		t.Fatalf("distinct published balances=%d want %d (50.00 present=%v)", len(announced), workers, announced["50.00"])
	}
}
