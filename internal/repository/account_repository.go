package repository

import (
	"fmt"
	"time"

	"github.com/eaglebank/banking/internal/account"
	"github.com/eaglebank/banking/internal/session"
	"github.com/eaglebank/banking/shared/models"
	"github.com/eaglebank/banking/shared/utils"
	"github.com/shopspring/decimal"
)

// AccountRepository resolves accounts by session and account type. Accounts
// live only in the in-memory session registry.
type AccountRepository struct {
	sessions *session.Registry
}

func NewAccountRepository(sessions *session.Registry) *AccountRepository {
	return &AccountRepository{sessions: sessions}
}

func (r *AccountRepository) OpenSession() *session.Session {
	return r.sessions.Open()
}

func (r *AccountRepository) CloseSession(sessionID string) error {
	return r.sessions.Close(sessionID)
}

func (r *AccountRepository) GetSession(sessionID string) (*session.Session, error) {
	return r.sessions.Get(sessionID)
}

// GetAccount returns the live account; callers mutate it directly.
func (r *AccountRepository) GetAccount(sessionID, accountType string) (*account.Account, error) {
	kind, err := account.ParseKind(accountType)
	if err != nil {
		return nil, err
	}
	a, err := r.sessions.Account(sessionID, kind)
	if err != nil {
		return nil, fmt.Errorf("get %s account: %w", kind, err)
	}
	return a, nil
}

// AccountToView snapshots an account into its read projection.
func AccountToView(sessionID string, a *account.Account) *models.AccountView {
	return AccountViewAt(sessionID, a, a.Balance())
}

// AccountViewAt projects a with a balance the caller already observed, such
// as the one a mutation returned while holding the account lock.
func AccountViewAt(sessionID string, a *account.Account, balance decimal.Decimal) *models.AccountView {
	kind := a.Kind()
	view := &models.AccountView{
		SessionID:      sessionID,
		AccountType:    kind.String(),
		Balance:        utils.FormatAmount(balance),
		MinimumBalance: utils.FormatAmount(a.MinimumBalance()),
		AsOf:           time.Now().UTC(),
	}
	if kind.AccruesInterest() {
		view.InterestRate = kind.InterestRate().String()
	}
	return view
}

// SessionToView lists the session's accounts, savings first.
func SessionToView(s *session.Session) *models.SessionView {
	view := &models.SessionView{ID: s.ID, CreatedAt: s.CreatedAt}
	for _, kind := range account.Kinds() {
		a, _ := s.Account(kind)
		view.Accounts = append(view.Accounts, *AccountToView(s.ID, a))
	}
	return view
}
