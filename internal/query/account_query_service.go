package query

import (
	"github.com/eaglebank/banking/internal/repository"
	"github.com/eaglebank/banking/shared/cqrs"
	"github.com/eaglebank/banking/shared/models"
)

type AccountQueryService struct {
	repo *repository.AccountRepository
}

func NewAccountQueryService(repo *repository.AccountRepository) *AccountQueryService {
	return &AccountQueryService{repo: repo}
}

// GetAccount returns the current view of one account; it never mutates.
func (s *AccountQueryService) GetAccount(q cqrs.GetAccountQuery) (*models.AccountView, error) {
	acct, err := s.repo.GetAccount(q.SessionID, q.AccountType)
	if err != nil {
		return nil, err
	}
	return repository.AccountToView(q.SessionID, acct), nil
}

func (s *AccountQueryService) ListAccounts(q cqrs.ListAccountsQuery) ([]models.AccountView, error) {
	sess, err := s.repo.GetSession(q.SessionID)
	if err != nil {
		return nil, err
	}
	return repository.SessionToView(sess).Accounts, nil
}
