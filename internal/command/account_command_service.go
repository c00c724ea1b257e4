package command

import (
	"context"
	"errors"

	"github.com/eaglebank/banking/internal/account"
	"github.com/eaglebank/banking/internal/repository"
	"github.com/eaglebank/banking/shared/cqrs"
	"github.com/eaglebank/banking/shared/events"
	"github.com/eaglebank/banking/shared/models"
	"github.com/eaglebank/banking/shared/utils"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Publisher delivers balance notifications.
type Publisher interface {
	Publish(ctx context.Context, channel, eventType string, data any) error
}

// AccountCommandService mutates session accounts and announces every
// committed balance change.
type AccountCommandService struct {
	repo      *repository.AccountRepository
	bank      *account.Bank
	publisher Publisher
	logger    *zap.Logger
}

func NewAccountCommandService(
	repo *repository.AccountRepository,
	bank *account.Bank,
	publisher Publisher,
	logger *zap.Logger,
) *AccountCommandService {
	return &AccountCommandService{
		repo:      repo,
		bank:      bank,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *AccountCommandService) OpenSession(cqrs.OpenSessionCommand) (*models.SessionView, error) {
	sess := s.repo.OpenSession()
	s.logger.Info("session opened", zap.String("session_id", sess.ID))
	s.publish(sess.ID, events.SessionOpened, events.SessionEvent{SessionID: sess.ID})
	return repository.SessionToView(sess), nil
}

func (s *AccountCommandService) CloseSession(cmd cqrs.CloseSessionCommand) error {
	if err := s.repo.CloseSession(cmd.SessionID); err != nil {
		return err
	}
	s.logger.Info("session closed", zap.String("session_id", cmd.SessionID))
	s.publish(cmd.SessionID, events.SessionClosed, events.SessionEvent{SessionID: cmd.SessionID})
	return nil
}

// Deposit credits the account through the bank.
func (s *AccountCommandService) Deposit(cmd cqrs.DepositCommand) (*models.AccountView, error) {
	acct, err := s.repo.GetAccount(cmd.SessionID, cmd.AccountType)
	if err != nil {
		return nil, err
	}
	balance, err := s.bank.Credit(cmd.Amount, acct)
	if err != nil {
		s.rejected(cmd.SessionID, acct, events.OperationDeposit, cmd.Amount, err)
		return nil, err
	}
	return s.committed(cmd.SessionID, acct, events.OperationDeposit, cmd.Amount, balance), nil
}

// Withdraw debits the account if its minimum balance survives.
func (s *AccountCommandService) Withdraw(cmd cqrs.WithdrawCommand) (*models.AccountView, error) {
	acct, err := s.repo.GetAccount(cmd.SessionID, cmd.AccountType)
	if err != nil {
		return nil, err
	}
	balance, err := acct.Debit(cmd.Amount)
	if err != nil {
		s.rejected(cmd.SessionID, acct, events.OperationWithdrawal, cmd.Amount, err)
		return nil, err
	}
	return s.committed(cmd.SessionID, acct, events.OperationWithdrawal, cmd.Amount.Neg(), balance), nil
}

func (s *AccountCommandService) ApplyInterest(cmd cqrs.ApplyInterestCommand) (*models.AccountView, error) {
	acct, err := s.repo.GetAccount(cmd.SessionID, cmd.AccountType)
	if err != nil {
		return nil, err
	}
	interest, balance, err := acct.AccrueInterest()
	if err != nil {
		s.rejected(cmd.SessionID, acct, events.OperationInterest, decimal.Zero, err)
		return nil, err
	}
	return s.committed(cmd.SessionID, acct, events.OperationInterest, interest, balance), nil
}

// balance is the value the mutation left while it held the account lock.
func (s *AccountCommandService) committed(sessionID string, acct *account.Account, op string, change, balance decimal.Decimal) *models.AccountView {
	view := repository.AccountViewAt(sessionID, acct, balance)
	s.logger.Info("balance updated",
		zap.String("session_id", sessionID),
		zap.String("account_type", view.AccountType),
		zap.String("operation", op),
		zap.String("change", utils.FormatAmount(change)),
		zap.String("balance", view.Balance),
	)
	s.publish(sessionID, events.BalanceUpdated, events.BalanceUpdatedEvent{
		SessionID:   sessionID,
		AccountType: view.AccountType,
		Operation:   op,
		Change:      utils.FormatAmount(change),
		NewBalance:  view.Balance,
	})
	return view
}

func (s *AccountCommandService) rejected(sessionID string, acct *account.Account, op string, amount decimal.Decimal, err error) {
	level := s.logger.Info
	if !isBusinessRule(err) {
		level = s.logger.Error
	}
	level("operation rejected",
		zap.String("session_id", sessionID),
		zap.String("account_type", acct.Kind().String()),
		zap.String("operation", op),
		zap.String("amount", amount.String()),
		zap.String("balance", utils.FormatAmount(acct.Balance())),
		zap.Error(err),
	)
}

// publish is fire-and-forget: the balance change is already committed.
func (s *AccountCommandService) publish(sessionID, eventType string, data any) {
	if err := s.publisher.Publish(context.Background(), events.BalanceChannel(sessionID), eventType, data); err != nil {
		s.logger.Warn("failed to publish event",
			zap.String("type", eventType),
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
	}
}

func isBusinessRule(err error) bool {
	return errors.Is(err, account.ErrInvalidAmount) ||
		errors.Is(err, account.ErrInsufficientFunds) ||
		errors.Is(err, account.ErrInterestNotSupported)
}
