package events

import "time"

// Event types
const (
	SessionOpened  = "session.opened"
	SessionClosed  = "session.closed"
	BalanceUpdated = "balance.updated"
)

// Operations carried by BalanceUpdatedEvent.
const (
	OperationDeposit    = "deposit"
	OperationWithdrawal = "withdrawal"
	OperationInterest   = "interest"
)

const balanceChannelPrefix = "balance.events."

// BalanceChannel is the pub/sub channel for one session's notifications.
func BalanceChannel(sessionID string) string {
	return balanceChannelPrefix + sessionID
}

// Base event structure
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

type SessionEvent struct {
	SessionID string `json:"sessionId"`
}

// BalanceUpdatedEvent is published after a committed balance change.
// Amounts are two-decimal strings.
type BalanceUpdatedEvent struct {
	SessionID   string `json:"sessionId"`
	AccountType string `json:"accountType"`
	Operation   string `json:"operation"`
	Change      string `json:"change"`
	NewBalance  string `json:"newBalance"`
}
