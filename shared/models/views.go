package models

import "time"

// AccountView is the read projection of one account inside a session.
// Monetary fields are rendered with two decimal places.
type AccountView struct {
	SessionID      string    `json:"sessionId"`
	AccountType    string    `json:"accountType"`
	Balance        string    `json:"balance"`
	MinimumBalance string    `json:"minimumBalance"`
	InterestRate   string    `json:"interestRate,omitempty"`
	AsOf           time.Time `json:"asOfTimestamp"`
}

// SessionView describes a session together with both of its accounts.
type SessionView struct {
	ID        string        `json:"id"`
	Accounts  []AccountView `json:"accounts"`
	CreatedAt time.Time     `json:"createdTimestamp"`
}
