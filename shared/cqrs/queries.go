package cqrs

// GetAccountQuery fetches one account of a session.
type GetAccountQuery struct {
	SessionID   string
	AccountType string
}

// ListAccountsQuery fetches every account of a session.
type ListAccountsQuery struct {
	SessionID string
}
