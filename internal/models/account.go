package models

// AccountType mirrors domain.AccountType for the accounts table.
type AccountType string

// Account is the database representation of a general-ledger account.
// Names is stored as a jsonb column keyed by locale.
type Account struct {
	AccountID    string            `db:"account_id"`
	Code         string            `db:"code"`
	AccountType  AccountType       `db:"account_type"`
	CurrencyCode string            `db:"currency_code"`
	Names        map[string]string `db:"names"`
	Description  string            `db:"description"`
	IsActive     bool              `db:"is_active"`
	AuditFields
}
