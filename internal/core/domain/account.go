package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// Side indicates which posting side grows an account's balance.
type Side string

const (
	DebitSide  Side = "DEBIT"
	CreditSide Side = "CREDIT"
)

// Account represents a general-ledger account.
// AccountType is immutable once set: updates never touch it, so historical
// postings keep their sign convention.
type Account struct {
	AccountID    string            `json:"accountID"`    // Primary Key (UUID)
	Code         string            `json:"code"`         // Unique display-ordering key (e.g., "1000")
	AccountType  AccountType       `json:"accountType"`  // ASSET, LIABILITY, etc.
	CurrencyCode string            `json:"currencyCode"` // FK -> currencies.currency_code
	Names        map[string]string `json:"names"`        // Display name per locale (e.g., "en" -> "Cash")
	Description  string            `json:"description"`  // Nullable user description
	IsActive     bool              `json:"isActive"`     // Soft-disable flag; referenced accounts are never deleted
	AuditFields
}

// Name returns the display name for locale, falling back to "en" and then
// to any available name.
func (a Account) Name(locale string) string {
	if name, ok := a.Names[locale]; ok {
		return name
	}
	if name, ok := a.Names["en"]; ok {
		return name
	}
	for _, name := range a.Names {
		return name
	}
	return a.Code
}
