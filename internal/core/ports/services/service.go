package services

// ServiceContainer holds all service facades wired at startup.
type ServiceContainer struct {
	Account      AccountSvcFacade
	Currency     CurrencySvcFacade
	ExchangeRate ExchangeRateSvcFacade
	Entry        EntrySvcFacade
	Ledger       LedgerSvcFacade
	Reporting    ReportingSvcFacade
}
