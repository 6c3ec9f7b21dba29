package services

import (
	portsrepo "github.com/openbooks-app/openbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/openbooks-app/openbooks_backend/internal/core/ports/services"
)

// NewServiceContainer wires all services with their repository dependencies.
// defaultLocale drives display-name resolution in reports.
func NewServiceContainer(repos portsrepo.RepositoryProvider, defaultLocale string) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Currency = NewCurrencyService(repos.CurrencyRepo)
	container.Account = NewAccountService(repos.AccountRepo, repos.CurrencyRepo)
	container.ExchangeRate = NewExchangeRateService(repos.ExchangeRateRepo, container.Currency)
	container.Entry = NewJournalService(repos.EntryRepo, container.Account, container.Currency)
	container.Ledger = NewLedgerService(repos.EntryRepo, container.Account)
	container.Reporting = NewReportingService(repos.ReportingRepo, defaultLocale)

	return container
}
