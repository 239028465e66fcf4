package services

import (
	portsrepo "github.com/ledgerkeep/ledgerkeep/internal/core/ports/repositories"
	portssvc "github.com/ledgerkeep/ledgerkeep/internal/core/ports/services"
)

// NewServiceContainer wires every service from the repository provider.
func NewServiceContainer(repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		AccountSvc: NewAccountService(repos.AccountRepo),
		PartySvc:   NewPartyService(repos.PartyRepo, repos.ReportingRepo),
		JournalSvc: NewJournalService(repos.JournalRepo, repos.AccountRepo, repos.PartyRepo),
		BalanceSvc: NewBalanceService(repos.AccountRepo, repos.PartyRepo, repos.ReportingRepo),
	}
}
