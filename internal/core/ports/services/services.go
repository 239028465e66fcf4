package services

// ServiceContainer bundles the concrete services handed to the handlers
// at wiring time.
type ServiceContainer struct {
	AccountSvc AccountSvcFacade
	PartySvc   PartySvcFacade
	JournalSvc JournalSvcFacade
	BalanceSvc BalanceSvcFacade
}
