package services

// ServiceContainer groups the service facades handed to the HTTP layer.
type ServiceContainer struct {
	User           UserSvcFacade
	Account        AccountSvcFacade
	Transfer       TransferSvcFacade
	Reconciliation ReconciliationSvcFacade
}
