package services

import (
	portsrepo "github.com/finvolt/banking-core/internal/core/ports/repositories"
	portssvc "github.com/finvolt/banking-core/internal/core/ports/services"
)

// ContainerConfig groups the service-level configuration injected from main.
type ContainerConfig struct {
	Auth     AuthConfig
	Transfer TransferConfig
}

// NewContainer creates a service container with properly initialized
// dependencies. Every handle is injected; nothing here is process-global.
func NewContainer(repos *portsrepo.RepositoryProvider, notifier portssvc.Notifier, cfg ContainerConfig) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		User:           NewUserService(repos.UserRepo, cfg.Auth),
		Account:        NewAccountService(repos.AccountRepo, repos.LedgerRepo),
		Transfer:       NewTransferService(repos.AccountRepo, repos.TransactionRepo, repos.LedgerRepo, notifier, cfg.Transfer),
		Reconciliation: NewReconciliationService(repos.AccountRepo, repos.LedgerRepo),
	}
}
