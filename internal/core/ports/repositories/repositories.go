package repositories

// RepositoryProvider groups the repository implementations handed to the
// service layer at construction time. No process-wide singletons.
type RepositoryProvider struct {
	AccountRepo     AccountRepositoryWithTx
	TransactionRepo TransactionRepositoryFacade
	LedgerRepo      LedgerRepositoryFacade
	UserRepo        UserRepositoryFacade
}
