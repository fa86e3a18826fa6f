package repositories

// RepositoryProvider holds instances of all the application repositories.
type RepositoryProvider struct {
	AccountRepo   AccountRepository
	JournalRepo   JournalRepositoryWithTx
	ReportingRepo ReportingRepository
}
