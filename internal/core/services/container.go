package services

import (
	portsrepo "github.com/finbooks/fin_books_app/internal/core/ports/repositories"
	portssvc "github.com/finbooks/fin_books_app/internal/core/ports/services"
)

// NewServiceContainer creates the service container with properly initialized
// dependencies. The registry is created first since the posting engine
// resolves accounts through it.
func NewServiceContainer(repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	registry := NewAccountRegistry(repos.AccountRepo)

	return &portssvc.ServiceContainer{
		Registry:  registry,
		Posting:   NewPostingService(repos.JournalRepo, registry),
		Reporting: NewReportingService(repos.AccountRepo, repos.ReportingRepo),
	}
}
