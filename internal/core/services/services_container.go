package services

import (
	portsrepo "github.com/BalansDev/branch_accounting_app/internal/core/ports/repositories"
	portssvc "github.com/BalansDev/branch_accounting_app/internal/core/ports/services"
	"github.com/BalansDev/branch_accounting_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Receivable = NewReceivableServiceImpl(repos.ReceivableRepo, cfg.Branches, cfg.DefaultBranch)
	container.Payable = NewPayableServiceImpl(repos.PayableRepo, cfg.Branches, cfg.DefaultBranch)

	// The balance report reads both ledgers but never writes.
	container.Balance = NewBalanceServiceImpl(repos.ReceivableRepo, repos.PayableRepo, cfg.Branches)

	container.Reminder = NewReminderServiceImpl(repos.ReminderRepo)
	container.User = NewUserServiceImpl(repos.UserRepo)

	container.Token = NewTokenService(cfg)
	container.GoogleAuth = NewGoogleOAuthHandlerService(cfg)

	return container
}
