package pgsql

import (
	portsrepo "github.com/BalansDev/branch_accounting_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ReceivableRepo: newPgxReceivableRepository(dbPool),
		PayableRepo:    newPgxPayableRepository(dbPool),
		ReminderRepo:   newPgxReminderRepository(dbPool),
		UserRepo:       newPgxUserRepository(dbPool),
	}
}
