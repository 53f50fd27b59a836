package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/wareflow/wms_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	transferRepo := newPgxTransferRepository(dbPool)
	pickListRepo := newPgxPickListRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)
	transferRequestRepo := newPgxTransferRequestRepository(dbPool)

	return portsrepo.RepositoryProvider{
		TransferRepo:        transferRepo,
		PickListRepo:        pickListRepo,
		UserRepo:            userRepo,
		TransferRequestRepo: transferRequestRepo,
	}
}
