package services

import (
	"time"

	portsrepo "github.com/wareflow/wms_backend/internal/core/ports/repositories"
	portssvc "github.com/wareflow/wms_backend/internal/core/ports/services"
)

// NewServiceContainer wires all application services with their dependencies.
func NewServiceContainer(
	repos portsrepo.RepositoryProvider,
	erpClient portssvc.ERPClient,
	cache portssvc.MasterDataCache,
	cacheTTL time.Duration,
) *portssvc.ServiceContainer {
	validator := NewSerialValidator(erpClient)

	return &portssvc.ServiceContainer{
		Transfer:   NewTransferService(repos.TransferRepo, repos.TransferRequestRepo, repos.UserRepo, erpClient, validator),
		PickList:   NewPickListService(repos.PickListRepo, erpClient),
		User:       NewUserService(repos.UserRepo),
		MasterData: NewMasterDataService(repos.TransferRequestRepo, erpClient, cache, cacheTTL),
	}
}
