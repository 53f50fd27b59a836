package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/wareflow/wms_backend/internal/core/domain"
	portsrepo "github.com/wareflow/wms_backend/internal/core/ports/repositories"
	portssvc "github.com/wareflow/wms_backend/internal/core/ports/services"
	"github.com/wareflow/wms_backend/internal/dto"
	"github.com/wareflow/wms_backend/internal/middleware"
)

// MasterDataService serves ERP reference data through a cache. An ERP failure
// is surfaced as-is; stale or made-up data is never substituted. Cache
// failures are logged and ignored so a broken cache degrades to direct ERP
// reads instead of taking the endpoint down.
type MasterDataService struct {
	requestRepo portsrepo.TransferRequestRepositoryFacade
	erpClient   portssvc.ERPClient
	cache       portssvc.MasterDataCache
	cacheTTL    time.Duration
}

// NewMasterDataService creates a new master data service.
func NewMasterDataService(
	requestRepo portsrepo.TransferRequestRepositoryFacade,
	erpClient portssvc.ERPClient,
	cache portssvc.MasterDataCache,
	cacheTTL time.Duration,
) *MasterDataService {
	if cacheTTL <= 0 {
		cacheTTL = 15 * time.Minute
	}
	return &MasterDataService{
		requestRepo: requestRepo,
		erpClient:   erpClient,
		cache:       cache,
		cacheTTL:    cacheTTL,
	}
}

// Ensure MasterDataService implements portssvc.MasterDataSvcFacade
var _ portssvc.MasterDataSvcFacade = (*MasterDataService)(nil)

// GetWarehouses lists warehouse master data, cache first.
func (s *MasterDataService) GetWarehouses(ctx context.Context) ([]domain.Warehouse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if s.cache != nil {
		warehouses, found, err := s.cache.GetWarehouses(ctx)
		if err != nil {
			logger.Warn("Warehouse cache read failed", slog.String("error", err.Error()))
		} else if found {
			return warehouses, nil
		}
	}

	warehouses, err := s.erpClient.FetchWarehouses(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetWarehouses(ctx, warehouses, s.cacheTTL); err != nil {
			logger.Warn("Warehouse cache write failed", slog.String("error", err.Error()))
		}
	}
	return warehouses, nil
}

// GetBins lists bin locations of a warehouse, cache first.
func (s *MasterDataService) GetBins(ctx context.Context, warehouseCode string) ([]domain.BinLocation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if s.cache != nil {
		bins, found, err := s.cache.GetBins(ctx, warehouseCode)
		if err != nil {
			logger.Warn("Bin cache read failed", slog.String("warehouse", warehouseCode), slog.String("error", err.Error()))
		} else if found {
			return bins, nil
		}
	}

	bins, err := s.erpClient.FetchBinLocations(ctx, warehouseCode)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetBins(ctx, warehouseCode, bins, s.cacheTTL); err != nil {
			logger.Warn("Bin cache write failed", slog.String("warehouse", warehouseCode), slog.String("error", err.Error()))
		}
	}
	return bins, nil
}

// GetBatches lists available batches for an item, cache first.
func (s *MasterDataService) GetBatches(ctx context.Context, itemCode string) ([]domain.Batch, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if s.cache != nil {
		batches, found, err := s.cache.GetBatches(ctx, itemCode)
		if err != nil {
			logger.Warn("Batch cache read failed", slog.String("item_code", itemCode), slog.String("error", err.Error()))
		} else if found {
			return batches, nil
		}
	}

	batches, err := s.erpClient.FetchBatches(ctx, itemCode)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetBatches(ctx, itemCode, batches, s.cacheTTL); err != nil {
			logger.Warn("Batch cache write failed", slog.String("item_code", itemCode), slog.String("error", err.Error()))
		}
	}
	return batches, nil
}

// SyncTransferRequests pulls open transfer requests from the ERP into the
// local reference table and returns how many were synced.
func (s *MasterDataService) SyncTransferRequests(ctx context.Context, actorID string) (int, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	requests, err := s.erpClient.FetchOpenTransferRequests(ctx)
	if err != nil {
		logger.Error("ERP transfer request fetch failed", slog.String("error", err.Error()))
		return 0, err
	}

	for i := range requests {
		requests[i].RequestID = uuid.NewString()
	}

	if err := s.requestRepo.UpsertRequests(ctx, requests); err != nil {
		return 0, err
	}

	logger.Info("Transfer requests synced", slog.Int("count", len(requests)), slog.String("actor_id", actorID))
	return len(requests), nil
}

// ListTransferRequests lists synced transfer requests.
func (s *MasterDataService) ListTransferRequests(ctx context.Context, params dto.ListTransferRequestsParams) (*dto.ListTransferRequestsResponse, error) {
	requests, nextToken, err := s.requestRepo.ListRequests(ctx, params.OnlyOpen, params.Limit, params.NextToken)
	if err != nil {
		return nil, err
	}
	responses := make([]dto.TransferRequestResponse, len(requests))
	for i := range requests {
		responses[i] = dto.ToTransferRequestResponse(&requests[i])
	}
	return &dto.ListTransferRequestsResponse{Requests: responses, NextToken: nextToken}, nil
}
