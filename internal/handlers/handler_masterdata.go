package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/wareflow/wms_backend/internal/core/ports/services"
	"github.com/wareflow/wms_backend/internal/dto"
	"github.com/wareflow/wms_backend/internal/middleware"
)

// masterDataHandler handles HTTP requests for ERP reference data.
type masterDataHandler struct {
	masterDataService portssvc.MasterDataSvcFacade
}

func newMasterDataHandler(ms portssvc.MasterDataSvcFacade) *masterDataHandler {
	return &masterDataHandler{
		masterDataService: ms,
	}
}

// registerMasterDataRoutes registers warehouse, bin, batch and transfer
// request routes.
func registerMasterDataRoutes(rg *gin.RouterGroup, masterDataService portssvc.MasterDataSvcFacade) {
	h := newMasterDataHandler(masterDataService)

	rg.GET("/warehouses", h.listWarehouses)
	rg.GET("/warehouses/:code/bins", h.listBins)
	rg.GET("/items/:itemCode/batches", h.listBatches)

	requests := rg.Group("/transfer-requests")
	{
		requests.GET("", h.listTransferRequests)
		requests.POST("/sync", h.syncTransferRequests)
	}
}

// listWarehouses godoc
// @Summary List warehouses
// @Description Lists warehouse master data from the ERP, cached
// @Tags masterdata
// @Produce json
// @Success 200 {array} domain.Warehouse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 502 {object} ErrorResponse "ERP unavailable"
// @Security BearerAuth
// @Router /warehouses [get]
func (h *masterDataHandler) listWarehouses(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	warehouses, err := h.masterDataService.GetWarehouses(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, warehouses)
}

// listBins godoc
// @Summary List bin locations of a warehouse
// @Description Lists bin locations for one warehouse from the ERP, cached
// @Tags masterdata
// @Produce json
// @Param code path string true "Warehouse code"
// @Success 200 {array} domain.BinLocation
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 502 {object} ErrorResponse "ERP unavailable"
// @Security BearerAuth
// @Router /warehouses/{code}/bins [get]
func (h *masterDataHandler) listBins(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	warehouseCode := c.Param("code")

	bins, err := h.masterDataService.GetBins(c.Request.Context(), warehouseCode)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, bins)
}

// listBatches godoc
// @Summary List batches of an item
// @Description Lists available batch numbers for one item from the ERP, cached
// @Tags masterdata
// @Produce json
// @Param itemCode path string true "Item code"
// @Success 200 {array} domain.Batch
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 502 {object} ErrorResponse "ERP unavailable"
// @Security BearerAuth
// @Router /items/{itemCode}/batches [get]
func (h *masterDataHandler) listBatches(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	itemCode := c.Param("itemCode")

	batches, err := h.masterDataService.GetBatches(c.Request.Context(), itemCode)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, batches)
}

// listTransferRequests godoc
// @Summary List synced ERP transfer requests
// @Description Lists transfer requests previously synced from the ERP
// @Tags masterdata
// @Produce json
// @Param limit query int false "Limit number of results" default(20)
// @Param nextToken query string false "Pagination token"
// @Param onlyOpen query bool false "Only open, unprocessed requests" default(true)
// @Success 200 {object} dto.ListTransferRequestsResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /transfer-requests [get]
func (h *masterDataHandler) listTransferRequests(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListTransferRequestsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.masterDataService.ListTransferRequests(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// syncTransferRequests godoc
// @Summary Sync open transfer requests from the ERP
// @Description Pulls all open ERP transfer requests into the local reference table
// @Tags masterdata
// @Produce json
// @Success 200 {object} map[string]int "Number of requests synced"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 502 {object} ErrorResponse "ERP unavailable"
// @Security BearerAuth
// @Router /transfer-requests/sync [post]
func (h *masterDataHandler) syncTransferRequests(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	count, err := h.masterDataService.SyncTransferRequests(c.Request.Context(), actorID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	logger.Info("Transfer requests synced", slog.Int("count", count))
	c.JSON(http.StatusOK, gin.H{"synced": count})
}
