package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/wareflow/wms_backend/internal/core/ports/services"
	"github.com/wareflow/wms_backend/internal/dto"
	"github.com/wareflow/wms_backend/internal/middleware"
)

// pickListHandler handles HTTP requests for pick lists synced from the ERP.
type pickListHandler struct {
	pickListService portssvc.PickListSvcFacade
}

func newPickListHandler(ps portssvc.PickListSvcFacade) *pickListHandler {
	return &pickListHandler{
		pickListService: ps,
	}
}

// registerPickListRoutes registers all pick list routes.
func registerPickListRoutes(rg *gin.RouterGroup, pickListService portssvc.PickListSvcFacade) {
	h := newPickListHandler(pickListService)

	pickLists := rg.Group("/picklists")
	{
		pickLists.GET("", h.listPickLists)
		pickLists.GET("/:id", h.getPickList)
		pickLists.POST("/sync/:absEntry", h.syncPickList)
	}

	pickLines := rg.Group("/picklist-lines")
	{
		pickLines.PUT("/:lineID", h.updateLinePick)
	}
}

// listPickLists godoc
// @Summary List pick lists
// @Description Retrieves a paginated list of locally synced pick list headers
// @Tags picklists
// @Produce json
// @Param limit query int false "Limit number of results" default(20)
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListPickListsResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /picklists [get]
func (h *pickListHandler) listPickLists(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListPickListsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.pickListService.ListPickLists(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getPickList godoc
// @Summary Get a pick list
// @Description Retrieves a pick list with its lines and bin allocations
// @Tags picklists
// @Produce json
// @Param id path string true "Pick list ID"
// @Success 200 {object} dto.PickListResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Pick list not found"
// @Security BearerAuth
// @Router /picklists/{id} [get]
func (h *pickListHandler) getPickList(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	pickListID := c.Param("id")

	pickList, err := h.pickListService.GetPickList(c.Request.Context(), pickListID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPickListResponse(pickList))
}

// syncPickList godoc
// @Summary Sync a pick list from the ERP
// @Description Pulls one pick list from the ERP by its AbsoluteEntry and upserts it locally
// @Tags picklists
// @Produce json
// @Param absEntry path int true "ERP pick list AbsoluteEntry"
// @Success 200 {object} dto.PickListResponse
// @Failure 400 {object} ErrorResponse "Invalid AbsoluteEntry"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 502 {object} ErrorResponse "ERP unavailable"
// @Security BearerAuth
// @Router /picklists/sync/{absEntry} [post]
func (h *pickListHandler) syncPickList(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	absEntry, err := strconv.Atoi(c.Param("absEntry"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "AbsoluteEntry must be an integer"})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	pickList, err := h.pickListService.SyncPickList(c.Request.Context(), absEntry, actorID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	logger.Info("Pick list synced", slog.Int("abs_entry", absEntry))
	c.JSON(http.StatusOK, dto.ToPickListResponse(pickList))
}

// updateLinePick godoc
// @Summary Record picking progress on a line
// @Description Updates the picked quantity and status of one pick list line
// @Tags picklists
// @Accept json
// @Produce json
// @Param lineID path string true "Pick list line ID"
// @Param pick body dto.UpdatePickRequest true "Picking progress"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Line not found"
// @Security BearerAuth
// @Router /picklist-lines/{lineID} [put]
func (h *pickListHandler) updateLinePick(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	lineID := c.Param("lineID")

	var req dto.UpdatePickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.pickListService.UpdateLinePick(c.Request.Context(), lineID, req, actorID); err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
