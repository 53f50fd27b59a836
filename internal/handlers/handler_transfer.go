package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/wareflow/wms_backend/internal/core/ports/services"
	"github.com/wareflow/wms_backend/internal/dto"
	"github.com/wareflow/wms_backend/internal/middleware"
)

// transferHandler handles HTTP requests for transfer documents and their
// QC workflow.
type transferHandler struct {
	transferService portssvc.TransferSvcFacade
}

// newTransferHandler creates a new transferHandler.
func newTransferHandler(ts portssvc.TransferSvcFacade) *transferHandler {
	return &transferHandler{
		transferService: ts,
	}
}

// RegisterTransferRoutes registers all transfer document routes. Line and
// serial routes sit outside the /transfers group because their IDs already
// identify the parent document.
func RegisterTransferRoutes(rg *gin.RouterGroup, transferService portssvc.TransferSvcFacade) {
	h := newTransferHandler(transferService)

	transfers := rg.Group("/transfers")
	{
		transfers.POST("", h.createTransfer)
		transfers.GET("", h.listTransfers)
		transfers.GET("/:id", h.getTransfer)
		transfers.DELETE("/:id", h.deleteTransfer)
		transfers.GET("/:id/history", h.getHistory)
		transfers.POST("/:id/submit", h.submitTransfer)
		transfers.POST("/:id/approve", h.approveTransfer)
		transfers.POST("/:id/reject", h.rejectTransfer)
		transfers.POST("/:id/reopen", h.reopenTransfer)
		transfers.POST("/:id/post", h.retryPost)
		transfers.POST("/:id/lines", h.addLine)
		transfers.POST("/:id/serial-lines", h.addSerialLine)
	}

	lines := rg.Group("/lines")
	{
		lines.DELETE("/:lineID", h.deleteLine)
	}

	serials := rg.Group("/serials")
	{
		serials.POST("/:serialID/revalidate", h.revalidateSerial)
		serials.DELETE("/:serialID", h.deleteSerial)
	}
}

// createTransfer godoc
// @Summary Create a draft transfer document
// @Description Creates a new draft transfer document against an open ERP transfer request
// @Tags transfers
// @Accept json
// @Produce json
// @Param transfer body dto.CreateTransferRequest true "Transfer details"
// @Success 201 {object} dto.TransferResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 409 {object} ErrorResponse "Transfer number already exists"
// @Security BearerAuth
// @Router /transfers [post]
func (h *transferHandler) createTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for create transfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	doc, err := h.transferService.CreateDocument(c.Request.Context(), req, actorID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	logger.Info("Transfer document created", slog.String("transfer_id", doc.TransferID), slog.String("transfer_number", doc.TransferNumber))
	c.JSON(http.StatusCreated, dto.ToTransferResponse(doc))
}

// getTransfer godoc
// @Summary Get a transfer document
// @Description Retrieves a transfer document with its lines and serial entries
// @Tags transfers
// @Produce json
// @Param id path string true "Transfer ID"
// @Success 200 {object} dto.TransferResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Transfer not found"
// @Security BearerAuth
// @Router /transfers/{id} [get]
func (h *transferHandler) getTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transferID := c.Param("id")

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	doc, err := h.transferService.GetDocument(c.Request.Context(), transferID, actorID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransferResponse(doc))
}

// listTransfers godoc
// @Summary List transfer documents
// @Description Lists the caller's transfer documents; QC users may filter by status across owners
// @Tags transfers
// @Produce json
// @Param limit query int false "Limit number of results" default(20)
// @Param nextToken query string false "Pagination token"
// @Param status query string false "Filter by workflow status (QC users only)"
// @Success 200 {object} dto.ListTransfersResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Security BearerAuth
// @Router /transfers [get]
func (h *transferHandler) listTransfers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListTransfersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	resp, err := h.transferService.ListDocuments(c.Request.Context(), actorID, params)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// deleteTransfer godoc
// @Summary Delete a draft transfer document
// @Description Deletes a draft transfer document with all lines and serial entries
// @Tags transfers
// @Produce json
// @Param id path string true "Transfer ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Transfer not found"
// @Failure 409 {object} ErrorResponse "Document is no longer a draft"
// @Security BearerAuth
// @Router /transfers/{id} [delete]
func (h *transferHandler) deleteTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transferID := c.Param("id")

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.transferService.DeleteDocument(c.Request.Context(), transferID, actorID); err != nil {
		respondServiceError(c, logger, err)
		return
	}

	logger.Info("Transfer document deleted", slog.String("transfer_id", transferID))
	c.Status(http.StatusNoContent)
}

// getHistory godoc
// @Summary Get the status history of a transfer document
// @Description Retrieves the full status audit trail in chronological order
// @Tags transfers
// @Produce json
// @Param id path string true "Transfer ID"
// @Success 200 {array} dto.HistoryResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Transfer not found"
// @Security BearerAuth
// @Router /transfers/{id}/history [get]
func (h *transferHandler) getHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transferID := c.Param("id")

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	history, err := h.transferService.GetHistory(c.Request.Context(), transferID, actorID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	responses := make([]dto.HistoryResponse, len(history))
	for i := range history {
		responses[i] = dto.ToHistoryResponse(&history[i])
	}
	c.JSON(http.StatusOK, responses)
}

// submitTransfer godoc
// @Summary Submit a draft transfer for QC review
// @Description Moves a draft document to submitted; requires at least one line and all serials validated
// @Tags transfers
// @Produce json
// @Param id path string true "Transfer ID"
// @Success 200 {object} dto.TransferResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Transfer not found"
// @Failure 409 {object} ErrorResponse "Invalid status transition"
// @Failure 422 {object} ErrorResponse "Unvalidated serial entries"
// @Security BearerAuth
// @Router /transfers/{id}/submit [post]
func (h *transferHandler) submitTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transferID := c.Param("id")

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	doc, err := h.transferService.Submit(c.Request.Context(), transferID, actorID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	logger.Info("Transfer submitted for QC", slog.String("transfer_id", transferID))
	c.JSON(http.StatusOK, dto.ToTransferResponse(doc))
}

// approveTransfer godoc
// @Summary Approve a submitted transfer
// @Description Moves a submitted document to qc_approved and posts it to the ERP
// @Tags transfers
// @Accept json
// @Produce json
// @Param id path string true "Transfer ID"
// @Param action body dto.QCActionRequest false "Optional QC notes"
// @Success 200 {object} dto.TransferResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Transfer not found"
// @Failure 409 {object} ErrorResponse "Invalid status transition"
// @Failure 502 {object} ErrorResponse "ERP post failed; document stays qc_approved"
// @Security BearerAuth
// @Router /transfers/{id}/approve [post]
func (h *transferHandler) approveTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transferID := c.Param("id")

	var req dto.QCActionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
			return
		}
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	doc, err := h.transferService.Approve(c.Request.Context(), transferID, actorID, req.Notes)
	if err != nil {
		// A failed ERP post leaves the document qc_approved; the caller can
		// retry the post without a second approval.
		respondServiceError(c, logger, err)
		return
	}

	logger.Info("Transfer approved and posted", slog.String("transfer_id", transferID))
	c.JSON(http.StatusOK, dto.ToTransferResponse(doc))
}

// rejectTransfer godoc
// @Summary Reject a submitted transfer
// @Description Moves a submitted document to rejected; a non-empty reason is required
// @Tags transfers
// @Accept json
// @Produce json
// @Param id path string true "Transfer ID"
// @Param action body dto.QCActionRequest true "Rejection reason in notes"
// @Success 200 {object} dto.TransferResponse
// @Failure 400 {object} ErrorResponse "Missing rejection reason"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Transfer not found"
// @Failure 409 {object} ErrorResponse "Invalid status transition"
// @Security BearerAuth
// @Router /transfers/{id}/reject [post]
func (h *transferHandler) rejectTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transferID := c.Param("id")

	var req dto.QCActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	doc, err := h.transferService.Reject(c.Request.Context(), transferID, actorID, req.Notes)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	logger.Info("Transfer rejected", slog.String("transfer_id", transferID))
	c.JSON(http.StatusOK, dto.ToTransferResponse(doc))
}

// reopenTransfer godoc
// @Summary Reopen a rejected transfer
// @Description Moves a rejected document back to draft for rework, clearing QC fields
// @Tags transfers
// @Produce json
// @Param id path string true "Transfer ID"
// @Success 200 {object} dto.TransferResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Transfer not found"
// @Failure 409 {object} ErrorResponse "Invalid status transition"
// @Security BearerAuth
// @Router /transfers/{id}/reopen [post]
func (h *transferHandler) reopenTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transferID := c.Param("id")

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	doc, err := h.transferService.Reopen(c.Request.Context(), transferID, actorID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	logger.Info("Transfer reopened for rework", slog.String("transfer_id", transferID))
	c.JSON(http.StatusOK, dto.ToTransferResponse(doc))
}

// retryPost godoc
// @Summary Retry the ERP post of an approved transfer
// @Description Re-attempts posting a qc_approved document to the ERP
// @Tags transfers
// @Produce json
// @Param id path string true "Transfer ID"
// @Success 200 {object} dto.TransferResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Transfer not found"
// @Failure 409 {object} ErrorResponse "Document is not qc_approved"
// @Failure 502 {object} ErrorResponse "ERP post failed"
// @Security BearerAuth
// @Router /transfers/{id}/post [post]
func (h *transferHandler) retryPost(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transferID := c.Param("id")

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	doc, err := h.transferService.RetryPost(c.Request.Context(), transferID, actorID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	logger.Info("Transfer posted to ERP", slog.String("transfer_id", transferID))
	c.JSON(http.StatusOK, dto.ToTransferResponse(doc))
}

// addLine godoc
// @Summary Add a quantity-tracked line
// @Description Appends a line to a draft document; duplicate item codes are rejected
// @Tags transfers
// @Accept json
// @Produce json
// @Param id path string true "Transfer ID"
// @Param line body dto.AddLineRequest true "Line details"
// @Success 201 {object} dto.LineResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Transfer not found"
// @Failure 409 {object} ErrorResponse "Duplicate item code"
// @Security BearerAuth
// @Router /transfers/{id}/lines [post]
func (h *transferHandler) addLine(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transferID := c.Param("id")

	var req dto.AddLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	line, err := h.transferService.AddLine(c.Request.Context(), transferID, req, actorID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	logger.Info("Line added", slog.String("transfer_id", transferID), slog.String("item_code", line.ItemCode))
	c.JSON(http.StatusCreated, dto.ToLineResponse(line))
}

// addSerialLine godoc
// @Summary Add a serial-tracked line
// @Description Appends a serial line to a draft document; every serial number is validated against the ERP
// @Tags transfers
// @Accept json
// @Produce json
// @Param id path string true "Transfer ID"
// @Param line body dto.AddSerialLineRequest true "Serial line details"
// @Success 201 {object} dto.LineResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Transfer not found"
// @Failure 409 {object} ErrorResponse "Duplicate item code"
// @Security BearerAuth
// @Router /transfers/{id}/serial-lines [post]
func (h *transferHandler) addSerialLine(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transferID := c.Param("id")

	var req dto.AddSerialLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	line, err := h.transferService.AddSerialLine(c.Request.Context(), transferID, req, actorID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	logger.Info("Serial line added", slog.String("transfer_id", transferID), slog.String("item_code", line.ItemCode), slog.Int("serials", len(line.Serials)))
	c.JSON(http.StatusCreated, dto.ToLineResponse(line))
}

// deleteLine godoc
// @Summary Delete a line
// @Description Removes a line and its serial entries from a draft document
// @Tags transfers
// @Produce json
// @Param lineID path string true "Line ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Line not found"
// @Failure 409 {object} ErrorResponse "Document is no longer a draft"
// @Security BearerAuth
// @Router /lines/{lineID} [delete]
func (h *transferHandler) deleteLine(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	lineID := c.Param("lineID")

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.transferService.DeleteLine(c.Request.Context(), lineID, actorID); err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// revalidateSerial godoc
// @Summary Revalidate a serial entry
// @Description Re-runs ERP validation for one serial entry; safe to repeat
// @Tags transfers
// @Produce json
// @Param serialID path string true "Serial entry ID"
// @Success 200 {object} dto.SerialResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Serial entry not found"
// @Security BearerAuth
// @Router /serials/{serialID}/revalidate [post]
func (h *transferHandler) revalidateSerial(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	serialID := c.Param("serialID")

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	serial, err := h.transferService.RevalidateSerial(c.Request.Context(), serialID, actorID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSerialResponse(serial))
}

// deleteSerial godoc
// @Summary Delete a serial entry
// @Description Removes one serial entry from a draft document
// @Tags transfers
// @Produce json
// @Param serialID path string true "Serial entry ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Serial entry not found"
// @Failure 409 {object} ErrorResponse "Document is no longer a draft"
// @Security BearerAuth
// @Router /serials/{serialID} [delete]
func (h *transferHandler) deleteSerial(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	serialID := c.Param("serialID")

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.transferService.DeleteSerial(c.Request.Context(), serialID, actorID); err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
