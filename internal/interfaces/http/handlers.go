package http

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lexserve/backoffice/internal/application/port"
	"github.com/lexserve/backoffice/internal/application/service"
	"github.com/lexserve/backoffice/internal/export"
)

// Handlers contains all HTTP request handlers
type Handlers struct {
	settlement   service.SettlementService
	compensation service.CompensationService
	reports      service.ReportService
	exporter     *export.LedgerExporter
	logger       Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(
	settlement service.SettlementService,
	compensation service.CompensationService,
	reports service.ReportService,
	exporter *export.LedgerExporter,
	logger Logger,
) *Handlers {
	return &Handlers{
		settlement:   settlement,
		compensation: compensation,
		reports:      reports,
		exporter:     exporter,
		logger:       logger,
	}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// ApproveRequest represents an approval request body
type ApproveRequest struct {
	Notes            string `json:"notes"`
	AssignedLawyerID *int64 `json:"assigned_lawyer_id"`
}

// RejectRequest represents a rejection request body
type RejectRequest struct {
	Reason string `json:"reason"`
}

// AidApprovalRequest represents the financial aid approval request body
type AidApprovalRequest struct {
	ApprovedAmount             *int64   `json:"approved_amount"`
	ApprovedDiscountPercentage *float64 `json:"approved_discount_percentage"`
	PaymentPlan                string   `json:"payment_plan"`
	Conditions                 []string `json:"conditions"`
	ValidUntil                 *string  `json:"valid_until"`
	Notes                      string   `json:"notes"`
}

// RequestInfoRequest represents the request-more-info request body
type RequestInfoRequest struct {
	Message           string   `json:"message"`
	RequiredDocuments []string `json:"required_documents"`
}

// OverrideStatusRequest represents the admin status override request body
type OverrideStatusRequest struct {
	Status string `json:"status"`
}

// PayLawyerRequest represents the salary payment request body
type PayLawyerRequest struct {
	CaseID int64 `json:"case_id"`
	Amount int64 `json:"amount"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   "1.0.0",
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    response,
	})
}

// ApproveServiceRequest handles POST /api/v1/service-requests/:id/approve
func (h *Handlers) ApproveServiceRequest(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req ApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.badRequest(c, "invalid request body")
		return
	}

	outcome, err := h.settlement.ApproveServiceRequest(c.Request.Context(), actorFrom(c), id, req.Notes)
	if err != nil {
		h.serviceError(c, "Failed to approve service request", err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: outcome})
}

// RejectServiceRequest handles POST /api/v1/service-requests/:id/reject
func (h *Handlers) RejectServiceRequest(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "invalid request body")
		return
	}

	outcome, err := h.settlement.RejectServiceRequest(c.Request.Context(), actorFrom(c), id, req.Reason)
	if err != nil {
		h.serviceError(c, "Failed to reject service request", err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: outcome})
}

// ApproveIndividualRequest handles POST /api/v1/individual-requests/:id/approve
func (h *Handlers) ApproveIndividualRequest(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req ApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.badRequest(c, "invalid request body")
		return
	}

	outcome, err := h.settlement.ApproveIndividualRequest(c.Request.Context(), actorFrom(c), id, req.Notes, req.AssignedLawyerID)
	if err != nil {
		h.serviceError(c, "Failed to approve individual request", err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: outcome})
}

// RejectIndividualRequest handles POST /api/v1/individual-requests/:id/reject
func (h *Handlers) RejectIndividualRequest(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "invalid request body")
		return
	}

	outcome, err := h.settlement.RejectIndividualRequest(c.Request.Context(), actorFrom(c), id, req.Reason)
	if err != nil {
		h.serviceError(c, "Failed to reject individual request", err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: outcome})
}

// ApproveFinancialAid handles POST /api/v1/financial-aid/:id/approve
func (h *Handlers) ApproveFinancialAid(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req AidApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.badRequest(c, "invalid request body")
		return
	}

	approval := service.AidApproval{
		ApprovedAmount:             req.ApprovedAmount,
		ApprovedDiscountPercentage: req.ApprovedDiscountPercentage,
		PaymentPlan:                req.PaymentPlan,
		Conditions:                 req.Conditions,
		Notes:                      req.Notes,
	}
	if req.ValidUntil != nil {
		validUntil, err := time.Parse(time.RFC3339, *req.ValidUntil)
		if err != nil {
			h.badRequest(c, "valid_until must be an RFC 3339 timestamp")
			return
		}
		approval.ValidUntil = &validUntil
	}

	aid, err := h.settlement.ApproveFinancialAid(c.Request.Context(), actorFrom(c), id, approval)
	if err != nil {
		h.serviceError(c, "Failed to approve financial aid request", err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: aid})
}

// RejectFinancialAid handles POST /api/v1/financial-aid/:id/reject
func (h *Handlers) RejectFinancialAid(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "invalid request body")
		return
	}

	aid, err := h.settlement.RejectFinancialAid(c.Request.Context(), actorFrom(c), id, req.Reason)
	if err != nil {
		h.serviceError(c, "Failed to reject financial aid request", err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: aid})
}

// RequestMoreInfo handles POST /api/v1/financial-aid/:id/request-info
func (h *Handlers) RequestMoreInfo(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req RequestInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "invalid request body")
		return
	}

	aid, err := h.settlement.RequestMoreInfo(c.Request.Context(), actorFrom(c), id, req.Message, req.RequiredDocuments)
	if err != nil {
		h.serviceError(c, "Failed to request more information", err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: aid})
}

// OverrideAidStatus handles PUT /api/v1/financial-aid/:id/status
func (h *Handlers) OverrideAidStatus(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req OverrideStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "invalid request body")
		return
	}

	aid, err := h.settlement.OverrideAidStatus(c.Request.Context(), actorFrom(c), id, req.Status)
	if err != nil {
		h.serviceError(c, "Failed to override financial aid status", err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: aid})
}

// DashboardStats handles GET /api/v1/reports/dashboard
func (h *Handlers) DashboardStats(c *gin.Context) {
	stats, err := h.reports.DashboardStats(c.Request.Context())
	if err != nil {
		h.serviceError(c, "Failed to compute dashboard statistics", err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: stats})
}

// AidQueue handles GET /api/v1/reports/financial-aid/queue
func (h *Handlers) AidQueue(c *gin.Context) {
	queue, err := h.reports.AidQueue(c.Request.Context())
	if err != nil {
		h.serviceError(c, "Failed to build financial aid queue", err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: queue})
}

// LawyerLedger handles GET /api/v1/lawyers/ledger
func (h *Handlers) LawyerLedger(c *gin.Context) {
	ledgers, err := h.compensation.ComputeLedger(c.Request.Context())
	if err != nil {
		h.serviceError(c, "Failed to compute lawyer ledger", err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: ledgers})
}

// ExportLedger handles GET /api/v1/lawyers/ledger/export
func (h *Handlers) ExportLedger(c *gin.Context) {
	ledgers, err := h.compensation.ComputeLedger(c.Request.Context())
	if err != nil {
		h.serviceError(c, "Failed to compute lawyer ledger", err)
		return
	}

	buf, err := h.exporter.WriteLedger(ledgers)
	if err != nil {
		h.logger.Error("Failed to export lawyer ledger", "error", err)
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to export ledger",
		})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+h.exporter.Filename()+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// PayLawyer handles POST /api/v1/lawyers/:id/pay
func (h *Handlers) PayLawyer(c *gin.Context) {
	lawyerID, ok := h.pathID(c)
	if !ok {
		return
	}

	var req PayLawyerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "invalid request body")
		return
	}

	salary, err := h.compensation.PayLawyer(c.Request.Context(), actorFrom(c), lawyerID, req.CaseID, req.Amount)
	if err != nil {
		h.serviceError(c, "Failed to record salary payment", err)
		return
	}

	c.JSON(http.StatusCreated, Response{Success: true, Data: salary})
}

// pathID parses the :id path parameter, responding with 400 when it is not a
// positive integer
func (h *Handlers) pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		h.badRequest(c, "invalid id")
		return 0, false
	}
	return id, true
}

func (h *Handlers) badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Response{
		Success: false,
		Error:   message,
	})
}

// serviceError maps kinded service failures onto status codes; anything
// unkinded is a 500
func (h *Handlers) serviceError(c *gin.Context, logMsg string, err error) {
	h.logger.Error(logMsg, "error", err)

	status := http.StatusInternalServerError
	message := "internal server error"
	if kind, ok := service.KindOf(err); ok {
		message = err.Error()
		switch kind {
		case service.KindNotFound:
			status = http.StatusNotFound
		case service.KindMissingField:
			status = http.StatusBadRequest
		case service.KindInvalidTransition, service.KindDuplicatePayment:
			status = http.StatusConflict
		}
	}

	c.JSON(status, Response{
		Success: false,
		Error:   message,
	})
}

// actorFrom resolves the acting user from headers set by the auth gateway.
// Missing headers fall back to a system actor so internal tooling keeps
// working.
func actorFrom(c *gin.Context) port.Actor {
	actor := port.Actor{
		ID:   c.GetHeader("X-Actor-ID"),
		Role: c.GetHeader("X-Actor-Role"),
	}
	if actor.ID == "" {
		actor.ID = "system"
	}
	if actor.Role == "" {
		actor.Role = "admin"
	}
	return actor
}
