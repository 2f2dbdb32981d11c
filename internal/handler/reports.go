package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/KaizenStudioDev/proyecto-inventario-web-sub000/internal/apierror"
	"github.com/KaizenStudioDev/proyecto-inventario-web-sub000/internal/dto"
	"github.com/KaizenStudioDev/proyecto-inventario-web-sub000/internal/infra"
	"github.com/KaizenStudioDev/proyecto-inventario-web-sub000/internal/middleware"
	"github.com/KaizenStudioDev/proyecto-inventario-web-sub000/internal/service"
	"github.com/KaizenStudioDev/proyecto-inventario-web-sub000/internal/worker"

	"github.com/gin-gonic/gin"
)

type ReportsHandler struct {
	svc        service.ReportService
	dispatcher *worker.Dispatcher
}

func NewReportsHandler(svc service.ReportService, dispatcher *worker.Dispatcher) *ReportsHandler {
	return &ReportsHandler{svc: svc, dispatcher: dispatcher}
}

// Generate returns the report as JSON for on-screen rendering.
func (h *ReportsHandler) Generate(c *gin.Context) {
	var req dto.ReportRequest
	if !bindQueryAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Generate(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ExportCSV streams the report as a CSV download.
func (h *ReportsHandler) ExportCSV(c *gin.Context) {
	var req dto.ReportRequest
	if !bindQueryAndValidate(c, &req) {
		return
	}
	result, err := h.svc.Generate(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	fileName := infra.CSVFileName(result.Type, time.Now())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", infra.ReportCSV(result))
}

// ExportPDF streams the report as a PDF download.
func (h *ReportsHandler) ExportPDF(c *gin.Context) {
	var req dto.ReportRequest
	if !bindQueryAndValidate(c, &req) {
		return
	}
	result, err := h.svc.Generate(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	data, err := infra.ReportPDF(result, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to render pdf"))
		return
	}
	c.Header("Content-Disposition", `attachment; filename="report.pdf"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

type exportAsyncRequest struct {
	Type     string `json:"type"      validate:"required,oneof=inventory sales purchases movements"`
	DateFrom string `json:"date_from" validate:"omitempty,datetime=2006-01-02"`
	DateTo   string `json:"date_to"   validate:"omitempty,datetime=2006-01-02"`
	Format   string `json:"format"    validate:"required,oneof=csv pdf"`
}

// ExportAsync enqueues the export; the worker emails the file to the caller.
func (h *ReportsHandler) ExportAsync(c *gin.Context) {
	var req exportAsyncRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	payload := worker.ExportJobPayload{
		ReportType:  req.Type,
		DateFrom:    req.DateFrom,
		DateTo:      req.DateTo,
		Format:      req.Format,
		RequestedBy: claims.Email,
	}
	if err := h.dispatcher.EnqueueExport(c.Request.Context(), payload); err != nil {
		c.JSON(http.StatusServiceUnavailable, apierror.New("export queue unavailable"))
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "queued", "report_type": req.Type, "format": req.Format})
}

// FinancialSnapshot returns the dashboard aggregate.
func (h *ReportsHandler) FinancialSnapshot(c *gin.Context) {
	resp, err := h.svc.FinancialSnapshot(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to compute snapshot"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
