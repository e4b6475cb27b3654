package handler

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/storefront-pos/internal/application/service"
	"github.com/sangkips/storefront-pos/internal/presentation/http/dto/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler serves the sales report and ledger exports
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Sales returns totals per month or per day
// @Summary Sales report
// @Tags reports
// @Produce json
// @Param period query string false "monthly or daily"
// @Success 200 {object} response.APIResponse
// @Router /reports/sales [get]
func (h *ReportHandler) Sales(c *gin.Context) {
	period := c.DefaultQuery("period", "monthly")
	bucket, ok := service.BucketFor(period)
	if !ok {
		response.BadRequest(c, "period must be monthly or daily")
		return
	}

	rows, err := h.reportService.SalesByPeriod(c.Request.Context(), bucket)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Sales report retrieved successfully", gin.H{
		"period": period,
		"rows":   rows,
	})
}

// ExportCSV downloads the ledger as CSV
func (h *ReportHandler) ExportCSV(c *gin.Context) {
	data, err := h.reportService.ExportCSV(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, exportName("csv"), "text/csv; charset=utf-8", data)
}

// ExportXLSX downloads the ledger as a spreadsheet
func (h *ReportHandler) ExportXLSX(c *gin.Context) {
	data, err := h.reportService.ExportXLSX(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, exportName("xlsx"), xlsxContentType, data)
}

func exportName(ext string) string {
	return fmt.Sprintf("sales-%s.%s", time.Now().Format("2006-01-02"), ext)
}
