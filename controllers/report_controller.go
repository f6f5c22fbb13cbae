package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xdranel/Menu-Ordering/client"
	"github.com/xdranel/Menu-Ordering/pkg/resp"
	"github.com/xdranel/Menu-Ordering/render"
	"github.com/xdranel/Menu-Ordering/services"
	"github.com/xdranel/Menu-Ordering/utils"
)

type ReportController struct {
	API     *client.Client
	Reports *services.ReportService
}

func NewReportController(api *client.Client, reports *services.ReportService) *ReportController {
	return &ReportController{API: api, Reports: reports}
}

// dateRange reads startDate/endDate query params, defaulting both to today.
func dateRange(c *gin.Context) (start, end time.Time, err error) {
	today := time.Now().Format("2006-01-02")
	return utils.ParseDateRange(
		c.DefaultQuery("startDate", today),
		c.DefaultQuery("endDate", today),
	)
}

// GET /cashier/api/reports/sales?startDate&endDate
func (rc *ReportController) SalesReport(c *gin.Context) {
	start, end, err := dateRange(c)
	if err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	report, err := rc.Reports.SalesReport(c.Request.Context(), start, end)
	if err != nil {
		writeBackendError(c, err)
		return
	}
	resp.OK(c, report)
}

// GET /cashier/reports/view?startDate&endDate
func (rc *ReportController) SalesReportHTML(c *gin.Context) {
	start, end, err := dateRange(c)
	if err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	report, err := rc.Reports.SalesReport(c.Request.Context(), start, end)
	if err != nil {
		writeBackendError(c, err)
		return
	}
	html, err := render.Report(report)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// GET /cashier/api/invoices?startDate&endDate
func (rc *ReportController) Invoices(c *gin.Context) {
	start, end, err := dateRange(c)
	if err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	invoices, err := rc.API.InvoicesByDate(c.Request.Context(), start, end.AddDate(0, 0, -1))
	if err != nil {
		writeBackendError(c, err)
		return
	}
	resp.OK(c, invoices)
}

// GET /cashier/invoices/:invoiceNumber/print
func (rc *ReportController) PrintInvoice(c *gin.Context) {
	inv, err := rc.API.Invoice(c.Request.Context(), c.Param("invoiceNumber"))
	if err != nil {
		writeBackendError(c, err)
		return
	}
	html, err := render.Invoice(inv)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// GET /cashier/api/reports/export?startDate&endDate
func (rc *ReportController) ExportReport(c *gin.Context) {
	start, end, err := dateRange(c)
	if err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	report, err := rc.Reports.SalesReport(c.Request.Context(), start, end)
	if err != nil {
		writeBackendError(c, err)
		return
	}
	invoices, err := rc.API.InvoicesByDate(c.Request.Context(), start, end.AddDate(0, 0, -1))
	if err != nil {
		writeBackendError(c, err)
		return
	}

	file, err := rc.Reports.ExportXLSX(report, invoices)
	if err != nil {
		resp.ServerError(c, err)
		return
	}

	filename := fmt.Sprintf("sales-report-%s-to-%s.xlsx", report.StartDate, report.EndDate)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := file.Write(c.Writer); err != nil {
		resp.ServerError(c, err)
	}
}
