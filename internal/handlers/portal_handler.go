package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"customer-portal/internal/models"
	"customer-portal/internal/normalize"
	"customer-portal/internal/portal"
)

// fetchCustomerRecords runs a list operation for the customer named in the
// optional JSON body, or the session's customer. It writes the error
// response itself and reports whether the handler should continue.
func (a *API) fetchCustomerRecords(c *gin.Context, operation string) ([]normalize.Record, bool) {
	var req models.CustomerRequest
	if c.Request.Body != nil && c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			RespondWithError(c, http.StatusBadRequest, models.ErrorCodeInvalidJSON, "Invalid request payload", gin.H{"reason": err.Error()})
			return nil, false
		}
	}
	return a.runForCustomer(c, operation, req.Customer())
}

func (a *API) runForCustomer(c *gin.Context, operation, supplied string) ([]normalize.Record, bool) {
	customer, ok := resolveCustomer(c, supplied)
	if !ok {
		return nil, false
	}
	res, err := a.exec.Execute(c.Request.Context(), operation, map[string]string{"customerId": customer})
	if err != nil {
		a.respondOperationError(c, operation, err)
		return nil, false
	}
	return res.Records(), true
}

func grouped(c *gin.Context) bool {
	return strings.EqualFold(c.Query("grouped"), "true")
}

// dashboardDataHandler godoc
// @Summary Customer master data
// @Description Returns name and address of the customer shown on the dashboard.
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Param customerId path string true "Customer number"
// @Success 200 {object} models.APIResponse
// @Failure 401 {object} models.APIError "UNAUTHORIZED"
// @Failure 403 {object} models.APIError "FORBIDDEN"
// @Failure 500 {object} models.APIError "BACKEND_STRUCTURE_MISMATCH"
// @Failure 504 {object} models.APIError "REQUEST_TIMEOUT"
// @Router /api/dashboard-data/{customerId} [get]
func (a *API) dashboardDataHandler(c *gin.Context) {
	customer, ok := resolveCustomer(c, c.Param("customerId"))
	if !ok {
		return
	}
	res, err := a.exec.Execute(c.Request.Context(), "dashboard", map[string]string{"customerId": customer})
	if err != nil {
		a.respondOperationError(c, "dashboard", err)
		return
	}
	RespondWithSuccess(c, http.StatusOK, "", res.Record())
}

// dashboardSummaryHandler godoc
// @Summary Dashboard document counts
// @Description Counts inquiries, order lines, delivery lines and invoices in parallel.
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.APIResponse{data=models.DashboardSummary}
// @Failure 401 {object} models.APIError "UNAUTHORIZED"
// @Failure 502 {object} models.APIError "BACKEND_UNREACHABLE"
// @Router /api/dashboard-summary [get]
func (a *API) dashboardSummaryHandler(c *gin.Context) {
	customer, ok := resolveCustomer(c, c.Query("customerId"))
	if !ok {
		return
	}
	summary, err := portal.Summarize(c.Request.Context(), a.exec, customer)
	if err != nil {
		a.respondOperationError(c, "dashboard-summary", err)
		return
	}
	RespondWithSuccess(c, http.StatusOK, "", summary)
}

// listInquiriesHandler godoc
// @Summary List inquiries
// @Tags documents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CustomerRequest false "Customer (defaults to the session customer)"
// @Param q query string false "Case-insensitive search term"
// @Success 200 {object} models.APIResponse
// @Failure 403 {object} models.APIError "FORBIDDEN"
// @Failure 504 {object} models.APIError "REQUEST_TIMEOUT"
// @Router /api/inquiry/list [post]
func (a *API) listInquiriesHandler(c *gin.Context) {
	records, ok := a.fetchCustomerRecords(c, "inquiries")
	if !ok {
		return
	}
	RespondWithSuccess(c, http.StatusOK, "", portal.FilterByTerm(records, c.Query("q"), portal.RecordFields("VBELN", "ARKTX", "ERNAM")))
}

// listOrdersHandler godoc
// @Summary List sales orders
// @Description Returns order lines, or orders grouped by sales document when grouped=true.
// @Tags documents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CustomerRequest false "Customer (defaults to the session customer)"
// @Param grouped query bool false "Group lines by sales document"
// @Param q query string false "Case-insensitive search term"
// @Success 200 {object} models.APIResponse
// @Failure 403 {object} models.APIError "FORBIDDEN"
// @Failure 504 {object} models.APIError "REQUEST_TIMEOUT"
// @Router /api/order/list [post]
func (a *API) listOrdersHandler(c *gin.Context) {
	records, ok := a.fetchCustomerRecords(c, "orders")
	if !ok {
		return
	}
	if grouped(c) {
		RespondWithSuccess(c, http.StatusOK, "", portal.FilterByTerm(portal.GroupOrders(records), c.Query("q"), portal.OrderFields))
		return
	}
	RespondWithSuccess(c, http.StatusOK, "", portal.FilterByTerm(records, c.Query("q"), portal.RecordFields("VBELN", "ARKTX")))
}

// listDeliveriesHandler godoc
// @Summary List deliveries
// @Description Returns delivery lines, or deliveries grouped by delivery number when grouped=true.
// @Tags documents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CustomerRequest false "Customer (defaults to the session customer)"
// @Param grouped query bool false "Group lines by delivery"
// @Param q query string false "Case-insensitive search term"
// @Success 200 {object} models.APIResponse
// @Failure 403 {object} models.APIError "FORBIDDEN"
// @Failure 504 {object} models.APIError "REQUEST_TIMEOUT"
// @Router /api/delivery/list [post]
func (a *API) listDeliveriesHandler(c *gin.Context) {
	records, ok := a.fetchCustomerRecords(c, "deliveries")
	if !ok {
		return
	}
	if grouped(c) {
		RespondWithSuccess(c, http.StatusOK, "", portal.FilterByTerm(portal.GroupDeliveries(records), c.Query("q"), portal.DeliveryFields))
		return
	}
	RespondWithSuccess(c, http.StatusOK, "", portal.FilterByTerm(records, c.Query("q"), portal.RecordFields("VBELN_DELIVERY", "VBELN_SO", "ARKTX")))
}

// listDebitMemosHandler godoc
// @Summary List debit memos
// @Tags finance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CustomerRequest false "Customer (defaults to the session customer)"
// @Param q query string false "Case-insensitive search term"
// @Success 200 {object} models.APIResponse
// @Failure 403 {object} models.APIError "FORBIDDEN"
// @Failure 504 {object} models.APIError "REQUEST_TIMEOUT"
// @Router /api/debit-memos/list [post]
func (a *API) listDebitMemosHandler(c *gin.Context) {
	a.listMemos(c, "debit_memos")
}

// listCreditMemosHandler godoc
// @Summary List credit memos
// @Tags finance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CustomerRequest false "Customer (defaults to the session customer)"
// @Param q query string false "Case-insensitive search term"
// @Success 200 {object} models.APIResponse
// @Failure 403 {object} models.APIError "FORBIDDEN"
// @Failure 504 {object} models.APIError "REQUEST_TIMEOUT"
// @Router /api/credit-memos/list [post]
func (a *API) listCreditMemosHandler(c *gin.Context) {
	a.listMemos(c, "credit_memos")
}

func (a *API) listMemos(c *gin.Context, operation string) {
	records, ok := a.fetchCustomerRecords(c, operation)
	if !ok {
		return
	}
	RespondWithSuccess(c, http.StatusOK, "", portal.FilterByTerm(records, c.Query("q"), portal.RecordFields("id", "reference", "description")))
}

// listPaymentsHandler godoc
// @Summary List payments and aging
// @Description Each payment carries a status derived from its aging days (Upcoming, Due Soon, Overdue, Unknown).
// @Tags finance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CustomerRequest false "Customer (defaults to the session customer)"
// @Param q query string false "Case-insensitive search term"
// @Success 200 {object} models.APIResponse
// @Failure 403 {object} models.APIError "FORBIDDEN"
// @Failure 504 {object} models.APIError "REQUEST_TIMEOUT"
// @Router /api/payments/list [post]
func (a *API) listPaymentsHandler(c *gin.Context) {
	records, ok := a.fetchCustomerRecords(c, "payments")
	if !ok {
		return
	}
	RespondWithSuccess(c, http.StatusOK, "", portal.FilterByTerm(records, c.Query("q"), portal.RecordFields("id", "status")))
}

// listInvoicesHandler godoc
// @Summary List invoices
// @Tags finance
// @Produce json
// @Security BearerAuth
// @Param customerId query string false "Customer (defaults to the session customer)"
// @Param q query string false "Case-insensitive search term"
// @Success 200 {object} models.APIResponse
// @Failure 403 {object} models.APIError "FORBIDDEN"
// @Failure 504 {object} models.APIError "REQUEST_TIMEOUT"
// @Router /api/invoice [get]
func (a *API) listInvoicesHandler(c *gin.Context) {
	records, ok := a.runForCustomer(c, "invoices", c.Query("customerId"))
	if !ok {
		return
	}
	RespondWithSuccess(c, http.StatusOK, "", portal.FilterByTerm(records, c.Query("q"), portal.RecordFields("invoiceNumber")))
}

// getInvoiceHandler godoc
// @Summary Invoice detail
// @Tags finance
// @Produce json
// @Security BearerAuth
// @Param invoiceNumber path string true "Invoice number"
// @Success 200 {object} models.APIResponse
// @Failure 400 {object} models.APIError "VALIDATION_ERROR"
// @Failure 500 {object} models.APIError "BACKEND_STRUCTURE_MISMATCH"
// @Router /api/invoice/{invoiceNumber} [get]
func (a *API) getInvoiceHandler(c *gin.Context) {
	res, err := a.exec.Execute(c.Request.Context(), "invoice_detail", map[string]string{
		"invoiceNumber": c.Param("invoiceNumber"),
	})
	if err != nil {
		a.respondOperationError(c, "invoice_detail", err)
		return
	}
	rec := res.Record()
	rec["invoiceNumber"] = c.Param("invoiceNumber")
	RespondWithSuccess(c, http.StatusOK, "", rec)
}

// invoiceFormHandler godoc
// @Summary Invoice print form
// @Description Returns the invoice PDF as a base64 string.
// @Tags finance
// @Produce json
// @Security BearerAuth
// @Param customerId query string false "Customer (defaults to the session customer)"
// @Param salesDocNumber query string true "Billing document number"
// @Success 200 {object} models.APIResponse{data=string}
// @Failure 400 {object} models.APIError "VALIDATION_ERROR"
// @Failure 403 {object} models.APIError "FORBIDDEN"
// @Failure 404 {object} models.APIError "NOT_FOUND"
// @Router /api/invoice-form [get]
func (a *API) invoiceFormHandler(c *gin.Context) {
	salesDoc := strings.TrimSpace(c.Query("salesDocNumber"))
	if salesDoc == "" {
		RespondWithError(c, http.StatusBadRequest, models.ErrorCodeValidation, "Customer ID and Sales Document Number are required", nil)
		return
	}
	customer, ok := resolveCustomer(c, c.Query("customerId"))
	if !ok {
		return
	}

	res, err := a.exec.Execute(c.Request.Context(), "invoice_form", map[string]string{
		"customerId":     customer,
		"salesDocNumber": salesDoc,
	})
	if err != nil {
		a.respondOperationError(c, "invoice_form", err)
		return
	}
	pdf, _ := res.Record()["pdf"].(string)
	if pdf == "" {
		RespondWithError(c, http.StatusNotFound, models.ErrorCodeNotFound, "Invoice form not found", nil)
		return
	}
	RespondWithSuccess(c, http.StatusOK, "", pdf)
}
