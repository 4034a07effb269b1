package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "customer-portal/docs"
	"customer-portal/internal/config"
	"customer-portal/internal/models"
	"customer-portal/internal/portal"
)

// Sessions is the session store the API authenticates against.
type Sessions interface {
	Create(ctx context.Context, userID, customerID string) (*models.Session, error)
	Lookup(ctx context.Context, token string) (*models.Session, error)
	Revoke(ctx context.Context, token string) error
}

// API provides the portal HTTP handlers.
type API struct {
	exec     portal.Runner
	sessions Sessions
	log      zerolog.Logger
}

// NewAPI creates a new API backed by exec and sessions.
func NewAPI(exec portal.Runner, sessions Sessions, log zerolog.Logger) *API {
	return &API{
		exec:     exec,
		sessions: sessions,
		log:      log.With().Str("component", "api").Logger(),
	}
}

// NewRouter builds the gin engine with middleware, health, swagger and the
// API routes.
func NewRouter(cfg config.AppConfig, api *API, log zerolog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(RequestID())
	router.Use(RequestLogger(log))
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error().Interface("panic", recovered).Str("request_id", requestID(c)).Msg("recovered from panic")
		RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "An unexpected error occurred", nil)
	}))
	router.Use(cors.New(corsConfig(cfg.CORSOrigins)))

	router.GET("/health", healthHandler)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api.RegisterRoutes(router)
	return router
}

func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	if len(origins) == 0 {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	c.AllowHeaders = append(c.AllowHeaders, "Authorization", requestIDHeader)
	c.ExposeHeaders = []string{requestIDHeader}
	c.MaxAge = 12 * time.Hour
	return c
}

// RegisterRoutes registers the portal API routes with the given Gin router.
func (a *API) RegisterRoutes(router *gin.Engine) {
	apiRoutes := router.Group("/api")

	apiRoutes.POST("/login", a.loginHandler)

	secured := apiRoutes.Group("")
	secured.Use(a.AuthRequired())
	{
		secured.POST("/logout", a.logoutHandler)
		secured.GET("/session", a.sessionHandler)

		secured.GET("/dashboard-data/:customerId", a.dashboardDataHandler)
		secured.GET("/dashboard-summary", a.dashboardSummaryHandler)

		secured.POST("/inquiry/list", a.listInquiriesHandler)
		secured.POST("/order/list", a.listOrdersHandler)
		secured.POST("/delivery/list", a.listDeliveriesHandler)
		secured.POST("/debit-memos/list", a.listDebitMemosHandler)
		secured.POST("/credit-memos/list", a.listCreditMemosHandler)
		secured.POST("/payments/list", a.listPaymentsHandler)

		invoiceRoutes := secured.Group("/invoice")
		{
			invoiceRoutes.GET("", a.listInvoicesHandler)
			invoiceRoutes.GET("/:invoiceNumber", a.getInvoiceHandler)
		}
		secured.GET("/invoice-form", a.invoiceFormHandler)
	}
}

// healthHandler godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
