package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/boardinghouse/internal/audit"
	auditdomain "github.com/smallbiznis/boardinghouse/internal/audit/domain"
	"github.com/smallbiznis/boardinghouse/internal/auth"
	"github.com/smallbiznis/boardinghouse/internal/boardinghouse"
	boardinghousedomain "github.com/smallbiznis/boardinghouse/internal/boardinghouse/domain"
	"github.com/smallbiznis/boardinghouse/internal/cache"
	"github.com/smallbiznis/boardinghouse/internal/config"
	"github.com/smallbiznis/boardinghouse/internal/contract"
	contractdomain "github.com/smallbiznis/boardinghouse/internal/contract/domain"
	"github.com/smallbiznis/boardinghouse/internal/dashboard"
	dashboarddomain "github.com/smallbiznis/boardinghouse/internal/dashboard/domain"
	"github.com/smallbiznis/boardinghouse/internal/detail"
	detaildomain "github.com/smallbiznis/boardinghouse/internal/detail/domain"
	"github.com/smallbiznis/boardinghouse/internal/invoice"
	invoicedomain "github.com/smallbiznis/boardinghouse/internal/invoice/domain"
	"github.com/smallbiznis/boardinghouse/internal/observability"
	obsmiddleware "github.com/smallbiznis/boardinghouse/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/boardinghouse/internal/observability/metrics"
	obstracing "github.com/smallbiznis/boardinghouse/internal/observability/tracing"
	"github.com/smallbiznis/boardinghouse/internal/payment"
	paymentdomain "github.com/smallbiznis/boardinghouse/internal/payment/domain"
	"github.com/smallbiznis/boardinghouse/internal/portal"
	portaldomain "github.com/smallbiznis/boardinghouse/internal/portal/domain"
	"github.com/smallbiznis/boardinghouse/internal/providers"
	"github.com/smallbiznis/boardinghouse/internal/ratelimit"
	"github.com/smallbiznis/boardinghouse/internal/report"
	reportdomain "github.com/smallbiznis/boardinghouse/internal/report/domain"
	"github.com/smallbiznis/boardinghouse/internal/room"
	roomdomain "github.com/smallbiznis/boardinghouse/internal/room/domain"
	"github.com/smallbiznis/boardinghouse/internal/roomservice"
	roomservicedomain "github.com/smallbiznis/boardinghouse/internal/roomservice/domain"
	"github.com/smallbiznis/boardinghouse/internal/servicetype"
	servicetypedomain "github.com/smallbiznis/boardinghouse/internal/servicetype/domain"
	"github.com/smallbiznis/boardinghouse/internal/tenant"
	tenantdomain "github.com/smallbiznis/boardinghouse/internal/tenant/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func init() {
	// Amounts go over the wire as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	auth.Module,
	audit.Module,
	cache.Module,
	ratelimit.Module,
	providers.Module,
	boardinghouse.Module,
	room.Module,
	servicetype.Module,
	roomservice.Module,
	tenant.Module,
	contract.Module,
	invoice.Module,
	payment.Module,
	report.Module,
	dashboard.Module,
	detail.Module,
	portal.Module,
	fx.Provide(NewServer),
	fx.Invoke(func(*Server) {}),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	if !obsCfg.Debug() {
		gin.SetMode(gin.ReleaseMode)
	}
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	addr := cfg.HTTPAddr
	if addr == "" {
		addr = ":8080"
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server stopped", zap.Error(err))
				}
			}()
			log.Info("http server listening", zap.String("addr", addr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine         *gin.Engine
	cfg            config.Config
	verifier       *auth.Verifier
	authorizer     auth.Authorizer
	portalLimiter  *ratelimit.PortalLimiter
	obsMetrics     *obsmetrics.Metrics
	auditSvc       auditdomain.Service
	houseSvc       boardinghousedomain.Service
	roomSvc        roomdomain.Service
	serviceTypeSvc servicetypedomain.Service
	roomServiceSvc roomservicedomain.Service
	tenantSvc      tenantdomain.Service
	contractSvc    contractdomain.Service
	invoiceSvc     invoicedomain.Service
	paymentSvc     paymentdomain.Service
	reportSvc      reportdomain.Service
	dashboardSvc   dashboarddomain.Service
	detailSvc      detaildomain.Service
	portalSvc      portaldomain.Service
}

type ServerParams struct {
	fx.In

	Gin            *gin.Engine
	Cfg            config.Config
	Verifier       *auth.Verifier
	Authorizer     auth.Authorizer
	PortalLimiter  *ratelimit.PortalLimiter `optional:"true"`
	ObsMetrics     *obsmetrics.Metrics      `optional:"true"`
	AuditSvc       auditdomain.Service
	HouseSvc       boardinghousedomain.Service
	RoomSvc        roomdomain.Service
	ServiceTypeSvc servicetypedomain.Service
	RoomServiceSvc roomservicedomain.Service
	TenantSvc      tenantdomain.Service
	ContractSvc    contractdomain.Service
	InvoiceSvc     invoicedomain.Service
	PaymentSvc     paymentdomain.Service
	ReportSvc      reportdomain.Service
	DashboardSvc   dashboarddomain.Service
	DetailSvc      detaildomain.Service
	PortalSvc      portaldomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:         p.Gin,
		cfg:            p.Cfg,
		verifier:       p.Verifier,
		authorizer:     p.Authorizer,
		portalLimiter:  p.PortalLimiter,
		obsMetrics:     p.ObsMetrics,
		auditSvc:       p.AuditSvc,
		houseSvc:       p.HouseSvc,
		roomSvc:        p.RoomSvc,
		serviceTypeSvc: p.ServiceTypeSvc,
		roomServiceSvc: p.RoomServiceSvc,
		tenantSvc:      p.TenantSvc,
		contractSvc:    p.ContractSvc,
		invoiceSvc:     p.InvoiceSvc,
		paymentSvc:     p.PaymentSvc,
		reportSvc:      p.ReportSvc,
		dashboardSvc:   p.DashboardSvc,
		detailSvc:      p.DetailSvc,
		portalSvc:      p.PortalSvc,
	}

	svc.registerAdminRoutes()
	svc.registerPortalRoutes()
	svc.registerFallback()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAdminRoutes() {
	api := s.engine.Group("", s.RequestTimeout(), s.Authenticate(), s.Authorize())

	api.GET("/users/profile", s.GetProfile)

	// -------- Boarding houses --------
	api.GET("/boarding-houses", s.ListBoardingHouses)
	api.POST("/boarding-houses", s.CreateBoardingHouse)
	api.GET("/boarding-houses/:id", s.GetBoardingHouse)
	api.PUT("/boarding-houses/:id", s.UpdateBoardingHouse)
	api.DELETE("/boarding-houses/:id", s.DeleteBoardingHouse)

	// -------- Rooms --------
	api.GET("/rooms", s.ListRooms)
	api.POST("/rooms", s.CreateRoom)
	api.GET("/rooms/:id", s.GetRoom)
	api.PUT("/rooms/:id", s.UpdateRoom)
	api.DELETE("/rooms/:id", s.DeleteRoom)
	api.GET("/rooms/:id/services", s.ListRoomServicesByRoom)
	api.GET("/rooms/:id/detail", s.GetRoomDetail)

	// -------- Room services --------
	api.POST("/room-services", s.CreateRoomService)
	api.GET("/room-services/room/:roomId", s.ListRoomServicesByRoom)
	api.PUT("/room-services/:id", s.UpdateRoomService)
	api.DELETE("/room-services/:id", s.DeleteRoomService)

	// -------- Service types --------
	api.GET("/service-types", s.ListServiceTypes)
	api.POST("/service-types", s.CreateServiceType)
	api.GET("/service-types/:id", s.GetServiceType)
	api.PUT("/service-types/:id", s.UpdateServiceType)
	api.DELETE("/service-types/:id", s.DeleteServiceType)

	// -------- Tenants --------
	api.GET("/tenants", s.ListTenants)
	api.POST("/tenants", s.CreateTenant)
	api.GET("/tenants/user/:userId", s.GetTenantByUserID)
	api.GET("/tenants/:id", s.GetTenant)
	api.PUT("/tenants/:id", s.UpdateTenant)
	api.DELETE("/tenants/:id", s.DeleteTenant)
	api.GET("/tenants/:id/detail", s.GetTenantDetail)

	// -------- Contracts --------
	api.GET("/contracts", s.ListContracts)
	api.POST("/contracts", s.CreateContract)
	api.POST("/contracts/expire", s.ExpireContracts)
	api.GET("/contracts/:id", s.GetContract)
	api.PUT("/contracts/:id", s.UpdateContract)
	api.POST("/contracts/:id/activate", s.ActivateContract)
	api.POST("/contracts/:id/terminate", s.TerminateContract)
	api.GET("/contracts/:id/detail", s.GetContractDetail)

	// -------- Invoices --------
	api.GET("/invoices", s.ListInvoices)
	api.POST("/invoices/generate", s.GenerateInvoice)
	api.POST("/invoices/generate-with-readings", s.GenerateInvoiceWithReadings)
	api.POST("/invoices/preview-with-readings", s.PreviewInvoice)
	api.GET("/invoices/contract/:contractId", s.ListInvoicesByContract)
	api.GET("/invoices/:id", s.GetInvoiceByID)
	api.DELETE("/invoices/:id", s.DeleteInvoice)
	api.GET("/invoices/:id/detail", s.GetInvoiceDetail)
	api.GET("/invoices/:id/pdf", s.GetInvoicePDF)

	// -------- Payments --------
	api.GET("/payments", s.ListPayments)
	api.POST("/payments", s.CreatePayment)
	api.GET("/payments/invoice/:invoiceId", s.ListPaymentsByInvoice)
	api.GET("/payments/:id", s.GetPayment)
	api.GET("/payments/:id/receipt", s.GetPaymentReceipt)

	// -------- Reports --------
	api.GET("/reports/revenue-by-month", s.RevenueByMonth)
	api.GET("/reports/revenue-by-boarding-house", s.RevenueByBoardingHouse)
	api.GET("/reports/tenants-currently-renting", s.TenantsCurrentlyRenting)
	api.GET("/reports/outstanding-debts", s.OutstandingDebts)

	api.GET("/dashboard", s.GetDashboard)
	api.GET("/audit-logs", s.ListAuditLogs)
}

func (s *Server) registerPortalRoutes() {
	portal := s.engine.Group("/portal", s.RequestTimeout(), s.Authenticate(), s.Authorize(), s.PortalRateLimit())

	portal.GET("/me", s.PortalMe)
	portal.GET("/contracts", s.PortalContracts)
	portal.GET("/invoices", s.PortalInvoices)
	portal.GET("/invoices/:id", s.PortalInvoice)
	portal.GET("/payments", s.PortalPayments)
}

func (s *Server) registerFallback() {
	s.engine.NoRoute(func(c *gin.Context) {
		AbortWithError(c, errRouteNotFound)
	})
}
