package server

import (
	"context"
	"net/http"

	"campusms/internal/api"
	"campusms/internal/auth"
	"campusms/internal/booking"
	"campusms/internal/config"
	"campusms/internal/menu"
	"campusms/internal/notify"
	"campusms/internal/payment"
	"campusms/internal/redemption"
	"campusms/internal/report"
	"campusms/internal/user"
	"campusms/internal/wallet"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Server struct {
	router *gin.Engine
	srv    *http.Server
	db     *sqlx.DB
	config *config.Config
}

func New(db *sqlx.DB, cfg *config.Config, dispatcher *notify.Dispatcher) *Server {
	api.RegisterValidators()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(RateLimitMiddleware(20, 40))

	userRepo := user.NewRepository(db)
	walletRepo := wallet.NewRepository(db, cfg.SignupBonusCents)
	menuRepo := menu.NewRepository(db)
	bookingRepo := booking.NewRepository(db)
	tokenRepo := redemption.NewRepository(db)

	walletSvc := wallet.NewService(walletRepo, dispatcher)
	bookingSvc := booking.NewService(bookingRepo, menuRepo, walletSvc, dispatcher)
	redemptionSvc := redemption.NewService(tokenRepo, bookingSvc, cfg.JWTSecret)

	userHandler := user.NewHandler(userRepo, walletSvc, cfg.JWTSecret)
	walletHandler := wallet.NewHandler(walletSvc)
	menuHandler := menu.NewHandler(menuRepo)
	bookingHandler := booking.NewHandler(bookingSvc)
	redemptionHandler := redemption.NewHandler(redemptionSvc)
	paymentHandler := payment.NewHandler(walletSvc, cfg.GatewayCheckoutURL, cfg.GatewayCallbackToken)
	reportHandler := report.NewHandler(walletSvc)

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	router.GET("/cafeteria", menuHandler.ListWeek)
	router.POST("/payments/gateway/callback", paymentHandler.HandleCallback)

	public := router.Group("/auth")
	{
		public.POST("/register", userHandler.Register)
		public.POST("/login", userHandler.Login)
		public.POST("/refresh", userHandler.Refresh)
	}

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", userHandler.GetMe)
		protected.GET("/wallet", walletHandler.GetBalance)
		protected.GET("/wallet/transactions", walletHandler.ListTransactions)
		protected.GET("/wallet/statement", reportHandler.DownloadStatement)
		protected.POST("/wallet/topup", paymentHandler.InitiateTopUp)
		protected.POST("/bookings", bookingHandler.BookMeals)
		protected.GET("/bookings", bookingHandler.ListMyBookings)
		protected.POST("/bookings/:id/token", redemptionHandler.IssueToken)
	}

	staff := router.Group("/staff")
	staff.Use(authMiddleware, auth.RequireRole(auth.RoleStaff))
	{
		staff.POST("/redeem", redemptionHandler.Redeem)
	}

	admin := router.Group("/admin")
	admin.Use(authMiddleware, auth.RequireRole(auth.RoleAdmin))
	{
		admin.POST("/menus", menuHandler.CreateItem)
		admin.DELETE("/menus/:id", menuHandler.DeleteItem)
		admin.GET("/notifications/queue", NotificationQueue(dispatcher))
	}

	return &Server{
		router: router,
		db:     db,
		config: cfg,
	}
}

func (s *Server) Start(port string) error {
	s.srv = &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}
	return s.srv.ListenAndServe()
}

// Shutdown drains in-flight requests before returning.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}

// Router exposes the gin engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
