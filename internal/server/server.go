package server

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/craftiax/smartContract/config"
	"github.com/craftiax/smartContract/internal/artistpay"
	"github.com/craftiax/smartContract/internal/clock"
	"github.com/craftiax/smartContract/internal/handlers"
	"github.com/craftiax/smartContract/internal/ledger"
	"github.com/craftiax/smartContract/internal/middleware"
	"github.com/craftiax/smartContract/internal/settlement"
	"github.com/craftiax/smartContract/internal/ticketing"
)

func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %v", err)
	}

	logger := config.NewLogger()

	native := ledger.NewNative(db)
	token, err := ledger.NewStableToken(db)
	if err != nil {
		return fmt.Errorf("failed to initialize token ledger: %v", err)
	}
	tickets := ledger.NewTickets(db)

	engine := settlement.NewEngine(native, token, cfg.CustodyAddress, logger)
	ticketSvc := ticketing.NewService(db, engine, tickets, clock.NewSystem(), logger)
	artistSvc := artistpay.NewService(db, engine, logger)

	r := gin.Default()
	setupRoutes(r, db, ticketSvc, artistSvc, token, cfg.CustodyAddress)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	return r.Run(":" + port)
}

func setupRoutes(r *gin.Engine, db *gorm.DB, ticketSvc *ticketing.Service, artistSvc *artistpay.Service, token *ledger.StableToken, custody string) {
	r.Use(middleware.DatabaseMiddleware(db))
	r.Use(middleware.ServiceMiddleware(ticketSvc, artistSvc, token, custody))

	public := r.Group("/v1")
	{
		public.POST("/register", handlers.Register)
		public.POST("/login", handlers.Login)

		eventPublic := public.Group("/events")
		{
			eventPublic.GET("", handlers.ListEvents)
			eventPublic.GET("/:key", handlers.GetEvent)
		}
	}

	protected := r.Group("/v1")
	protected.Use(middleware.JWTAuthMiddleware())
	{
		eventProtected := protected.Group("/events")
		{
			eventProtected.POST("", handlers.CreateEvent)
			eventProtected.POST("/:key/deactivate", handlers.DeactivateEvent)
			eventProtected.PUT("/:key/username", handlers.SetEventOrganizerUsername)
			eventProtected.PUT("/:key/tiers/:tier/price", handlers.UpdateTierPrice)
		}

		tickets := protected.Group("/tickets")
		{
			tickets.POST("/mint", handlers.MintTicket)
			tickets.POST("/burn", handlers.BurnTicket)
			tickets.GET("/:key/:tier/qr", handlers.GenerateTicketQR)
		}

		protected.POST("/token/approve", handlers.ApproveToken)

		admin := protected.Group("/admin")
		{
			admin.PUT("/commission/rate", handlers.UpdateCommissionRate)
			admin.PUT("/commission/address", handlers.UpdateCommissionAddress)
			admin.POST("/pause", handlers.Pause)
			admin.POST("/unpause", handlers.Unpause)
			admin.POST("/withdraw", handlers.WithdrawFees)
		}

		artist := protected.Group("/artist")
		{
			artist.POST("/pay", handlers.PayArtist)
			artist.PUT("/commission/rate", handlers.UpdateArtistCommissionRate)
			artist.PUT("/platform-address", handlers.UpdatePlatformAddress)
			artist.PUT("/limits", handlers.SetPaymentLimits)
			artist.PUT("/verified", handlers.SetVerifiedPayer)
		}
	}
}
