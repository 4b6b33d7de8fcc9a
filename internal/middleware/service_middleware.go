package middleware

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/craftiax/smartContract/internal/artistpay"
	"github.com/craftiax/smartContract/internal/ledger"
	"github.com/craftiax/smartContract/internal/ticketing"
)

func DatabaseMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("db", db)
		c.Next()
	}
}

// ServiceMiddleware makes the engine, the splitter and the stable-coin
// ledger available to handlers.
func ServiceMiddleware(tickets *ticketing.Service, artist *artistpay.Service, token *ledger.StableToken, custody string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("ticketing_service", tickets)
		c.Set("artistpay_service", artist)
		c.Set("stable_token", token)
		c.Set("custody_address", custody)
		c.Next()
	}
}

func GetTicketingService(c *gin.Context) *ticketing.Service {
	svc, exists := c.Get("ticketing_service")
	if !exists {
		return nil
	}
	return svc.(*ticketing.Service)
}

func GetArtistPayService(c *gin.Context) *artistpay.Service {
	svc, exists := c.Get("artistpay_service")
	if !exists {
		return nil
	}
	return svc.(*artistpay.Service)
}

func GetStableToken(c *gin.Context) *ledger.StableToken {
	token, exists := c.Get("stable_token")
	if !exists {
		return nil
	}
	return token.(*ledger.StableToken)
}

func GetCustodyAddress(c *gin.Context) string {
	custody, exists := c.Get("custody_address")
	if !exists {
		return ""
	}
	return custody.(string)
}
