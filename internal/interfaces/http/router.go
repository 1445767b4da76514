// Package httpinterface exposes the caller-facing operations of the escrow
// program over a signed REST interface, plus the read-only views, the
// websocket event feed and the prometheus metrics.
package httpinterface

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/NikhilRaikwar/solpacket-daemon/internal/core/application"
)

// RouterOpts groups the dependencies of the REST interface.
type RouterOpts struct {
	EscrowService  application.EscrowService
	AccountService application.AccountService
	EventHub       *EventHub
	NoAuth         bool
}

// NewRouter returns the gin engine serving the daemon API.
func NewRouter(opts RouterOpts) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), metricsMiddleware())

	gifts := newGiftHandler(opts.EscrowService)
	accounts := newAccountHandler(opts.AccountService)

	v1 := router.Group("/v1")
	{
		signed := v1.Group("", authMiddleware(opts.NoAuth))
		{
			signed.POST("/gifts", gifts.initialize)
			signed.POST("/gifts/:id/claim", gifts.claim)
			signed.POST("/gifts/:id/refund", gifts.refund)
			signed.POST("/accounts/:owner/deposit", accounts.deposit)
		}

		v1.GET("/gifts", gifts.list)
		v1.GET("/gifts/:id", gifts.get)
		v1.GET("/accounts/:owner/balance", accounts.balance)

		if opts.EventHub != nil {
			v1.GET("/events", opts.EventHub.handleSubscribe)
		}

		v1.GET("/info", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"name": "solpacketd", "version": "v1"})
		})
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
