package httpinterface

import (
	"bytes"
	"io"
	"strconv"

	"github.com/gagliardetto/solana-go"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/NikhilRaikwar/solpacket-daemon/pkg/reqsig"
)

const callerContextKey = "caller"

var requestsCounter = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "solpacket_http_requests_total",
		Help: "Number of processed HTTP requests by path and status.",
	},
	[]string{"path", "method", "status"},
)

// authMiddleware verifies the ed25519 signature of the request body against
// the caller's public key and stores the authenticated identity in the
// context. With noAuth the declared public key is trusted as-is, meant for
// development only.
func authMiddleware(noAuth bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		pubkey := c.GetHeader(reqsig.HeaderPubkey)
		if pubkey == "" {
			replyUnauthorized(c, "missing "+reqsig.HeaderPubkey+" header")
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			replyBadRequest(c, "failed to read request body")
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		if noAuth {
			caller, err := solana.PublicKeyFromBase58(pubkey)
			if err != nil {
				replyUnauthorized(c, "invalid public key")
				return
			}
			c.Set(callerContextKey, caller)
			c.Next()
			return
		}

		signature := c.GetHeader(reqsig.HeaderSignature)
		if signature == "" {
			replyUnauthorized(c, "missing "+reqsig.HeaderSignature+" header")
			return
		}

		caller, err := reqsig.Verify(pubkey, signature, body)
		if err != nil {
			replyUnauthorized(c, err.Error())
			return
		}

		c.Set(callerContextKey, caller)
		c.Next()
	}
}

func callerFromContext(c *gin.Context) solana.PublicKey {
	return c.MustGet(callerContextKey).(solana.PublicKey)
}

func metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		requestsCounter.WithLabelValues(
			c.FullPath(), c.Request.Method, strconv.Itoa(c.Writer.Status()),
		).Inc()
	}
}
