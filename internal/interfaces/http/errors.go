package httpinterface

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/NikhilRaikwar/solpacket-daemon/internal/core/domain"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorReply struct {
	Error errorBody `json:"error"`
}

var errorCodes = map[error]struct {
	status int
	code   string
}{
	domain.ErrInvalidGiftId:          {http.StatusBadRequest, "invalid_gift_id"},
	domain.ErrGiftIdTooLong:          {http.StatusBadRequest, "gift_id_too_long"},
	domain.ErrInvalidAmount:          {http.StatusBadRequest, "invalid_amount"},
	domain.ErrInvalidSender:          {http.StatusBadRequest, "invalid_sender"},
	domain.ErrInvalidRecipient:       {http.StatusBadRequest, "invalid_recipient"},
	domain.ErrInsufficientFunds:      {http.StatusPaymentRequired, "insufficient_funds"},
	domain.ErrUnauthorizedRecipient:  {http.StatusForbidden, "unauthorized_recipient"},
	domain.ErrUnauthorizedSender:     {http.StatusForbidden, "unauthorized_sender"},
	domain.ErrGiftNotFound:           {http.StatusNotFound, "gift_not_found"},
	domain.ErrDuplicateGiftId:        {http.StatusConflict, "duplicate_gift_id"},
	domain.ErrAlreadyClaimed:         {http.StatusConflict, "already_claimed"},
	domain.ErrGiftExpired:            {http.StatusConflict, "expired"},
	domain.ErrGiftNotExpired:         {http.StatusConflict, "not_yet_expired"},
}

// replyError translates a domain error into its HTTP status and stable
// machine-readable code. Unknown errors are hidden behind a 500.
func replyError(c *gin.Context, err error) {
	for domainErr, mapping := range errorCodes {
		if errors.Is(err, domainErr) {
			c.AbortWithStatusJSON(mapping.status, errorReply{
				Error: errorBody{Code: mapping.code, Message: domainErr.Error()},
			})
			return
		}
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, errorReply{
		Error: errorBody{Code: "internal", Message: "service is unavailable, try again later"},
	})
}

func replyBadRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, errorReply{
		Error: errorBody{Code: "bad_request", Message: message},
	})
}

func replyUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, errorReply{
		Error: errorBody{Code: "unauthorized", Message: message},
	})
}
