package httpinterface

import (
	"net/http"

	"github.com/gagliardetto/solana-go"
	"github.com/gin-gonic/gin"

	"github.com/NikhilRaikwar/solpacket-daemon/internal/core/application"
	"github.com/NikhilRaikwar/solpacket-daemon/internal/core/domain"
)

type initGiftRequest struct {
	GiftId    string `json:"gift_id" binding:"required"`
	Recipient string `json:"recipient" binding:"required"`
	Amount    uint64 `json:"amount"`
	Message   string `json:"message"`
}

type depositRequest struct {
	Amount uint64 `json:"amount"`
}

type giftHandler struct {
	escrowSvc application.EscrowService
}

func newGiftHandler(escrowSvc application.EscrowService) *giftHandler {
	return &giftHandler{escrowSvc: escrowSvc}
}

func (h *giftHandler) initialize(c *gin.Context) {
	var req initGiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		replyBadRequest(c, err.Error())
		return
	}
	recipient, err := solana.PublicKeyFromBase58(req.Recipient)
	if err != nil {
		replyError(c, domain.ErrInvalidRecipient)
		return
	}

	info, err := h.escrowSvc.Initialize(c.Request.Context(), application.InitGiftRequest{
		GiftId:    req.GiftId,
		Sender:    callerFromContext(c),
		Recipient: recipient,
		Amount:    req.Amount,
		Message:   req.Message,
	})
	if err != nil {
		replyError(c, err)
		return
	}
	c.JSON(http.StatusCreated, info)
}

func (h *giftHandler) claim(c *gin.Context) {
	info, err := h.escrowSvc.Claim(c.Request.Context(), application.SettleGiftRequest{
		GiftId: c.Param("id"),
		Caller: callerFromContext(c),
	})
	if err != nil {
		replyError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

func (h *giftHandler) refund(c *gin.Context) {
	info, err := h.escrowSvc.Refund(c.Request.Context(), application.SettleGiftRequest{
		GiftId: c.Param("id"),
		Caller: callerFromContext(c),
	})
	if err != nil {
		replyError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

func (h *giftHandler) get(c *gin.Context) {
	info, err := h.escrowSvc.GetGift(c.Request.Context(), c.Param("id"))
	if err != nil {
		replyError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

func (h *giftHandler) list(c *gin.Context) {
	var filter application.ListGiftsFilter
	if sender := c.Query("sender"); sender != "" {
		pk, err := solana.PublicKeyFromBase58(sender)
		if err != nil {
			replyError(c, domain.ErrInvalidSender)
			return
		}
		filter.Sender = &pk
	} else if recipient := c.Query("recipient"); recipient != "" {
		pk, err := solana.PublicKeyFromBase58(recipient)
		if err != nil {
			replyError(c, domain.ErrInvalidRecipient)
			return
		}
		filter.Recipient = &pk
	}

	infos, err := h.escrowSvc.ListGifts(c.Request.Context(), filter)
	if err != nil {
		replyError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"gifts": infos})
}

type accountHandler struct {
	accountSvc application.AccountService
}

func newAccountHandler(accountSvc application.AccountService) *accountHandler {
	return &accountHandler{accountSvc: accountSvc}
}

func (h *accountHandler) deposit(c *gin.Context) {
	owner, err := solana.PublicKeyFromBase58(c.Param("owner"))
	if err != nil {
		replyBadRequest(c, "invalid owner public key")
		return
	}
	if !owner.Equals(callerFromContext(c)) {
		replyUnauthorized(c, "cannot deposit to another owner's account")
		return
	}

	var req depositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		replyBadRequest(c, err.Error())
		return
	}

	info, err := h.accountSvc.Deposit(c.Request.Context(), owner, req.Amount)
	if err != nil {
		replyError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

func (h *accountHandler) balance(c *gin.Context) {
	owner, err := solana.PublicKeyFromBase58(c.Param("owner"))
	if err != nil {
		replyBadRequest(c, "invalid owner public key")
		return
	}

	info, err := h.accountSvc.GetBalance(c.Request.Context(), owner)
	if err != nil {
		replyError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}
