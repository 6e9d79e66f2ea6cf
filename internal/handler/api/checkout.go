package api

import (
	"errors"
	"net/http"

	reqdto "cart-engine/internal/handler/dto/request"
	resdto "cart-engine/internal/handler/dto/response"
	"cart-engine/internal/handler/httperr"
	"cart-engine/internal/handler/middleware"
	"cart-engine/internal/infra/staging"
	"cart-engine/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type CheckoutHandler struct {
	cmds commands.CheckoutCommands
}

func NewCheckoutHandler(cmds commands.CheckoutCommands) *CheckoutHandler {
	return &CheckoutHandler{cmds: cmds}
}

// @Summary Stage cart for checkout
// @Description Convert the whole cart into a staged order and return a redirect target
// @Tags checkout
// @Accept json
// @Produce json
// @Param request body reqdto.StageCartRequest true "Stage cart request"
// @Success 200 {object} resdto.StageResponse
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /api/checkout [post]
func (h *CheckoutHandler) StageCart(c *gin.Context) {
	sid, ok := middleware.GetSessionID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, nil, "Session missing", nil)
		return
	}
	var req reqdto.StageCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	result, err := h.cmds.StageCart(c.Request.Context(), sid, req.ClientName)
	if err != nil {
		h.abortStagingError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromStageResult(result))
}

// @Summary Buy now
// @Description Stage a single ad-hoc item at quantity 1, bypassing the cart
// @Tags checkout
// @Accept json
// @Produce json
// @Param request body reqdto.BuyNowRequest true "Buy now request"
// @Success 200 {object} resdto.StageResponse
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /api/checkout/buy-now [post]
func (h *CheckoutHandler) BuyNow(c *gin.Context) {
	var req reqdto.BuyNowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	result, err := h.cmds.StageSingleItem(c.Request.Context(), req.ToCommand(), req.ClientName)
	if err != nil {
		h.abortStagingError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromStageResult(result))
}

// Validation failures never reached the network; transport and remote
// failures both leave the cart untouched and differ only in messaging.
func (h *CheckoutHandler) abortStagingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrEmptyCart):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Cart is empty", nil)
	case errors.Is(err, commands.ErrBlankClientName):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Client name is required", nil)
	case isCartValidationErr(err):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid item", nil)
	case staging.IsKind(err, staging.KindTransport):
		httperr.AbortWithError(c, http.StatusBadGateway, err, "Checkout service unreachable, please retry", nil)
	case staging.IsKind(err, staging.KindRemoteRejected), staging.IsKind(err, staging.KindBadResponse):
		httperr.AbortWithError(c, http.StatusBadGateway, err, "Checkout service rejected the request", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Checkout failed", nil)
	}
}
