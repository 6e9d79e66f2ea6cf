package api

import (
	"errors"
	"net/http"

	"cart-engine/internal/domain/cart"
	reqdto "cart-engine/internal/handler/dto/request"
	resdto "cart-engine/internal/handler/dto/response"
	"cart-engine/internal/handler/httperr"
	"cart-engine/internal/handler/middleware"
	"cart-engine/internal/usecase/commands"
	"cart-engine/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CartHandler struct {
	cmds commands.CartCommands
	q    queries.CartQueries
}

func NewCartHandler(cmds commands.CartCommands, q queries.CartQueries) *CartHandler {
	return &CartHandler{cmds: cmds, q: q}
}

// @Summary Get cart
// @Description Current cart contents with derived total and count
// @Tags cart
// @Produce json
// @Success 200 {object} resdto.CartResponse
// @Router /api/cart [get]
func (h *CartHandler) Get(c *gin.Context) {
	sid, ok := middleware.GetSessionID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, nil, "Session missing", nil)
		return
	}
	view, err := h.q.GetCart(c.Request.Context(), sid)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load cart", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCartView(view))
}

// @Summary Add item
// @Description Add a product to the cart; same product id merges quantities
// @Tags cart
// @Accept json
// @Produce json
// @Param request body reqdto.AddItemRequest true "Add item request"
// @Success 200 {object} resdto.AddItemResponse
// @Failure 400 {object} map[string]string
// @Router /api/cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	sid, ok := middleware.GetSessionID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, nil, "Session missing", nil)
		return
	}
	var req reqdto.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	result, err := h.cmds.AddItem(c.Request.Context(), sid, req.ToCommand())
	if err != nil {
		if isCartValidationErr(err) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid item", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to add item", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromAddItemResult(result))
}

// @Summary Update quantity
// @Description Set a line's quantity exactly; zero or less removes it
// @Tags cart
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param request body reqdto.UpdateQuantityRequest true "Update quantity request"
// @Success 200 {object} resdto.CartResponse
// @Failure 400 {object} map[string]string
// @Router /api/cart/items/{id} [patch]
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	sid, ok := middleware.GetSessionID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, nil, "Session missing", nil)
		return
	}
	productID := c.Param("id")
	var req reqdto.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	if err := h.cmds.UpdateQuantity(c.Request.Context(), sid, productID, *req.Quantity); err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to update quantity", nil)
		return
	}
	h.respondWithCart(c, sid)
}

// @Summary Remove item
// @Tags cart
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} resdto.CartResponse
// @Router /api/cart/items/{id} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	sid, ok := middleware.GetSessionID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, nil, "Session missing", nil)
		return
	}
	if err := h.cmds.RemoveItem(c.Request.Context(), sid, c.Param("id")); err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to remove item", nil)
		return
	}
	h.respondWithCart(c, sid)
}

// @Summary Clear cart
// @Tags cart
// @Produce json
// @Success 204
// @Router /api/cart [delete]
func (h *CartHandler) Clear(c *gin.Context) {
	sid, ok := middleware.GetSessionID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, nil, "Session missing", nil)
		return
	}
	if err := h.cmds.ClearCart(c.Request.Context(), sid); err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to clear cart", nil)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CartHandler) respondWithCart(c *gin.Context, sid uuid.UUID) {
	view, err := h.q.GetCart(c.Request.Context(), sid)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load cart", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCartView(view))
}

func isCartValidationErr(err error) bool {
	return errors.Is(err, cart.ErrEmptyProductID) ||
		errors.Is(err, cart.ErrNegativePrice) ||
		errors.Is(err, cart.ErrInvalidQuantity)
}
