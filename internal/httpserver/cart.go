package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"storefront/internal/country"
	"storefront/internal/domain"
	cartsvc "storefront/internal/service/cart"
	"storefront/internal/shopify"
)

type addToCartRequest struct {
	CartID        string `json:"cartId"`
	MerchandiseID string `json:"merchandiseId"`
	Quantity      *int   `json:"quantity"`
}

type updateCartLineRequest struct {
	CartID   string `json:"cartId"`
	LineID   string `json:"lineId"`
	Quantity *int   `json:"quantity"`
}

type removeCartLinesRequest struct {
	CartID  string   `json:"cartId"`
	LineIDs []string `json:"lineIds"`
}

type cartResponse struct {
	CartID string       `json:"cartId"`
	Cart   *domain.Cart `json:"cart"`
}

type cartStateResponse struct {
	CartID  string          `json:"cartId"`
	Cart    *domain.Cart    `json:"cart"`
	Summary cartsvc.Summary `json:"summary"`
}

// resolveCartID prefers the cookie so a stale body value cannot move the
// visitor onto another cart.
func resolveCartID(c *gin.Context, fromBody string) string {
	if id := strings.TrimSpace(cookieValue(c, cartCookieName)); id != "" {
		return id
	}
	return strings.TrimSpace(fromBody)
}

func (h *handlers) getCart(c *gin.Context) {
	code := visitorCountry(c)
	locale := country.ByCode(code).NumberLocale
	cartID := resolveCartID(c, "")
	if cartID == "" {
		c.JSON(http.StatusOK, cartStateResponse{Summary: cartsvc.Summarize(nil, locale)})
		return
	}

	cart, err := h.deps.CartSvc.Get(c.Request.Context(), cartID, code)
	if err != nil {
		h.logger.Printf("cart handler: get cart_id=%s: %v", cartID, err)
		writeError(c, http.StatusInternalServerError, remoteMessage(err))
		return
	}
	if cart == nil {
		h.cookies.clearCart(c)
		c.JSON(http.StatusOK, cartStateResponse{Summary: cartsvc.Summarize(nil, locale)})
		return
	}
	c.JSON(http.StatusOK, cartStateResponse{CartID: cart.ID, Cart: cart, Summary: cartsvc.Summarize(cart, locale)})
}

func (h *handlers) addToCart(c *gin.Context) {
	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	res, err := h.deps.CartSvc.Add(c.Request.Context(), cartsvc.AddInput{
		CartID:        resolveCartID(c, req.CartID),
		MerchandiseID: req.MerchandiseID,
		Quantity:      quantity,
		Country:       visitorCountry(c),
	})
	if err != nil {
		h.writeCartError(c, "add", err)
		return
	}
	h.respondCart(c, res)
}

func (h *handlers) updateCartLine(c *gin.Context) {
	var req updateCartLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := h.deps.CartSvc.UpdateLine(c.Request.Context(), cartsvc.UpdateInput{
		CartID:   resolveCartID(c, req.CartID),
		LineID:   req.LineID,
		Quantity: req.Quantity,
		Country:  visitorCountry(c),
	})
	if err != nil {
		h.writeCartError(c, "update", err)
		return
	}
	h.respondCart(c, res)
}

func (h *handlers) removeCartLines(c *gin.Context) {
	var req removeCartLinesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := h.deps.CartSvc.RemoveLines(c.Request.Context(), cartsvc.RemoveInput{
		CartID:  resolveCartID(c, req.CartID),
		LineIDs: req.LineIDs,
		Country: visitorCountry(c),
	})
	if err != nil {
		h.writeCartError(c, "remove", err)
		return
	}
	h.respondCart(c, res)
}

func (h *handlers) respondCart(c *gin.Context, res *cartsvc.Result) {
	h.cookies.setCart(c, res.CartID)
	c.JSON(http.StatusOK, cartResponse{CartID: res.CartID, Cart: res.Cart})
}

func (h *handlers) writeCartError(c *gin.Context, op string, err error) {
	if cartsvc.IsValidation(err) {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	// A stale cart only reaches here from update or remove; add recovers.
	if errors.Is(err, domain.ErrNotFound) {
		h.cookies.clearCart(c)
	}
	h.logger.Printf("cart handler: %s kind=%s: %v", op, shopify.KindOf(err), err)
	writeError(c, http.StatusInternalServerError, remoteMessage(err))
}

// remoteMessage exposes platform messages and hides everything else.
func remoteMessage(err error) string {
	var se *shopify.Error
	if errors.As(err, &se) {
		return se.Error()
	}
	if errors.Is(err, shopify.ErrMissingCredentials) {
		return err.Error()
	}
	return "Unknown error"
}
