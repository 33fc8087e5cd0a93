package httpserver

import (
	"encoding/json"
	"net/http"
	"testing"

	"storefront/internal/country"
	"storefront/internal/domain"
	cartsvc "storefront/internal/service/cart"
	"storefront/internal/shopify"
)

func sampleCart(id string) *domain.Cart {
	return &domain.Cart{
		ID:            id,
		TotalQuantity: 2,
		Cost:          domain.CartCost{SubtotalAmount: domain.Money{Amount: "20.0", CurrencyCode: "USD"}},
		Lines: []domain.CartLine{{
			ID:       "line-1",
			Quantity: 2,
			Merchandise: domain.Merchandise{
				ID:      "gid://shopify/ProductVariant/1",
				Title:   "Default Title",
				Price:   domain.Money{Amount: "10.0", CurrencyCode: "USD"},
				Product: domain.ProductRef{Title: "Matcha", Handle: "matcha"},
			},
		}},
	}
}

func TestGetCart_NoCookie(t *testing.T) {
	cartStub := &stubCartService{}
	deps := testDeps()
	deps.CartSvc = cartStub

	rec := doRequest(newTestRouter(t, deps), http.MethodGet, "/api/cart", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var body struct {
		CartID  string          `json:"cartId"`
		Cart    *domain.Cart    `json:"cart"`
		Summary cartsvc.Summary `json:"summary"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.CartID != "" || body.Cart != nil || body.Summary.TotalQuantity != 0 {
		t.Fatalf("expected empty cart state, got %+v", body)
	}
	if cartStub.calls != 0 {
		t.Fatalf("expected no service call")
	}
}

func TestGetCart_WithSummary(t *testing.T) {
	cartStub := &stubCartService{cart: sampleCart("gid://shopify/Cart/1")}
	deps := testDeps()
	deps.CartSvc = cartStub

	rec := doRequest(newTestRouter(t, deps), http.MethodGet, "/api/cart", "",
		&http.Cookie{Name: cartCookieName, Value: "gid://shopify/Cart/1"},
		&http.Cookie{Name: country.CookieName, Value: "US"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var body cartStateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.CartID != "gid://shopify/Cart/1" || len(body.Summary.Items) != 1 || body.Summary.Items[0].Title != "Matcha" {
		t.Fatalf("unexpected cart state %+v", body)
	}
}

func TestGetCart_StaleCookieCleared(t *testing.T) {
	deps := testDeps()
	deps.CartSvc = &stubCartService{}

	rec := doRequest(newTestRouter(t, deps), http.MethodGet, "/api/cart", "",
		&http.Cookie{Name: cartCookieName, Value: "gone"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if c := responseCookie(rec, cartCookieName); c == nil || c.MaxAge >= 0 {
		t.Fatalf("expected cart cookie to be expired, got %+v", c)
	}
}

func TestAddToCart_SetsCookie(t *testing.T) {
	cartStub := &stubCartService{result: &cartsvc.Result{CartID: "gid://shopify/Cart/9", Cart: sampleCart("gid://shopify/Cart/9"), Created: true}}
	deps := testDeps()
	deps.CartSvc = cartStub
	deps.CookieSecure = true

	rec := doRequest(newTestRouter(t, deps), http.MethodPost, "/api/cart", `{"merchandiseId":"gid://shopify/ProductVariant/1"}`,
		&http.Cookie{Name: country.CookieName, Value: "jp"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if cartStub.lastAdd.Quantity != 1 || cartStub.lastAdd.Country != "JP" {
		t.Fatalf("expected default quantity and visitor country, got %+v", cartStub.lastAdd)
	}
	c := responseCookie(rec, cartCookieName)
	if c == nil || c.Value != "gid://shopify/Cart/9" || c.MaxAge != 518400 || !c.HttpOnly || !c.Secure || c.SameSite != http.SameSiteLaxMode || c.Path != "/" {
		t.Fatalf("unexpected cart cookie %+v", c)
	}
}

func TestAddToCart_CookiePreferredOverBody(t *testing.T) {
	cartStub := &stubCartService{result: &cartsvc.Result{CartID: "from-cookie", Cart: sampleCart("from-cookie")}}
	deps := testDeps()
	deps.CartSvc = cartStub

	doRequest(newTestRouter(t, deps), http.MethodPost, "/api/cart", `{"cartId":"from-body","merchandiseId":"v1","quantity":2}`,
		&http.Cookie{Name: cartCookieName, Value: "from-cookie"})
	if cartStub.lastAdd.CartID != "from-cookie" || cartStub.lastAdd.Quantity != 2 {
		t.Fatalf("expected cookie cart id, got %+v", cartStub.lastAdd)
	}
}

func TestAddToCart_BodyCartIDWithoutCookie(t *testing.T) {
	cartStub := &stubCartService{result: &cartsvc.Result{CartID: "from-body", Cart: sampleCart("from-body")}}
	deps := testDeps()
	deps.CartSvc = cartStub

	doRequest(newTestRouter(t, deps), http.MethodPost, "/api/cart", `{"cartId":"from-body","merchandiseId":"v1"}`)
	if cartStub.lastAdd.CartID != "from-body" {
		t.Fatalf("expected body cart id, got %+v", cartStub.lastAdd)
	}
}

func TestAddToCart_MalformedJSON(t *testing.T) {
	cartStub := &stubCartService{}
	deps := testDeps()
	deps.CartSvc = cartStub

	rec := doRequest(newTestRouter(t, deps), http.MethodPost, "/api/cart", `{"merchandiseId":`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	if cartStub.calls != 0 {
		t.Fatalf("expected no service call")
	}
}

func TestAddToCart_ValidationError(t *testing.T) {
	deps := testDeps()
	deps.CartSvc = &stubCartService{err: &cartsvc.ValidationError{Message: "merchandiseId is required"}}

	rec := doRequest(newTestRouter(t, deps), http.MethodPost, "/api/cart", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	if got := decodeError(t, rec.Body.Bytes()); got != "merchandiseId is required" {
		t.Fatalf("unexpected error message %q", got)
	}
}

func TestAddToCart_RemoteError(t *testing.T) {
	deps := testDeps()
	deps.CartSvc = &stubCartService{err: &shopify.Error{Kind: shopify.KindValidation, Message: "The merchandise with id v1 does not exist."}}

	rec := doRequest(newTestRouter(t, deps), http.MethodPost, "/api/cart", `{"merchandiseId":"v1"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
	if got := decodeError(t, rec.Body.Bytes()); got != "The merchandise with id v1 does not exist." {
		t.Fatalf("unexpected error message %q", got)
	}
}

func TestUpdateCartLine_PassesQuantityPointer(t *testing.T) {
	cartStub := &stubCartService{result: &cartsvc.Result{CartID: "c1", Cart: sampleCart("c1")}}
	deps := testDeps()
	deps.CartSvc = cartStub

	rec := doRequest(newTestRouter(t, deps), http.MethodPatch, "/api/cart", `{"lineId":"line-1","quantity":0}`,
		&http.Cookie{Name: cartCookieName, Value: "c1"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if cartStub.lastUpd.Quantity == nil || *cartStub.lastUpd.Quantity != 0 || cartStub.lastUpd.CartID != "c1" {
		t.Fatalf("unexpected update input %+v", cartStub.lastUpd)
	}
}

func TestUpdateCartLine_MissingQuantityLeavesNil(t *testing.T) {
	cartStub := &stubCartService{err: &cartsvc.ValidationError{Message: "cartId, lineId and quantity are required"}}
	deps := testDeps()
	deps.CartSvc = cartStub

	rec := doRequest(newTestRouter(t, deps), http.MethodPatch, "/api/cart", `{"lineId":"line-1","quantity":null}`,
		&http.Cookie{Name: cartCookieName, Value: "c1"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	if cartStub.lastUpd.Quantity != nil {
		t.Fatalf("expected nil quantity, got %v", *cartStub.lastUpd.Quantity)
	}
}

func TestUpdateCartLine_StaleCartExpiresCookie(t *testing.T) {
	deps := testDeps()
	deps.CartSvc = &stubCartService{err: &shopify.Error{Kind: shopify.KindNotFound, Message: "The specified cart does not exist."}}

	rec := doRequest(newTestRouter(t, deps), http.MethodPatch, "/api/cart", `{"lineId":"line-1","quantity":3}`,
		&http.Cookie{Name: cartCookieName, Value: "stale"})
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
	if c := responseCookie(rec, cartCookieName); c == nil || c.MaxAge >= 0 {
		t.Fatalf("expected cart cookie to be expired, got %+v", c)
	}
}

func TestRemoveCartLines(t *testing.T) {
	cartStub := &stubCartService{result: &cartsvc.Result{CartID: "c1", Cart: &domain.Cart{ID: "c1"}}}
	deps := testDeps()
	deps.CartSvc = cartStub

	rec := doRequest(newTestRouter(t, deps), http.MethodDelete, "/api/cart", `{"cartId":"c1","lineIds":["a","b"]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if len(cartStub.lastRem.LineIDs) != 2 || cartStub.lastRem.CartID != "c1" {
		t.Fatalf("unexpected remove input %+v", cartStub.lastRem)
	}
	if c := responseCookie(rec, cartCookieName); c == nil || c.Value != "c1" {
		t.Fatalf("expected cart cookie refreshed, got %+v", c)
	}
}

func TestRemoveCartLines_UnknownErrorMessage(t *testing.T) {
	deps := testDeps()
	deps.CartSvc = &stubCartService{err: errTest}

	rec := doRequest(newTestRouter(t, deps), http.MethodDelete, "/api/cart", `{"cartId":"c1","lineIds":["a"]}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
	if got := decodeError(t, rec.Body.Bytes()); got != "Unknown error" {
		t.Fatalf("unexpected error message %q", got)
	}
}

func decodeError(t *testing.T, body []byte) string {
	t.Helper()
	var out struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return out.Error
}
