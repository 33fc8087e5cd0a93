package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront/internal/country"
	"storefront/internal/domain"
	"storefront/internal/service/account"
	contactsvc "storefront/internal/service/contact"
	"storefront/internal/shopify"
)

func TestCountryMiddleware_UsesGeoHeader(t *testing.T) {
	catalogStub := &stubCatalogService{items: []domain.ProductCard{}}
	deps := testDeps()
	deps.CatalogSvc = catalogStub
	deps.CookieSecure = true
	router := newTestRouter(t, deps)

	req := httptest.NewRequest(http.MethodGet, "/api/recent-products?handles=tea", nil)
	req.Header.Set(country.HeaderName, "de")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if catalogStub.lastCountry != "DE" {
		t.Fatalf("expected DE from geo header, got %q", catalogStub.lastCountry)
	}
	c := responseCookie(rec, country.CookieName)
	if c == nil || c.Value != "DE" || c.SameSite != http.SameSiteLaxMode || c.Path != "/" || c.MaxAge != 31536000 || c.Secure {
		t.Fatalf("expected country cookie, got %+v", c)
	}
}

func TestCountryMiddleware_UnsupportedHeaderFallsBack(t *testing.T) {
	catalogStub := &stubCatalogService{}
	deps := testDeps()
	deps.CatalogSvc = catalogStub
	router := newTestRouter(t, deps)

	req := httptest.NewRequest(http.MethodGet, "/api/recent-products?handles=tea", nil)
	req.Header.Set(country.HeaderName, "FR")
	router.ServeHTTP(httptest.NewRecorder(), req)

	if catalogStub.lastCountry != country.DefaultCode {
		t.Fatalf("expected default country, got %q", catalogStub.lastCountry)
	}
}

func TestCountryMiddleware_CookieWins(t *testing.T) {
	catalogStub := &stubCatalogService{}
	deps := testDeps()
	deps.CatalogSvc = catalogStub
	router := newTestRouter(t, deps)

	req := httptest.NewRequest(http.MethodGet, "/api/recent-products?handles=tea", nil)
	req.Header.Set(country.HeaderName, "DE")
	req.AddCookie(&http.Cookie{Name: country.CookieName, Value: "AE"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if catalogStub.lastCountry != "AE" {
		t.Fatalf("expected cookie country, got %q", catalogStub.lastCountry)
	}
	if responseCookie(rec, country.CookieName) != nil {
		t.Fatalf("expected cookie left untouched")
	}
}

func TestListCountries(t *testing.T) {
	rec := doRequest(newTestRouter(t, testDeps()), http.MethodGet, "/api/countries", "")
	var body struct {
		Countries []country.Config `json:"countries"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Countries) != len(country.All()) {
		t.Fatalf("expected %d countries, got %d", len(country.All()), len(body.Countries))
	}
}

func TestSetCountry(t *testing.T) {
	router := newTestRouter(t, testDeps())

	rec := doRequest(router, http.MethodPost, "/api/country", `{"code":"gb","confirm":true}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if c := responseCookie(rec, country.CookieName); c == nil || c.Value != "GB" {
		t.Fatalf("expected GB cookie, got %+v", c)
	}
	if c := responseCookie(rec, country.GeoConfirmedCookie); c == nil || c.Value != "true" {
		t.Fatalf("expected geo confirmed cookie, got %+v", c)
	}

	rec = doRequest(router, http.MethodPost, "/api/country", `{"code":"FR"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for unsupported code, got %d", rec.Code)
	}
}

func TestCurrentCountry(t *testing.T) {
	rec := doRequest(newTestRouter(t, testDeps()), http.MethodGet, "/api/country", "",
		&http.Cookie{Name: country.CookieName, Value: "JP"},
		&http.Cookie{Name: country.GeoConfirmedCookie, Value: "true"})
	var body struct {
		Country      country.Config `json:"country"`
		GeoConfirmed bool           `json:"geoConfirmed"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Country.Code != "JP" || body.Country.Currency != "JPY" || !body.GeoConfirmed {
		t.Fatalf("unexpected country response %+v", body)
	}
}

func TestRecentProducts(t *testing.T) {
	catalogStub := &stubCatalogService{items: []domain.ProductCard{{Title: "Tea", Href: "/products/tea"}}}
	deps := testDeps()
	deps.CatalogSvc = catalogStub

	rec := doRequest(newTestRouter(t, deps), http.MethodGet, "/api/recent-products?handles=tea,%20,cup", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if len(catalogStub.lastHandles) != 2 || catalogStub.lastHandles[1] != "cup" {
		t.Fatalf("unexpected handles %v", catalogStub.lastHandles)
	}
	if !strings.Contains(rec.Body.String(), `"href":"/products/tea"`) {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestRecentProducts_Failure(t *testing.T) {
	deps := testDeps()
	deps.CatalogSvc = &stubCatalogService{err: errTest}

	rec := doRequest(newTestRouter(t, deps), http.MethodGet, "/api/recent-products?handles=tea", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"items":[]`) {
		t.Fatalf("expected empty items, got %s", rec.Body.String())
	}
}

func TestRecoverAccount(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"ok", nil, http.StatusOK},
		{"missing email", account.ErrEmailRequired, http.StatusBadRequest},
		{"remote failure", errTest, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			deps := testDeps()
			deps.AccountSvc = &stubAccountService{recoverErr: tc.err}
			rec := doRequest(newTestRouter(t, deps), http.MethodPost, "/api/account/recover", `{"email":"a@b.co"}`)
			if rec.Code != tc.want {
				t.Fatalf("expected status %d, got %d", tc.want, rec.Code)
			}
		})
	}
}

func TestRecoverAccount_UnknownEmailLooksLikeSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"customerRecover":{"customerUserErrors":[{"code":"UNIDENTIFIED_CUSTOMER","message":"Could not find customer"}]}}}`))
	}))
	defer srv.Close()

	client := shopify.New(shopify.Config{Endpoint: srv.URL, AccessToken: "tok"}, logDiscard())
	deps := testDeps()
	deps.AccountSvc = account.New(client)

	rec := doRequest(newTestRouter(t, deps), http.MethodPost, "/api/account/recover", `{"email":"nobody@example.com"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !body.Success || body.Message != recoverMessage {
		t.Fatalf("expected generic success, got %+v", body)
	}
}

func TestAccountOverview(t *testing.T) {
	accountStub := &stubAccountService{customer: &domain.Customer{ID: "cust-1", Email: "a@b.co"}}
	deps := testDeps()
	deps.AccountSvc = accountStub
	router := newTestRouter(t, deps)

	rec := doRequest(router, http.MethodGet, "/api/account", "", &http.Cookie{Name: customerTokenCookie, Value: "tok"})
	if rec.Code != http.StatusOK || accountStub.lastToken != "tok" {
		t.Fatalf("expected 200 with cookie token, got %d token=%q", rec.Code, accountStub.lastToken)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/account", nil)
	req.Header.Set("Authorization", "Bearer hdr")
	router.ServeHTTP(httptest.NewRecorder(), req)
	if accountStub.lastToken != "hdr" {
		t.Fatalf("expected bearer token, got %q", accountStub.lastToken)
	}
}

func TestAccountOverview_Unauthorized(t *testing.T) {
	for _, err := range []error{account.ErrNoSession, &shopify.Error{Kind: shopify.KindUnauthorized, Message: "customer session expired"}} {
		deps := testDeps()
		deps.AccountSvc = &stubAccountService{overviewErr: err}
		rec := doRequest(newTestRouter(t, deps), http.MethodGet, "/api/account", "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected status 401 for %v, got %d", err, rec.Code)
		}
	}
}

func TestSubmitContact(t *testing.T) {
	contactStub := &stubContactService{}
	deps := testDeps()
	deps.ContactSvc = contactStub

	rec := doRequest(newTestRouter(t, deps), http.MethodPost, "/api/contact", `{"name":"Aki","email":"aki@example.com","message":"hello"}`)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected status 202, got %d", rec.Code)
	}
	if contactStub.last.Email != "aki@example.com" || contactStub.last.Name != "Aki" {
		t.Fatalf("unexpected submit input %+v", contactStub.last)
	}
}

func TestSubmitContact_Errors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
		msg  string
	}{
		{"missing", contactsvc.ErrMissingFields, http.StatusBadRequest, "Email and message are required"},
		{"invalid", contactsvc.ErrInvalidEmail, http.StatusBadRequest, "Email is invalid"},
		{"storage", errors.New("db down"), http.StatusInternalServerError, "Failed to send message"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			deps := testDeps()
			deps.ContactSvc = &stubContactService{err: tc.err}
			rec := doRequest(newTestRouter(t, deps), http.MethodPost, "/api/contact", `{"email":"x"}`)
			if rec.Code != tc.want {
				t.Fatalf("expected status %d, got %d", tc.want, rec.Code)
			}
			if got := decodeError(t, rec.Body.Bytes()); got != tc.msg {
				t.Fatalf("unexpected message %q", got)
			}
		})
	}
}

func TestListReviews(t *testing.T) {
	reviewStub := &stubReviewService{reviews: []domain.Review{{ID: 1, Title: "Great"}}}
	deps := testDeps()
	deps.ReviewSvc = reviewStub

	rec := doRequest(newTestRouter(t, deps), http.MethodGet, "/api/reviews?per_page=5&page=x", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if reviewStub.lastPerPage != 5 || reviewStub.lastPage != 1 {
		t.Fatalf("unexpected paging per_page=%d page=%d", reviewStub.lastPerPage, reviewStub.lastPage)
	}
}
