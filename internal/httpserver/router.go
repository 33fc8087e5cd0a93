package httpserver

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	cartsvc "storefront/internal/service/cart"
	contactsvc "storefront/internal/service/contact"
)

type cartService interface {
	Get(ctx context.Context, cartID, country string) (*domain.Cart, error)
	Add(ctx context.Context, in cartsvc.AddInput) (*cartsvc.Result, error)
	UpdateLine(ctx context.Context, in cartsvc.UpdateInput) (*cartsvc.Result, error)
	RemoveLines(ctx context.Context, in cartsvc.RemoveInput) (*cartsvc.Result, error)
}

type catalogService interface {
	RecentProducts(ctx context.Context, handles []string, countryCode string) ([]domain.ProductCard, error)
}

type accountService interface {
	Recover(ctx context.Context, email string) error
	Overview(ctx context.Context, accessToken string) (*domain.Customer, error)
}

type contactService interface {
	Submit(ctx context.Context, in contactsvc.SubmitInput) (*domain.ContactMessage, error)
}

type reviewService interface {
	List(ctx context.Context, perPage, page int) []domain.Review
}

// Deps groups the services and probes the router needs.
type Deps struct {
	CartSvc    cartService
	CatalogSvc catalogService
	AccountSvc accountService
	ContactSvc contactService
	ReviewSvc  reviewService

	DB      pinger
	Cache   pinger
	Metrics http.Handler

	AllowedOrigins []string
	CookieSecure   bool
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, deps Deps) (*gin.Engine, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if deps.CartSvc == nil || deps.CatalogSvc == nil || deps.AccountSvc == nil || deps.ContactSvc == nil || deps.ReviewSvc == nil {
		return nil, errors.New("httpserver: all services are required")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	if len(deps.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     deps.AllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(deps.DB, deps.Cache))
	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics))
	}

	cookies := cookieJar{secure: deps.CookieSecure}
	h := &handlers{deps: deps, cookies: cookies, logger: logger}

	api := router.Group("/api")
	api.GET("/countries", listCountriesHandler)

	geo := api.Group("", countryMiddleware(cookies))
	api.POST("/country", h.setCountry)
	geo.GET("/country", currentCountryHandler)

	geo.GET("/cart", h.getCart)
	geo.POST("/cart", h.addToCart)
	geo.PATCH("/cart", h.updateCartLine)
	geo.DELETE("/cart", h.removeCartLines)

	geo.GET("/recent-products", h.recentProducts)

	api.POST("/account/recover", h.recoverAccount)
	api.GET("/account", h.accountOverview)
	api.POST("/contact", h.submitContact)
	api.GET("/reviews", h.listReviews)

	return router, nil
}

type handlers struct {
	deps    Deps
	cookies cookieJar
	logger  *log.Logger
}

func writeError(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}
