package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"storefront/internal/country"
)

const countryCtxKey = "visitorCountry"

// countryMiddleware resolves the visitor's country. Without a usable cookie
// the edge geo header decides, falling back to the default country.
func countryMiddleware(cookies cookieJar) gin.HandlerFunc {
	return func(c *gin.Context) {
		code := strings.ToUpper(strings.TrimSpace(cookieValue(c, country.CookieName)))
		if !country.IsSupported(code) {
			code = strings.ToUpper(strings.TrimSpace(c.GetHeader(country.HeaderName)))
			if !country.IsSupported(code) {
				code = country.DefaultCode
			}
			cookies.setCountry(c, code)
		}
		c.Set(countryCtxKey, code)
		c.Next()
	}
}

func visitorCountry(c *gin.Context) string {
	if code := c.GetString(countryCtxKey); code != "" {
		return code
	}
	return country.DefaultCode
}

func listCountriesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"countries": country.All()})
}

func currentCountryHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"country":      country.ByCode(visitorCountry(c)),
		"geoConfirmed": cookieValue(c, country.GeoConfirmedCookie) == "true",
	})
}

type setCountryRequest struct {
	Code    string `json:"code"`
	Confirm bool   `json:"confirm"`
}

func (h *handlers) setCountry(c *gin.Context) {
	var req setCountryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if !country.IsSupported(req.Code) {
		writeError(c, http.StatusBadRequest, "unsupported country")
		return
	}
	cfg := country.ByCode(req.Code)
	h.cookies.setCountry(c, cfg.Code)
	if req.Confirm {
		h.cookies.confirmGeo(c)
	}
	c.JSON(http.StatusOK, gin.H{"country": cfg, "geoConfirmed": req.Confirm || cookieValue(c, country.GeoConfirmedCookie) == "true"})
}
