package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/country"
)

const (
	cartCookieName   = "cartId"
	cartCookieMaxAge = 6 * 24 * 60 * 60

	customerTokenCookie = "customerAccessToken"
)

type cookieJar struct {
	secure bool
}

func (j cookieJar) setCart(c *gin.Context, cartID string) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     cartCookieName,
		Value:    cartID,
		Path:     "/",
		MaxAge:   cartCookieMaxAge,
		HttpOnly: true,
		Secure:   j.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (j cookieJar) clearCart(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     cartCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   j.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (j cookieJar) setCountry(c *gin.Context, code string) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     country.CookieName,
		Value:    code,
		Path:     "/",
		MaxAge:   int(country.CookieMaxAge.Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}

func (j cookieJar) confirmGeo(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     country.GeoConfirmedCookie,
		Value:    "true",
		Path:     "/",
		MaxAge:   int(country.CookieMaxAge.Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}

func cookieValue(c *gin.Context, name string) string {
	v, err := c.Cookie(name)
	if err != nil {
		return ""
	}
	return v
}
