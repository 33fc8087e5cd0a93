package country

import (
	"strings"
	"time"
)

const (
	// CookieName holds the visitor's selected country code.
	CookieName = "country_code"
	// GeoConfirmedCookie marks that the visitor confirmed the detected country.
	GeoConfirmedCookie = "geo_confirmed"
	// HeaderName is set by the edge with the request's geo-located country.
	HeaderName = "X-Country"

	CookieMaxAge = 365 * 24 * time.Hour

	DefaultCode   = "US"
	DefaultLocale = "en-US"
)

// Config describes how a supported country is displayed and priced.
type Config struct {
	Code           string `json:"code"`
	NameEn         string `json:"nameEn"`
	NameAr         string `json:"nameAr"`
	Currency       string `json:"currency"`
	CurrencyNameEn string `json:"currencyNameEn"`
	Flag           string `json:"flag"`
	NumberLocale   string `json:"numberLocale"`
}

var supported = []Config{
	{Code: "JP", NameEn: "Japan", NameAr: "اليابان", Currency: "JPY", CurrencyNameEn: "Japanese Yen", Flag: "🇯🇵", NumberLocale: "en-JP"},
	{Code: "US", NameEn: "United States", NameAr: "الولايات المتحدة", Currency: "USD", CurrencyNameEn: "US Dollar", Flag: "🇺🇸", NumberLocale: "en-US"},
	{Code: "AE", NameEn: "United Arab Emirates", NameAr: "الإمارات العربية المتحدة", Currency: "AED", CurrencyNameEn: "UAE Dirham", Flag: "🇦🇪", NumberLocale: "en-AE"},
	{Code: "SA", NameEn: "Saudi Arabia", NameAr: "المملكة العربية السعودية", Currency: "SAR", CurrencyNameEn: "Saudi Riyal", Flag: "🇸🇦", NumberLocale: "en-SA"},
	{Code: "GB", NameEn: "United Kingdom", NameAr: "المملكة المتحدة", Currency: "GBP", CurrencyNameEn: "British Pound", Flag: "🇬🇧", NumberLocale: "en-GB"},
	{Code: "DE", NameEn: "Germany", NameAr: "ألمانيا", Currency: "EUR", CurrencyNameEn: "Euro", Flag: "🇩🇪", NumberLocale: "de-DE"},
	{Code: "AU", NameEn: "Australia", NameAr: "أستراليا", Currency: "AUD", CurrencyNameEn: "Australian Dollar", Flag: "🇦🇺", NumberLocale: "en-AU"},
	{Code: "CA", NameEn: "Canada", NameAr: "كندا", Currency: "CAD", CurrencyNameEn: "Canadian Dollar", Flag: "🇨🇦", NumberLocale: "en-CA"},
}

var byCode = func() map[string]Config {
	m := make(map[string]Config, len(supported))
	for _, c := range supported {
		m[c.Code] = c
	}
	return m
}()

// All returns the supported countries in display order.
func All() []Config {
	out := make([]Config, len(supported))
	copy(out, supported)
	return out
}

// Lookup finds a supported country, ignoring case and surrounding space.
func Lookup(code string) (Config, bool) {
	c, ok := byCode[strings.ToUpper(strings.TrimSpace(code))]
	return c, ok
}

// ByCode returns the matching country or the default one.
func ByCode(code string) Config {
	if c, ok := Lookup(code); ok {
		return c
	}
	return byCode[DefaultCode]
}

func IsSupported(code string) bool {
	_, ok := Lookup(code)
	return ok
}

// Default returns the fallback country.
func Default() Config {
	return byCode[DefaultCode]
}
