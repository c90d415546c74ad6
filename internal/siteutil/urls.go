package siteutil

import (
	"net/url"
	"strings"
	"unicode"
)

// PhoneURL builds a tel: link, dropping every non-digit from phone. An empty
// countryCode means "1".
func PhoneURL(phone, countryCode string) string {
	if countryCode == "" {
		countryCode = "1"
	}
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	return "tel:+" + countryCode + digits
}

// GoogleMapsURL builds a maps search link for a business at address.
func GoogleMapsURL(businessName, address string) string {
	return "https://www.google.com/maps/search/?api=1&query=" + EncodeURIComponent(businessName+", "+address)
}

// MailtoURL builds a mailto: link with an optional subject.
func MailtoURL(email, subject string) string {
	if subject == "" {
		return "mailto:" + email
	}
	return "mailto:" + email + "?subject=" + EncodeURIComponent(subject)
}

var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeURIComponent percent-encodes s the way browsers encode a single URI
// component: spaces become %20 and !'()* stay literal.
func EncodeURIComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}

// URLParams returns the query parameters of rawURL. A repeated key keeps its
// last value. An unparsable URL yields an empty map.
func URLParams(rawURL string) map[string]string {
	params := map[string]string{}
	values, ok := queryOf(rawURL)
	if !ok {
		return params
	}
	for key, vals := range values {
		if len(vals) > 0 {
			params[key] = vals[len(vals)-1]
		}
	}
	return params
}

// URLParam returns the first value of name in rawURL's query.
func URLParam(rawURL, name string) (string, bool) {
	values, ok := queryOf(rawURL)
	if !ok || !values.Has(name) {
		return "", false
	}
	return values.Get(name), true
}

func queryOf(rawURL string) (url.Values, bool) {
	raw := strings.TrimFunc(rawURL, unicode.IsSpace)
	u, err := url.Parse(raw)
	if err != nil {
		return nil, false
	}
	// Malformed pairs are dropped; the rest still count.
	values, _ := url.ParseQuery(u.RawQuery)
	return values, true
}
