package htmx

import (
	"net/http"
	"net/url"
)

// IsHTMX returns true if the request originated from HTMX.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get(HeaderHXRequest) == "true"
}

// CurrentQuery returns the query of the page that issued an HTMX request,
// taken from HX-Current-URL. It is empty for non-HTMX requests or when the
// header does not parse.
func CurrentQuery(r *http.Request) url.Values {
	raw := r.Header.Get(HeaderHXCurrentURL)
	if raw == "" {
		return url.Values{}
	}
	u, err := url.Parse(raw)
	if err != nil {
		return url.Values{}
	}
	return u.Query()
}
