// Package htmx holds the slice of the htmx protocol the site uses: request
// detection, the query of the page that issued the request, HX-Trigger
// events and redirects that work for htmx and plain requests alike.
package htmx
