// Package handlers contains the HTTP handlers of the site: the contact
// submission API, the contact page and the app-wide error handler.
//
// The contact API answers JSON clients with
//
//	{ok, message?, requestId, mailId?, debug?}
//
// and htmx clients with the re-rendered contact form fragment.
package handlers
