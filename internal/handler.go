package internal

// Handler groups related routes. The App calls Routes once at start-up:
//
//	func (h *ContactHandler) Routes(r internal.Router) {
//	    r.POST("/api/contact", h.submit)
//	}
type Handler interface {
	Routes(r Router)
}

// HandlerFunc serves one request. A returned error goes to the App's
// ErrorHandler unless the response was already written.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc.
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler renders errors returned by handlers and middleware.
type ErrorHandler func(c Context, err error) error
