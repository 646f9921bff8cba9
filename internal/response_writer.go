package internal

import (
	"net/http"
	"sync"
	"sync/atomic"
)

// ResponseWriter records the status a handler asked for and the bytes it
// wrote. For HTMX requests, 4xx and 5xx statuses are sent as 200 so htmx
// swaps the error fragment in; Status still reports the requested code.
//
// The Timeout middleware may write while the handler goroutine is still
// running, so only the first WriteHeader takes effect. After Close the
// writer drops headers and status and fails every Write.
type ResponseWriter struct {
	http.ResponseWriter
	mu       sync.Mutex
	closed   bool
	once     sync.Once
	status   atomic.Int32
	size     atomic.Int64
	written  atomic.Bool
	swapAsOK bool
}

// NewResponseWriter wraps w. htmx selects the 200 rewrite for error codes.
func NewResponseWriter(w http.ResponseWriter, htmx bool) *ResponseWriter {
	rw := &ResponseWriter{ResponseWriter: w, swapAsOK: htmx}
	rw.status.Store(http.StatusOK)
	return rw
}

// Header returns the underlying header map, or a detached one once closed.
func (w *ResponseWriter) Header() http.Header {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return http.Header{}
	}
	return w.ResponseWriter.Header()
}

// WriteHeader sends the status line once; later calls are ignored.
func (w *ResponseWriter) WriteHeader(code int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.writeHeader(code)
}

func (w *ResponseWriter) writeHeader(code int) {
	w.once.Do(func() {
		w.status.Store(int32(code))
		w.written.Store(true)
		if w.swapAsOK && code >= http.StatusBadRequest {
			code = http.StatusOK
		}
		w.ResponseWriter.WriteHeader(code)
	})
}

func (w *ResponseWriter) Write(b []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return 0, http.ErrHandlerTimeout
	}
	w.writeHeader(http.StatusOK)
	n, err := w.ResponseWriter.Write(b)
	w.size.Add(int64(n))
	return n, err
}

// Close stops the writer from reaching the underlying ResponseWriter.
// It waits for a Write in progress to finish.
func (w *ResponseWriter) Close() {
	w.mu.Lock()
	w.closed = true
	w.mu.Unlock()
}

// Status returns the code the handler asked for, 200 until written.
func (w *ResponseWriter) Status() int { return int(w.status.Load()) }

// Size returns the number of body bytes written.
func (w *ResponseWriter) Size() int64 { return w.size.Load() }

// Written reports whether the status line has been sent.
func (w *ResponseWriter) Written() bool { return w.written.Load() }

// Flush implements http.Flusher when the underlying writer does.
func (w *ResponseWriter) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap exposes the underlying writer to http.ResponseController.
func (w *ResponseWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }
