package routerhandlers

import "net/http"

// responseRecorder wraps http.ResponseWriter to capture the status code
// and bytes written, for middleware that reports on the response after
// the handler returns. Only the first WriteHeader call is forwarded.
type responseRecorder struct {
	http.ResponseWriter
	status  int
	size    int64
	written bool
}

func (rec *responseRecorder) WriteHeader(code int) {
	if rec.written {
		return
	}
	rec.status = code
	rec.written = true
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *responseRecorder) Write(b []byte) (int, error) {
	if !rec.written {
		rec.WriteHeader(http.StatusOK)
	}
	n, err := rec.ResponseWriter.Write(b)
	rec.size += int64(n)
	return n, err
}

// statusCode returns the recorded status, defaulting to 200 when the
// handler wrote a body without an explicit WriteHeader, or nothing at all.
func (rec *responseRecorder) statusCode() int {
	if rec.status == 0 {
		return http.StatusOK
	}
	return rec.status
}

// Flush implements http.Flusher when the underlying writer does.
func (rec *responseRecorder) Flush() {
	if f, ok := rec.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap exposes the underlying writer to http.ResponseController.
func (rec *responseRecorder) Unwrap() http.ResponseWriter {
	return rec.ResponseWriter
}
