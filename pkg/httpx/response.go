package httpx

import (
	"bytes"
	"encoding/json"
	"net/http"
)

const internalErrorBody = `{"error":"Internal Server Error"}` + "\n"

// JSON writes v as JSON with the given status code. The body is encoded before
// any header is written, so an unencodable value becomes the generic 500
// instead of a truncated response. HTML characters in strings are not escaped;
// course names such as "UI & UX" go out verbatim.
func JSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		writeRaw(w, http.StatusInternalServerError, []byte(internalErrorBody))
		return
	}
	writeRaw(w, status, buf.Bytes())
}

// JSONError writes a standard {"error": message} JSON response.
func JSONError(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// InternalError writes the generic 500 body. Store and driver details stay in
// the logs and never reach clients.
func InternalError(w http.ResponseWriter) {
	writeRaw(w, http.StatusInternalServerError, []byte(internalErrorBody))
}

func writeRaw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
