package httpjson

import (
	"encoding/json"
	"net/http"
)

// maxBody caps request bodies; every request this service accepts is small.
const maxBody = 1 << 20

func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Read decodes a JSON body into dst, rejecting unknown fields.
func Read(r *http.Request, dst any) error {
	if r.Body == nil {
		return http.ErrBodyNotAllowed
	}
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBody))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func Error(w http.ResponseWriter, status int, msg string) {
	Write(w, status, map[string]any{"error": msg})
}
