package shared

import (
	"encoding/json"
	"net/http"
)

// MaxBodyBytes caps the size of decoded request bodies.
const MaxBodyBytes = 1 << 20

// DecodeJSON decodes the request body into v, reading at most MaxBodyBytes.
func DecodeJSON(r *http.Request, v interface{}) error {
	body := http.MaxBytesReader(nil, r.Body, MaxBodyBytes)
	return json.NewDecoder(body).Decode(v)
}
