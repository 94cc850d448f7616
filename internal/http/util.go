package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func parseInt(s string, def int) int {
	if s == "" {
		return def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func readBodyJSON(r *http.Request, maxBytes int64, out any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBytes))
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

// flexInt decodes an integer sent either as a JSON number or as a numeric
// string (the mobile app sends both). Non-numeric values decode as 0; null
// and a missing key leave Set false.
type flexInt struct {
	Value int64
	Set   bool
}

func (f *flexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	f.Set = true
	f.Value = 0

	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		f.Value = parseLooseInt(s)
		return nil
	}
	var n float64
	if err := json.Unmarshal(b, &n); err == nil {
		f.Value = truncateFloat(n)
	}
	return nil
}

// Int64Ptr nil when the value was not supplied.
func (f flexInt) Int64Ptr() *int64 {
	if !f.Set {
		return nil
	}
	v := f.Value
	return &v
}

// IntPtr nil when the value was not supplied.
func (f flexInt) IntPtr() *int {
	if !f.Set {
		return nil
	}
	v := int(f.Value)
	return &v
}

func parseLooseInt(s string) int64 {
	s = strings.TrimSpace(s)
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return truncateFloat(n)
	}
	return 0
}

func truncateFloat(n float64) int64 {
	if math.IsNaN(n) || math.IsInf(n, 0) || n > math.MaxInt64 || n < math.MinInt64 {
		return 0
	}
	return int64(n)
}
