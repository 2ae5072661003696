package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/middleware"
	"github.com/go-chi/chi/v5"
)

func idParam(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func queryString(r *http.Request, key string) *string {
	if v := r.URL.Query().Get(key); v != "" {
		return &v
	}
	return nil
}

func queryInt(r *http.Request, key string, fallback int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func queryInt64(r *http.Request, key string) *int64 {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return &n
		}
	}
	return nil
}

// scopedEmployee returns the employee a query may read: managers pick any
// employee via ?employee_id, everyone else is pinned to themselves.
func scopedEmployee(r *http.Request, callerID int64) *int64 {
	if middleware.IsManager(r) {
		return queryInt64(r, "employee_id")
	}
	return &callerID
}

// canAccess reports whether the caller may see data owned by ownerID.
func canAccess(r *http.Request, callerID, ownerID int64) bool {
	return callerID == ownerID || middleware.IsManager(r)
}

// decodeOptional decodes a JSON body that may be absent.
func decodeOptional(r *http.Request, v interface{}) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
