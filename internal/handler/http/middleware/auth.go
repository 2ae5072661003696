package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

var ErrMissingEmployeeClaim = errors.New("employee_id claim is missing or invalid")

func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.Unauthorized(w, "Invalid token")
				return
			}

			tokenType, ok := claims["type"].(string)
			if tokenType != "access" || !ok {
				response.Unauthorized(w, "Invalid token")
				return
			}

			if _, err := EmployeeID(r.Context()); err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}

// EmployeeID reads the caller's employee id from the verified token.
func EmployeeID(ctx context.Context) (int64, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return 0, err
	}

	var id int64
	switch v := claims["employee_id"].(type) {
	case float64:
		id = int64(v)
	case int64:
		id = v
	case string:
		id, err = strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, ErrMissingEmployeeClaim
		}
	}
	if id <= 0 {
		return 0, ErrMissingEmployeeClaim
	}
	return id, nil
}
