package handlers

import (
	"net/http"
	"runtime"

	"lrbooking/logger"
)

// RecoverWrapper turns a panic inside next into a 500 response and logs the stack.
func RecoverWrapper(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				stack := make([]byte, 8*1024)
				stack = stack[:runtime.Stack(stack, false)]
				logger.FromContext(r.Context(), nil).Errorw("panic recovered", "panic", rec, "stack", string(stack))
				writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: "internal server error"})
			}
		}()

		next.ServeHTTP(w, r)
	})
}
