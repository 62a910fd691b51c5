package middleware

import (
	"context"
	"net/http"

	"github.com/mcoot/fleetbattle-console/internal/views"
)

// NoticeKey is the notice slot of the console operator
const NoticeKey = "console"

const noticeContextKey = contextKey("notice")

// GetNotice retrieves the status message shown on this page
// Returns nil if none is pending
func GetNotice(ctx context.Context) *views.Notice {
	n, _ := ctx.Value(noticeContextKey).(*views.Notice)
	return n
}

// Notices returns middleware that reads the pending status message.
// Messages stay until they expire or are dismissed.
func Notices(notices *views.Notices) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var notice *views.Notice
			if n, ok := notices.Current(NoticeKey); ok {
				notice = &n
			}
			ctx := context.WithValue(r.Context(), noticeContextKey, notice)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
