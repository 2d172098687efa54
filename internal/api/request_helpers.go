package api

import (
	"net/http"
	"time"
)

// requestTime is the instant "now" used to evaluate due-ness for a request.
// Taking it once per request keeps every query within the request consistent.
func requestTime(_ *http.Request) time.Time {
	return time.Now().UTC()
}
