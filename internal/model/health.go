package model

import (
	"strings"

	"github.com/tidwall/gjson"
)

// Health is the backend health report
type Health struct {
	Status string `json:"status"`
}

// HealthFromBody interprets a health response. ASP.NET health checks answer
// with plain text ("Healthy"), other deployments with {"status": ...}.
func HealthFromBody(body []byte) Health {
	if !gjson.ValidBytes(body) {
		return Health{Status: strings.TrimSpace(string(body))}
	}
	res := gjson.ParseBytes(body)
	if res.IsObject() {
		return Health{Status: res.Get("status").String()}
	}
	return Health{Status: res.String()}
}
