package logger

import (
	"net/http"
	"strings"
)

var sensitiveHeaders = []string{
	"x-shopify-hmac-sha256",
	"authorization",
	"cookie",
}

// MaskSignature masks a webhook signature value, preserving the last 4
// characters so deliveries can still be correlated with upstream logs.
func MaskSignature(value string) string {
	return maskLast4(strings.TrimSpace(value))
}

// MaskHeaders returns a loggable copy of headers with sensitive values masked.
func MaskHeaders(headers http.Header) map[string]string {
	if len(headers) == 0 {
		return nil
	}
	masked := make(map[string]string, len(headers))
	for name, values := range headers {
		value := strings.Join(values, ", ")
		if isSensitiveHeader(name) {
			value = maskLast4(value)
		}
		masked[name] = value
	}
	return masked
}

func isSensitiveHeader(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, needle := range sensitiveHeaders {
		if name == needle {
			return true
		}
	}
	return false
}

func maskLast4(value string) string {
	if value == "" {
		return ""
	}
	if len(value) <= 4 {
		return "****"
	}
	return strings.Repeat("*", 4) + value[len(value)-4:]
}
