package audit

import (
	"context"
	"strings"
)

// Redacted replaces the value of a sensitive metadata key
const Redacted = "[REDACTED]"

var sensitiveKeyParts = []string{
	"password", "token", "secret", "key", "auth", "credential", "ssn",
	"social", "credit", "card", "cvv", "pin", "passphrase",
}

// IsSensitiveKey reports whether a metadata key names a secret
func IsSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, part := range sensitiveKeyParts {
		if strings.Contains(lower, part) {
			return true
		}
	}
	return false
}

// SanitizeMetadata returns a copy of metadata with sensitive keys redacted
// at every depth, through nested maps and slices.
func SanitizeMetadata(metadata map[string]interface{}) map[string]interface{} {
	if metadata == nil {
		return nil
	}
	result := make(map[string]interface{}, len(metadata))
	for key, value := range metadata {
		if IsSensitiveKey(key) {
			result[key] = Redacted
			continue
		}
		result[key] = sanitizeValue(value)
	}
	return result
}

func sanitizeValue(value interface{}) interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		return SanitizeMetadata(v)
	case map[string]string:
		converted := make(map[string]interface{}, len(v))
		for key, s := range v {
			converted[key] = s
		}
		return SanitizeMetadata(converted)
	case []interface{}:
		items := make([]interface{}, len(v))
		for i, item := range v {
			items[i] = sanitizeValue(item)
		}
		return items
	case []map[string]interface{}:
		items := make([]interface{}, len(v))
		for i, item := range v {
			items[i] = SanitizeMetadata(item)
		}
		return items
	default:
		return value
	}
}

// UnknownClient fills IP and user agent when the request did not carry them
const UnknownClient = "unknown"

// ClientIP picks the first hop of X-Forwarded-For, then X-Real-IP, else "unknown"
func ClientIP(forwardedFor, realIP string) string {
	if forwardedFor != "" {
		first := strings.TrimSpace(strings.Split(forwardedFor, ",")[0])
		if first != "" {
			return first
		}
	}
	if ip := strings.TrimSpace(realIP); ip != "" {
		return ip
	}
	return UnknownClient
}

// RequestMeta is the client information attached to audit entries
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

type requestMetaKey struct{}

// WithRequestMeta stores meta in ctx
func WithRequestMeta(ctx context.Context, meta RequestMeta) context.Context {
	return context.WithValue(ctx, requestMetaKey{}, meta)
}

// RequestMetaFrom returns the meta stored in ctx, or "unknown" values
func RequestMetaFrom(ctx context.Context) RequestMeta {
	if meta, ok := ctx.Value(requestMetaKey{}).(RequestMeta); ok {
		return meta
	}
	return RequestMeta{IPAddress: UnknownClient, UserAgent: UnknownClient}
}
