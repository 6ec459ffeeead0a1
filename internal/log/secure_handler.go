package log

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"strings"
)

// sensitiveKeys contains attribute keys that are always masked.
var sensitiveKeys = map[string]bool{
	// Credentials found in dumps
	"password":  true,
	"passwd":    true,
	"pwd":       true,
	"pass":      true,
	"plaintext": true,
	"hash":      true,

	// Account identities
	"user":     true,
	"username": true,
	"login":    true,
	"account":  true,
	"email":    true,
	"hvt":      true,

	// Raw dump content
	"record": true,
	"raw":    true,
	"entry":  true,

	// Generic secrets
	"secret":        true,
	"token":         true,
	"api_key":       true,
	"apikey":        true,
	"authorization": true,
}

// sensitiveKeywords mark a key as sensitive when they appear anywhere in it.
// The bare "key" and "user" are left out to avoid false positives such as
// "primary_key" or "user_agent".
var sensitiveKeywords = []string{
	"password", "passwd", "secret", "token", "credential",
	"username", "hvt", "root_word", "rootword",
}

// sensitivePatterns contains regex patterns that indicate sensitive values.
// Values matching these patterns are masked regardless of key name.
var sensitivePatterns = []*regexp.Regexp{
	// Colon-delimited dump records: "user:field:password[:...]".
	// The first field must hold a non-digit so clock times are left alone,
	// and the second must not start with '/' so URLs with ports are too.
	regexp.MustCompile(`^[^:\s/]*[^:\s\d/][^:\s/]*:([^/:\n][^:\n]*)?:.*$`),

	// JWT tokens
	regexp.MustCompile(`^eyJ[A-Za-z0-9_-]*\.eyJ[A-Za-z0-9_-]*\.[A-Za-z0-9_-]*$`),

	// Bearer tokens
	regexp.MustCompile(`(?i)^bearer\s+.+`),

	// Long alphanumeric strings (API keys, hex hashes)
	regexp.MustCompile(`^[a-zA-Z0-9]{32,}$`),
}

// MaskValue is the string used to replace sensitive values.
const MaskValue = "***REDACTED***"

// SecureHandler wraps an slog.Handler and masks sensitive attributes before
// passing records to the underlying handler.
type SecureHandler struct {
	// handler is the underlying slog handler that receives sanitized records.
	handler slog.Handler
}

// NewSecureHandler creates a new SecureHandler wrapping the given handler.
// If handler is nil, the returned SecureHandler will use slog.Default().Handler().
func NewSecureHandler(handler slog.Handler) *SecureHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &SecureHandler{handler: handler}
}

// Enabled reports whether the handler handles records at the given level.
func (h *SecureHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle sanitizes the record's attributes and passes it to the underlying handler.
func (h *SecureHandler) Handle(ctx context.Context, r slog.Record) error {
	sanitized := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	r.Attrs(func(a slog.Attr) bool {
		sanitized.AddAttrs(sanitizeAttr(a))
		return true
	})

	return h.handler.Handle(ctx, sanitized)
}

// WithAttrs returns a new handler with the given attributes added.
// Attributes are sanitized before being added.
func (h *SecureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	sanitizedAttrs := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		sanitizedAttrs[i] = sanitizeAttr(a)
	}
	return &SecureHandler{handler: h.handler.WithAttrs(sanitizedAttrs)}
}

// WithGroup returns a new handler with the given group name.
func (h *SecureHandler) WithGroup(name string) slog.Handler {
	return &SecureHandler{handler: h.handler.WithGroup(name)}
}

// sanitizeAttr sanitizes a single attribute, recursively handling groups.
func sanitizeAttr(a slog.Attr) slog.Attr {
	a.Value = a.Value.Resolve()

	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		sanitizedAttrs := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			sanitizedAttrs[i] = sanitizeAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(sanitizedAttrs...)}
	}

	keyLower := strings.ToLower(a.Key)
	if sensitiveKeys[keyLower] || containsSensitiveKeyword(keyLower) {
		return slog.String(a.Key, MaskValue)
	}

	if a.Value.Kind() == slog.KindString && isSensitiveValue(a.Value.String()) {
		return slog.String(a.Key, MaskValue)
	}

	return a
}

// containsSensitiveKeyword checks if the key contains sensitive keywords.
func containsSensitiveKeyword(key string) bool {
	for _, keyword := range sensitiveKeywords {
		if strings.Contains(key, keyword) {
			return true
		}
	}
	return false
}

// isSensitiveValue checks if a value matches sensitive patterns.
func isSensitiveValue(value string) bool {
	for _, pattern := range sensitivePatterns {
		if pattern.MatchString(value) {
			return true
		}
	}
	return false
}

// levelFor returns Debug when verbose, Warn otherwise.
func levelFor(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}

// NewSecureLogger creates a text slog.Logger that masks sensitive values.
// verbose selects the Debug level; otherwise only warnings and errors are
// written.
func NewSecureLogger(w io.Writer, verbose bool) *slog.Logger {
	textHandler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: levelFor(verbose)})
	return slog.New(NewSecureHandler(textHandler))
}

// NewSecureJSONLogger creates a JSON slog.Logger that masks sensitive values.
func NewSecureJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	jsonHandler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: levelFor(verbose)})
	return slog.New(NewSecureHandler(jsonHandler))
}
