package logging

import (
	"log/slog"
	"regexp"

	"github.com/m-mizutani/masq"
)

// SensitiveHeaders names, in lower case, the request headers that carry
// credentials. middleware.RedactHeaders masks the same set.
var SensitiveHeaders = map[string]bool{
	"authorization":       true,
	"proxy-authorization": true,
	"x-api-key":           true,
	"cookie":              true,
	"set-cookie":          true,
}

// secretFields are attribute keys whose value is never logged. dsn covers
// the postgres and sqlite connection strings logged at startup.
var secretFields = []string{"password", "secret", "token", "dsn"}

var secretPrefixes = []string{"secret_", "api_key"}

// secretValues catch credentials that reach a log line under an innocent
// key, e.g. inside an error message from the store or the upstream.
var secretValues = []*regexp.Regexp{
	// Authorization: Bearer <token>
	regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9\-._~+/]+=*`),
	// header.payload.signature; ten characters a segment keeps version
	// strings like 1.2.3 out.
	regexp.MustCompile(`[a-zA-Z0-9\-_]{10,}\.[a-zA-Z0-9\-_]{10,}\.[a-zA-Z0-9\-_]{10,}`),
	// api_key=... or apikey: ...
	regexp.MustCompile(`(?i)(api[_\-]?key|apikey)\s*[:=]\s*\S+`),
	// user:password@ in postgres://todo:secret@db:5432/todo
	regexp.MustCompile(`[a-zA-Z][a-zA-Z0-9+.\-]*://[^\s:/@]+:[^\s@]+@`),
}

// redactAttr builds the masq ReplaceAttr hook New installs on every handler.
func redactAttr() func([]string, slog.Attr) slog.Attr {
	var opts []masq.Option
	for name := range SensitiveHeaders {
		opts = append(opts, masq.WithFieldName(name))
	}
	for _, name := range secretFields {
		opts = append(opts, masq.WithFieldName(name))
	}
	for _, prefix := range secretPrefixes {
		opts = append(opts, masq.WithFieldPrefix(prefix))
	}
	for _, re := range secretValues {
		opts = append(opts, masq.WithRegex(re))
	}
	return masq.New(opts...)
}
