// Package i18nhttp selects the response language of web requests.
package i18nhttp

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/Vaishnavi-Vyavahare/Maid-Hiring-System/internal/platform/i18n/translator"
)

const (
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// LangCookieName stores the visitor's language preference.
	LangCookieName = "maid_lang"
)

type contextKey struct{}

// LanguageOption is one entry of a language switcher.
type LanguageOption struct {
	Tag    string
	Label  string
	URL    string
	Active bool
}

// ResolveTag determines the language code for the request: the lang query
// parameter, then the preference cookie, then Accept-Language, then the
// default. The bool reports whether the query selection should be persisted.
func ResolveTag(r *http.Request, tr *translator.Translator) (string, bool) {
	if r == nil {
		return tr.Supported()[0], false
	}

	if value := strings.TrimSpace(r.URL.Query().Get(LangParam)); value != "" {
		if code, ok := ParseTag(tr, value); ok {
			return code, true
		}
	}

	if cookie, err := r.Cookie(LangCookieName); err == nil {
		if code, ok := ParseTag(tr, cookie.Value); ok {
			return code, false
		}
	}

	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		return tr.Resolve(accept), false
	}

	return tr.Supported()[0], false
}

// ParseTag returns the supported code for a single language value. Values in
// another language, or malformed ones, are not supported.
func ParseTag(tr *translator.Translator, value string) (string, bool) {
	tag, err := language.Parse(strings.TrimSpace(value))
	if err != nil {
		return "", false
	}
	code := tr.Resolve(tag.String())
	requested, _ := tag.Base()
	resolved, _ := language.MustParse(code).Base()
	if requested != resolved {
		return "", false
	}
	return code, true
}

// NormalizeTag coerces unknown values to the default language.
func NormalizeTag(tr *translator.Translator, value string) string {
	if code, ok := ParseTag(tr, value); ok {
		return code
	}
	return tr.Supported()[0]
}

// SetLanguageCookie persists the selected language on the response.
func SetLanguageCookie(w http.ResponseWriter, code string) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    code,
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Middleware resolves the language of every request, stores it in the request
// context and persists an explicit selection as a cookie.
func Middleware(tr *translator.Translator, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		code, persist := ResolveTag(r, tr)
		if persist {
			SetLanguageCookie(w, code)
		}
		w.Header().Set("Content-Language", code)
		next.ServeHTTP(w, r.WithContext(WithTag(r.Context(), code)))
	})
}

// WithTag returns a context carrying the language code.
func WithTag(ctx context.Context, code string) context.Context {
	return context.WithValue(ctx, contextKey{}, code)
}

// TagFromContext returns the language code stored by Middleware.
func TagFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	code, ok := ctx.Value(contextKey{}).(string)
	return code, ok && code != ""
}

// LanguageLabel names a language in its own script, e.g. "हिन्दी" for hi.
func LanguageLabel(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	if name := display.Self.Name(tag); name != "" {
		return name
	}
	return code
}

// BuildLanguageOptions lists the supported languages for a switcher on the
// page at path, marking active. labelFor overrides LanguageLabel when it
// returns a non-empty label.
func BuildLanguageOptions(tr *translator.Translator, active string, path string, rawQuery string, labelFor func(code string) string) []LanguageOption {
	supported := tr.Supported()
	activeCode := NormalizeTag(tr, active)
	options := make([]LanguageOption, 0, len(supported))
	for _, code := range supported {
		label := LanguageLabel(code)
		if labelFor != nil {
			if resolved := strings.TrimSpace(labelFor(code)); resolved != "" {
				label = resolved
			}
		}
		options = append(options, LanguageOption{
			Tag:    code,
			Label:  label,
			URL:    LanguageURL(path, rawQuery, code),
			Active: code == activeCode,
		})
	}
	return options
}

// ActiveLanguageLabel returns the label of the active option, or of the first
// option when none is active.
func ActiveLanguageLabel(options []LanguageOption) string {
	for _, option := range options {
		if option.Active {
			return option.Label
		}
	}
	if len(options) == 0 {
		return ""
	}
	return options[0].Label
}

// LanguageURL returns path with the lang query parameter set to code.
func LanguageURL(path string, rawQuery string, code string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		path = "/"
	}
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		query = url.Values{}
	}
	query.Set(LangParam, code)
	return (&url.URL{Path: path, RawQuery: query.Encode()}).String()
}
