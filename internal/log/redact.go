package log

import (
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/nao1215/loanqa/internal/model"
)

// MaskValue replaces the value of every redacted attribute.
const MaskValue = "***REDACTED***"

// financialColumns are the loan columns whose values describe an applicant's finances.
var financialColumns = []string{
	model.ColApplicantIncome,
	model.ColCoapplicantIncome,
	model.ColLoanAmount,
	model.ColCreditHistory,
	model.ColFICOScore,
}

// keyFragments mask any key containing one of them, after lowercasing.
// "loan" and "credit" are absent on purpose: loan_id and credit_history_bins are harmless.
var keyFragments = []string{"income", "fico", "salary", "password", "secret", "token", "ssn", "dsn"}

// valuePatterns mask a string value under any key.
var valuePatterns = []*regexp.Regexp{
	// US social security number
	regexp.MustCompile(`^\d{3}-\d{2}-\d{4}$`),
	// Payment card, optionally grouped by four
	regexp.MustCompile(`^\d{4}[- ]?\d{4}[- ]?\d{4}[- ]?\d{4}$`),
	// IBAN
	regexp.MustCompile(`^[A-Z]{2}\d{2}[A-Z0-9]{11,30}$`),
	// Bearer token
	regexp.MustCompile(`(?i)^bearer\s+.+`),
}

// Redactor masks attributes that carry applicant financial data, credentials
// or bank identifiers. Its ReplaceAttr method plugs into slog.HandlerOptions,
// so every built-in handler applies it to record attributes, to attributes
// added with Logger.With and to the members of groups.
type Redactor struct {
	keys map[string]struct{}
}

// NewRedactor returns a Redactor for the financial loan columns, matched
// case-insensitively in their CamelCase and snake_case spellings.
func NewRedactor() *Redactor {
	r := &Redactor{keys: make(map[string]struct{}, 2*len(financialColumns))}
	for _, k := range financialColumns {
		r.keys[strings.ToLower(k)] = struct{}{}
		r.keys[snake(k)] = struct{}{}
	}
	return r
}

// Sensitive reports whether an attribute with this key and value must be masked.
// Numbers under a financial key are masked like strings.
func (r *Redactor) Sensitive(key string, v slog.Value) bool {
	k := strings.ToLower(key)
	if _, ok := r.keys[k]; ok {
		return true
	}
	for _, f := range keyFragments {
		if strings.Contains(k, f) {
			return true
		}
	}
	if v.Kind() != slog.KindString {
		return false
	}
	s := v.String()
	for _, p := range valuePatterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

// ReplaceAttr implements the slog.HandlerOptions.ReplaceAttr hook.
func (r *Redactor) ReplaceAttr(_ []string, a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup || !r.Sensitive(a.Key, a.Value) {
		return a
	}
	return slog.String(a.Key, MaskValue)
}

// snake converts ApplicantIncome to applicant_income.
func snake(s string) string {
	var b strings.Builder
	for i, c := range s {
		if c >= 'A' && c <= 'Z' {
			if i > 0 && s[i-1] >= 'a' && s[i-1] <= 'z' {
				b.WriteByte('_')
			}
			c += 'a' - 'A'
		}
		b.WriteRune(c)
	}
	return b.String()
}

// Option configures NewSecureLogger.
type Option func(*loggerOptions)

type loggerOptions struct {
	json bool
}

// WithJSON writes one JSON object per record instead of key=value text.
func WithJSON(enabled bool) Option {
	return func(o *loggerOptions) { o.json = enabled }
}

// NewSecureLogger returns a logger writing to w that masks sensitive attributes.
// verbose lowers the level from Warn to Debug; masking applies at every level.
func NewSecureLogger(w io.Writer, verbose bool, opts ...Option) *slog.Logger {
	o := &loggerOptions{}
	for _, opt := range opts {
		opt(o)
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	ho := &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: NewRedactor().ReplaceAttr,
	}

	if o.json {
		return slog.New(slog.NewJSONHandler(w, ho))
	}
	return slog.New(slog.NewTextHandler(w, ho))
}
