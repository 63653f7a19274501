// Package log builds the slog loggers used by loanqa.
//
// Every logger masks attributes that carry applicant financial data. A
// Redactor is installed as the handler's ReplaceAttr hook and replaces the
// value with MaskValue when:
//   - the key is a financial loan column (ApplicantIncome, LoanAmount, FICO_Score, ...)
//     in its CamelCase or snake_case spelling
//   - the key contains a sensitive fragment such as income, fico or password
//   - a string value looks like a social security, card or IBAN number
//
// Masking applies at every level, so verbose logs can be shared.
//
//	logger := log.NewSecureLogger(os.Stderr, true)
//	logger.Debug("row rejected", "row", 17, "ApplicantIncome", 52000)
//	// time=... level=DEBUG msg="row rejected" row=17 ApplicantIncome=***REDACTED***
package log
