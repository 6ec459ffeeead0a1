// Package log provides slog based logging that never writes credential
// material, however verbose the logger is.
//
// SecureHandler wraps any slog.Handler and masks:
//   - attributes whose key names a credential or an account (password,
//     username, hvt, ...)
//   - string values that look like raw dump records ("user:x:secret")
//   - common token formats (bearer, JWT, long API keys)
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	logger.Debug("record skipped", "line", 42, "password", pwd) // password is masked
//	slog.SetDefault(logger)
package log
