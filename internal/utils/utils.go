// Package utils contains general helper functions shared across the stree tool.
package utils

// LoggerInitializationFailedMessageFormat reports a failure to construct the application logger.
const LoggerInitializationFailedMessageFormat = "failed to initialize logger: %w"

// ApplicationExecutionFailedMessage prefixes fatal application errors.
const ApplicationExecutionFailedMessage = "application execution failed"

// Pluralize selects the singular form when the count is exactly one and the
// plural form otherwise, including zero.
func Pluralize(count int, singularForm string, pluralForm string) string {
	if count == 1 {
		return singularForm
	}
	return pluralForm
}
