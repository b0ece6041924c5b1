// Package logger provides leveled logging for covenant CLI commands.
//
// Output verbosity is controlled by two flags:
//
//   - --verbose: shows info messages
//   - --debug: shows all messages including debug details
//
// Warnings and errors are always shown on stderr. Prefixes are colored via
// fatih/color and degrade to plain text when the terminal does not support
// color or NO_COLOR is set.
//
// Commands typically create a logger in their PersistentPreRun:
//
//	Logger = logger.Logger{Verbose: verbose, Debug: debug}
//	Logger.Infof("Enrolling partner %s", alias)
package logger
