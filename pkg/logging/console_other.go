//go:build !windows

package logging

// EnableANSIConsole is a no-op where the terminal handles ANSI natively.
func EnableANSIConsole() {}
