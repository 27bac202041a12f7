// Package logger wraps zap with a global sugared logger, context helpers
// (ToContext/FromContext/WithKV) and level parsing.
//
// Front-ends that own the terminal (the TUI and the REPL) redirect the
// sink to a file with SetOutput so log lines never corrupt the screen.
package logger
