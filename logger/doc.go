// Package logger provides structured logging built on zerolog.
//
// A global logger is initialized once from config; components obtain
// tagged child loggers through Get(name). Stage-level timing fields
// (FieldStage, FieldDuration, FieldStatus) are the observability
// contract every engine stage logs against.
package logger
