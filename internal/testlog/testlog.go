/*
DESCRIPTION
  testlog.go adapts a *testing.T into the logging.Logger interface shared
  by params, engine and pipeline, so package tests can exercise the real
  soft-bound-clamp warnings and config defaulting logs through t.Log
  rather than a discarded or hand-rolled stub.

LICENSE
  Copyright (C) 2026 the Pixelpipe Authors. All Rights Reserved.
*/

// Package testlog provides a logging.Logger implementation backed by
// testing.T, for use by _test.go files across the module.
package testlog

import (
	"testing"

	"github.com/ausocean/utils/logging"
)

// T adapts a *testing.T to logging.Logger.
type T testing.T

func (l *T) Debug(msg string, args ...interface{})   { l.log(logging.Debug, msg, args...) }
func (l *T) Info(msg string, args ...interface{})    { l.log(logging.Info, msg, args...) }
func (l *T) Warning(msg string, args ...interface{}) { l.log(logging.Warning, msg, args...) }
func (l *T) Error(msg string, args ...interface{})   { l.log(logging.Error, msg, args...) }
func (l *T) Fatal(msg string, args ...interface{})   { l.log(logging.Fatal, msg, args...) }
func (l *T) SetLevel(lvl int8)                       {}

func (l *T) log(lvl int8, msg string, args ...interface{}) {
	var level string
	switch lvl {
	case logging.Debug:
		level = "debug"
	case logging.Info:
		level = "info"
	case logging.Warning:
		level = "warning"
	case logging.Error:
		level = "error"
	case logging.Fatal:
		level = "fatal"
	}
	msg = level + ": " + msg
	if len(args) == 0 {
		(*testing.T)(l).Log(msg)
		return
	}
	for i := 0; i < len(args); i += 2 {
		msg += " %v=%v"
	}
	if lvl == logging.Fatal {
		(*testing.T)(l).Fatalf(msg, args...)
		return
	}
	(*testing.T)(l).Logf(msg, args...)
}

// New returns t wrapped as a logging.Logger.
func New(t *testing.T) logging.Logger { return (*T)(t) }
