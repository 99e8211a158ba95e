// --------------------------------------------------------------------------------
// Author: Thomas F McGeehan V
//
// This file is part of a software project developed by Thomas F McGeehan V.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//
// For more information about the MIT License, please visit:
// https://opensource.org/licenses/MIT
//
// Acknowledgment appreciated but not required.
// --------------------------------------------------------------------------------

// Package logger defines the optional Logger collaborator: the core
// emits batch flush sizes, sampling decisions, and string-cache summaries
// at debug/info level through this interface, never through a concrete
// logging library directly.
package logger

import (
	kitlog "github.com/go-kit/log"
	"go.uber.org/zap"
)

// Logger is the contract a caller-supplied logger must satisfy. Passing
// nil is valid (all calls become no-ops); any other value must implement
// this interface by construction, since Go has no runtime duck-typing
// check to reject an invalid logger the way a dynamic host would.
type Logger interface {
	Debug(msg string, kv ...any)
	Info(msg string, kv ...any)
	Warn(msg string, kv ...any)
	Error(msg string, kv ...any)
}

// noop satisfies Logger by discarding everything; it is the default when
// the caller passes nil.
type noop struct{}

func (noop) Debug(string, ...any) {}
func (noop) Info(string, ...any)  {}
func (noop) Warn(string, ...any)  {}
func (noop) Error(string, ...any) {}

// Noop is the shared no-op Logger.
var Noop Logger = noop{}

// Or returns l if non-nil, otherwise Noop, so call sites can write
// logger.Or(opts.Logger).Debug(...) unconditionally.
func Or(l Logger) Logger {
	if l == nil {
		return Noop
	}
	return l
}

// zapAdapter wraps a *zap.SugaredLogger to satisfy Logger.
type zapAdapter struct{ s *zap.SugaredLogger }

// NewZap wraps a zap.SugaredLogger as a Logger.
func NewZap(s *zap.SugaredLogger) Logger { return &zapAdapter{s: s} }

func (z *zapAdapter) Debug(msg string, kv ...any) { z.s.Debugw(msg, kv...) }
func (z *zapAdapter) Info(msg string, kv ...any)  { z.s.Infow(msg, kv...) }
func (z *zapAdapter) Warn(msg string, kv ...any)  { z.s.Warnw(msg, kv...) }
func (z *zapAdapter) Error(msg string, kv ...any) { z.s.Errorw(msg, kv...) }

// NewProductionZap constructs a default zap-backed Logger, the logging
// stack's out-of-the-box option for a host binding that wants structured
// JSON logs without configuring its own.
func NewProductionZap() (Logger, func(), error) {
	zl, err := zap.NewProduction()
	if err != nil {
		return nil, func() {}, err
	}
	return NewZap(zl.Sugar()), func() { _ = zl.Sync() }, nil
}

// kitAdapter wraps a go-kit/log.Logger to satisfy Logger: each level
// stamps a "level" keyval ahead of msg/kv, go-kit's own keyed-logging
// convention.
type kitAdapter struct{ l kitlog.Logger }

// NewKit wraps a go-kit/log.Logger as a Logger, for a host binding already
// standardized on go-kit's keyval logging convention instead of zap's.
func NewKit(l kitlog.Logger) Logger { return &kitAdapter{l: l} }

func (k *kitAdapter) log(level, msg string, kv ...any) {
	args := append([]any{"level", level, "msg", msg}, kv...)
	_ = k.l.Log(args...)
}

func (k *kitAdapter) Debug(msg string, kv ...any) { k.log("debug", msg, kv...) }
func (k *kitAdapter) Info(msg string, kv ...any)  { k.log("info", msg, kv...) }
func (k *kitAdapter) Warn(msg string, kv ...any)  { k.log("warn", msg, kv...) }
func (k *kitAdapter) Error(msg string, kv ...any) { k.log("error", msg, kv...) }
