package logging

import (
	"context"
	"log/slog"
	"time"

	"github.com/m-mizutani/regmig/pkg/domain/types"
)

type ctxRequestIDKey struct{}

// CtxRequestID returns request ID from context. If request ID is not set, return new request ID and context with it
func CtxRequestID(ctx context.Context) (types.RequestID, context.Context) {
	if id, ok := ctx.Value(ctxRequestIDKey{}).(types.RequestID); ok {
		return id, ctx
	}

	newID := types.NewRequestID()
	return newID, context.WithValue(ctx, ctxRequestIDKey{}, newID)
}

type ctxLoggerKey struct{}

// With returns a new context with logger
func With(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxLoggerKey{}, logger)
}

// From returns logger from context. If logger is not set, return default logger
func From(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(ctxLoggerKey{}).(*slog.Logger); ok {
		return l
	}
	return defaultLogger
}

type ctxTimeKey struct{}
type TimeFunc func() time.Time

// CtxTime returns time from context. If time is not set, return current time and context with it
func CtxTime(ctx context.Context) time.Time {
	if t, ok := ctx.Value(ctxTimeKey{}).(TimeFunc); ok {
		return t()
	}
	return time.Now()
}

// CtxWithTime returns a new context with time function
func CtxWithTime(ctx context.Context, timeFunc TimeFunc) context.Context {
	return context.WithValue(ctx, ctxTimeKey{}, timeFunc)
}

type ctxSleepKey struct{}
type SleepFunc func(ctx context.Context, d time.Duration) error

// CtxWithSleep returns a new context whose Sleep calls fn instead of waiting on a timer
func CtxWithSleep(ctx context.Context, fn SleepFunc) context.Context {
	return context.WithValue(ctx, ctxSleepKey{}, fn)
}

// Sleep waits for d or until ctx is done, whichever comes first
func Sleep(ctx context.Context, d time.Duration) error {
	if fn, ok := ctx.Value(ctxSleepKey{}).(SleepFunc); ok {
		return fn(ctx, d)
	}

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// InheritContextValues copies request ID, time and sleep functions from src context to dst
// context. Background jobs started from a request or a scheduler tick use it so that they keep
// the same clock. Logger is NOT copied; use With() separately.
func InheritContextValues(dst, src context.Context) context.Context {
	// Copy request ID if exists
	if reqID, ok := src.Value(ctxRequestIDKey{}).(types.RequestID); ok {
		dst = context.WithValue(dst, ctxRequestIDKey{}, reqID)
	}

	// Copy time function if exists
	if timeFunc, ok := src.Value(ctxTimeKey{}).(TimeFunc); ok {
		dst = context.WithValue(dst, ctxTimeKey{}, timeFunc)
	}

	if sleepFunc, ok := src.Value(ctxSleepKey{}).(SleepFunc); ok {
		dst = context.WithValue(dst, ctxSleepKey{}, sleepFunc)
	}

	return dst
}

// Detach returns a context that is never canceled but keeps the logger, request ID, clock and
// sleep of ctx. Work that must outlive an HTTP request or a worker tick runs on it.
func Detach(ctx context.Context) context.Context {
	return With(InheritContextValues(context.Background(), ctx), From(ctx))
}
