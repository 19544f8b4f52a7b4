// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package asset

import (
	"time"

	log "github.com/sirupsen/logrus"
)

// FailResponse turns the outcome of a fallible load into a usable asset.
// Implementations must always return an asset and never hand the error
// back to the caller.
type FailResponse[S comparable, T Asset] interface {
	// Ensure receives the result of l.Try(src). err is nil on success.
	Ensure(l *Loader[S, T], src S, item T, err error) T
}

// Mandatory stops the game when the asset fails to load.
// It logs the error and panics with a *FatalError.
type Mandatory[S comparable, T Asset] struct {
	Logger log.FieldLogger
}

// Ensure implements FailResponse
func (m Mandatory[S, T]) Ensure(l *Loader[S, T], src S, item T, err error) T {
	if err == nil {
		return item
	}
	loggerOrStd(m.Logger).WithFields(log.Fields{
		"loader": l.Name,
		"source": src,
		"error":  err,
	}).Error("mandatory asset failed to load")
	panic(&FatalError{Err: err})
}

// Defaulting substitutes a default asset when loading fails, logging the
// failure as a warning. Default may be nil, the zero value of T is used then;
// the registry never releases a nil asset.
type Defaulting[S comparable, T Asset] struct {
	Default func() T
	Logger  log.FieldLogger
}

// Ensure implements FailResponse
func (d Defaulting[S, T]) Ensure(l *Loader[S, T], src S, item T, err error) T {
	if err == nil {
		return item
	}
	loggerOrStd(d.Logger).WithFields(log.Fields{
		"loader": l.Name,
		"source": src,
		"error":  err,
	}).Warn("asset load error, using default")
	if d.Default == nil {
		var zero T
		return zero
	}
	return d.Default()
}

// Retry tries the load again up to Attempts more times, sleeping Delay
// between attempts, and hands the last failure to Then.
// A nil Then behaves as Mandatory.
type Retry[S comparable, T Asset] struct {
	Attempts int
	Delay    time.Duration
	Then     FailResponse[S, T]
	Logger   log.FieldLogger
}

// Ensure implements FailResponse
func (r Retry[S, T]) Ensure(l *Loader[S, T], src S, item T, err error) T {
	for attempt := 1; err != nil && attempt <= r.Attempts; attempt++ {
		loggerOrStd(r.Logger).WithFields(log.Fields{
			"loader":  l.Name,
			"source":  src,
			"attempt": attempt,
			"error":   err,
		}).Info("retrying asset load")
		if r.Delay > 0 {
			time.Sleep(r.Delay)
		}
		item, err = l.Try(src)
	}
	return thenOrMandatory(r.Then, r.Logger).Ensure(l, src, item, err)
}

// Fallback loads Source in place of an asset that failed to load.
// Failures of the fallback source itself are handed to Then,
// a nil Then behaves as Mandatory.
type Fallback[S comparable, T Asset] struct {
	Source S
	Then   FailResponse[S, T]
	Logger log.FieldLogger
}

// Ensure implements FailResponse
func (f Fallback[S, T]) Ensure(l *Loader[S, T], src S, item T, err error) T {
	if err == nil {
		return item
	}
	loggerOrStd(f.Logger).WithFields(log.Fields{
		"loader":   l.Name,
		"source":   src,
		"fallback": f.Source,
		"error":    err,
	}).Warn("asset load error, using fallback")
	item, err = l.Try(f.Source)
	return thenOrMandatory(f.Then, f.Logger).Ensure(l, f.Source, item, err)
}

func thenOrMandatory[S comparable, T Asset](then FailResponse[S, T], logger log.FieldLogger) FailResponse[S, T] {
	if then == nil {
		return Mandatory[S, T]{Logger: logger}
	}
	return then
}

func loggerOrStd(l log.FieldLogger) log.FieldLogger {
	if l == nil {
		return log.StandardLogger()
	}
	return l
}
