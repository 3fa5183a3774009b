package logging

import (
	"strconv"
	"time"

	"github.com/felixgeelhaar/bolt/v3"
)

// Field is a function that applies structured data to a log event.
type Field func(*bolt.Event) *bolt.Event

// Strategy adds a strategy name field.
func Strategy(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("strategy", name)
	}
}

// Rules adds a rule set name field.
func Rules(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("rules", name)
	}
}

// Trials adds a trial count field.
func Trials(n int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("trials", n)
	}
}

// Workers adds a worker count field.
func Workers(n int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("workers", n)
	}
}

// Seed adds the harness seed. Seeds use the full uint64 range, so they are
// logged as decimal strings.
func Seed(seed uint64) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("seed", strconv.FormatUint(seed, 10))
	}
}

// RunID adds a run ID field.
func RunID(id string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("run_id", id)
	}
}

// Duration adds a duration field in milliseconds.
func Duration(d time.Duration) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int64("duration_ms", d.Milliseconds())
	}
}

// Float adds a float field rounded to 4 decimals.
func Float(key string, v float64) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str(key, strconv.FormatFloat(v, 'f', 4, 64))
	}
}

// Count adds an integer field with a custom key.
func Count(key string, n int64) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int64(key, n)
	}
}

// ErrorField adds an error field.
func ErrorField(err error) Field {
	return func(e *bolt.Event) *bolt.Event {
		if err == nil {
			return e
		}
		return e.Err(err)
	}
}

// Component adds a component field for categorization.
func Component(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("component", name)
	}
}

// Str adds a string field with custom key.
func Str(key, value string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str(key, value)
	}
}
