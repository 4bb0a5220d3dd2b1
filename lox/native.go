package lox

import "time"

// clockNative is the one native the core spec requires: arity 0,
// returns seconds since an implementation-defined epoch as a Number.
// Using time.Now() (wall clock, not monotonic-only) matches jlox's own
// System.currentTimeMillis()-based clock.py port in original_source/.
func clockNative() *NativeFn {
	return &NativeFn{
		name:  "clock",
		arity: 0,
		fn: func(in *Interpreter, args []Value) (Value, error) {
			return Number(float64(time.Now().UnixNano()) / 1e9), nil
		},
	}
}
