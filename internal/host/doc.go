// Package host owns the embedded Lua runtime that executes the launcher's
// scripts.
//
// A Host moves through Uninitialized, Initialized, Running and Terminated.
// Initialize creates the single Runtime, Run executes named scripts against
// it one at a time, and Terminate releases it. Callers are expected to defer
// Terminate right after a successful Initialize so the runtime is released on
// every exit path, including a failing script.
//
// Scripts share one Lua state, so globals defined by an earlier script are
// visible to later ones. There is no timeout: a script that never returns
// blocks Run forever.
package host
