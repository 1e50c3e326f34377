// Package registry is the glue between capability modules and the script
// runtime.
//
// Each module registers named Go functions here during startup. The host
// later installs every registered function into the `launcher` Lua module,
// so a script calls `launcher.version()` without knowing which Go package
// implements it. Registration mistakes (duplicate or unusable names) are
// collected rather than panicking and reported together by Validate before
// the runtime is created.
package registry
