// Package launcher runs the staged player from inside the staging directory.
//
// The working directory of the calling process is switched to the staging
// directory for the lifetime of the child and restored on every exit path,
// because the player resolves shaders, modules and config.ini relative to it.
package launcher
