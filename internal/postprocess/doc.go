// Package postprocess runs the optional step applied to a freshly staged
// player executable, such as injecting the allocator redirect into it. A
// failing step never invalidates the staged executable; callers report it as
// a warning.
package postprocess
