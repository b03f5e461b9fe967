// Package staging creates, populates, updates and deletes a staging
// directory. A staged file's modification time is the only state it keeps:
// copies carry the source timestamp, and a differing timestamp in either
// direction marks the staged file stale. Stale module libraries are never
// overwritten in place; the new build is placed beside them as <lib>.new
// until an explicit Activate swaps it in.
package staging
