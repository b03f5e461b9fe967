// Package locator derives every source and destination path involved in
// staging. Given a Request and a platform Profile it enumerates the player
// files, the shader tree, a module's libraries, its config.ini and its
// optional resources, and reports ErrArtifactNotFound for any required source
// that the build did not produce.
package locator
