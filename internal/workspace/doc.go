// Package workspace owns the on-disk directories of a build: the sites root
// that is read, and the deploy root whose per-site directories are torn down
// and recreated on every run.
package workspace
