// Package scaffold renders embedded template sets into a new project
// directory. Files that already exist are left untouched, so re-running
// over a partially initialized project only fills in what is missing.
package scaffold
