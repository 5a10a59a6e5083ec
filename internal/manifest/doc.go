// Package manifest locates and reads package.json manifests inside installed
// packages. It finds the nearest manifest above a directory, validates it
// against an embedded JSON Schema, and resolves the declared main module.
package manifest
