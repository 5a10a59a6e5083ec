// Package runtime executes a resolved command entry point in a child
// process. NodeRuntime runs CommonJS modules through a `node -e` program,
// BinaryRuntime executes anything else directly. ForEntry selects the
// runtime from the entry file's extension.
package runtime
