// Package platform hides the few operating system differences the CLI cares
// about: Unix permission bits and running as a privileged user.
package platform
