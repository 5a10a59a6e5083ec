// Package userdata covers the user's side of the machine: the home
// directory the CLI anchors its state in, and the ~/.env file whose
// variables are loaded into the process environment at startup.
package userdata
