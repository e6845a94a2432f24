// Package devserver runs the local static file server.
//
// The Launcher starts the server as a detached child process and hands back a
// Handle that owns it; the Handle's Stop terminates it gracefully and falls
// back to a kill. FileServer is what the child runs by default, through the
// `pagewright serve` command.
package devserver
