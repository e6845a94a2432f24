// Package site assembles the static site.
//
// A build resets the output root, loads the four layout fragments, wraps every
// HTML entry of the pages and posts trees as
//
//	head \n header \n body \n footer \n foot
//
// copies every other entry byte-for-byte, and finally copies the public asset
// tree under its own name. Missing head or foot content aborts the build before
// anything is rendered; everything after that point is best-effort and
// collected into a Report.
package site
