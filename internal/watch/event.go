package watch

import (
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// ChangeEvent describes one filesystem change.
type ChangeEvent struct {
	Path  string
	IsDir bool
	Op    fsnotify.Op
}

// FromNotify converts an fsnotify event. The directory flag comes from a stat
// at receipt, so removals and renames come back unflagged; the Watcher
// corrects those from the set of directories it has watched.
func FromNotify(ev fsnotify.Event) ChangeEvent {
	ce := ChangeEvent{Path: filepath.Clean(ev.Name), Op: ev.Op}
	if ev.Op.Has(fsnotify.Remove) || ev.Op.Has(fsnotify.Rename) {
		return ce
	}
	if fi, err := os.Stat(ev.Name); err == nil {
		ce.IsDir = fi.IsDir()
	}
	return ce
}
