package repo

import (
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/dshills/envhook/internal/logging"
)

// DefaultMarker is the entry whose presence identifies a repository root.
const DefaultMarker = ".git"

// FindRoot returns the first of start and its ancestors that contains
// marker. If none does, start is returned unchanged. A marker of any type
// matches: worktrees and submodules carry a ".git" file, not a directory.
func FindRoot(fs afero.Fs, start, marker string) string {
	logger := logging.GetLogger("repo")
	if marker == "" {
		marker = DefaultMarker
	}

	dir := filepath.Clean(start)
	for {
		if _, err := fs.Stat(filepath.Join(dir, marker)); err == nil {
			logger.Debug().Str("root", dir).Str("marker", marker).Msg("Found repository root")
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	logger.Debug().Str("start", start).Msg("No repository marker found, using start directory")
	return start
}
