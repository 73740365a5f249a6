package splat

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/sdksplat/pkg/filetree"
	"github.com/arthur-debert/sdksplat/pkg/logging"
	"github.com/arthur-debert/sdksplat/pkg/types"
)

// InvalidateStaging removes the unpack marker of a staged payload so that
// a later run unpacks it again. Called before files are moved out of the
// staging tree; once moving starts the tree is no longer complete.
// Failure is logged and otherwise ignored. Calling it again is harmless.
func InvalidateStaging(fs types.FS, roots Roots, payload types.PayloadDescriptor) {
	marker := filepath.Join(roots.Src, payload.Filename, filetree.MarkerFile)
	if err := fs.Remove(marker); err != nil && !os.IsNotExist(err) {
		logger := logging.GetLogger("splat.invalidate")
		logger.Warn().Err(err).Str("path", marker).Msg("Failed to remove unpack marker")
	}
}
