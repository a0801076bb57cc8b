package transfer

import (
	"path"
	"path/filepath"
	"strings"
)

// LocalPath maps a remote device path to a path under the destination
// root. Flat mode drops the device directory structure and keeps only the
// filename; mirror mode recreates the DCIM tree.
func LocalPath(destRoot, remotePath string, flatten bool) string {
	if flatten {
		return filepath.Join(destRoot, path.Base(remotePath))
	}
	rel := strings.TrimPrefix(remotePath, "/")
	return filepath.Join(destRoot, filepath.FromSlash(rel))
}
