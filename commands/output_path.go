package commands

import (
	"path/filepath"
	"strings"

	"cblocks/common"
	"cblocks/config"
)

// buildOutputPath keeps document location relative to the source under dst
// and replaces document extension with one of the render mode.
func buildOutputPath(rel, dst string, mode common.RenderMode) string {
	base := strings.TrimSuffix(filepath.Base(rel), filepath.Ext(rel))
	return filepath.Join(dst, filepath.Dir(rel), config.SafeFileName(base)+mode.Ext())
}

// documentPath returns where new document would be written. Destination may
// be directory (existing or ending with separator) or file name.
func documentPath(dst string, kind common.BlockKind, id string, isDir bool) string {
	if dst == "" || isDir || strings.HasSuffix(dst, string(filepath.Separator)) {
		return filepath.Join(dst, config.SafeFileName(kind.String()+"-"+id)+".yaml")
	}
	return dst
}
