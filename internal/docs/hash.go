package docs

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"sort"
)

// ComputeHash returns a deterministic hash over the paths, permalinks and
// contents of files. The input order does not matter.
func ComputeHash(files []DocFile) string {
	entries := make([]DocFile, len(files))
	copy(entries, files)
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Path < entries[j].Path
	})

	h := sha256.New()
	for _, f := range entries {
		sum := sha256.Sum256(f.Content)
		h.Write([]byte(filepath.ToSlash(f.Path)))
		h.Write([]byte{0})
		h.Write([]byte(f.Permalink))
		h.Write([]byte{0})
		h.Write(sum[:])
	}
	return hex.EncodeToString(h.Sum(nil))
}
