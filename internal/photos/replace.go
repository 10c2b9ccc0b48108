package photos

import (
	"fmt"
	"os"
)

const replaceSuffix = "_compressed"

// replace swaps the contents of path with data: write a sibling temp file,
// delete the original, rename the temp file into place. The public URL keeps
// resolving to the same filename throughout. A crash between the delete and
// the rename leaves the URL dangling; accepted for this single-process scope.
func replace(path string, data []byte) error {
	tmp := path + replaceSuffix
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Remove(path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("remove original %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}
