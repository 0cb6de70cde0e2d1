//go:build !unix

package preflight

import "os"

// checkAccess probes writability by creating and removing a temp file; there
// is no access(2) equivalent here.
func checkAccess(path string) error {
	f, err := os.CreateTemp(path, ".galleryorganizer-access-*")
	if err != nil {
		return err
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(name)
}
