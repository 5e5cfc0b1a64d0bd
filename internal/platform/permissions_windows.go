//go:build windows

package platform

import "os"

// canWrite probes with a temporary file because Windows ACLs are not
// reflected in the mode bits.
func canWrite(dir string) bool {
	f, err := os.CreateTemp(dir, ".techpix-probe-*")
	if err != nil {
		return false
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	return true
}
