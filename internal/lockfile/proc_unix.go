//go:build !windows

package lockfile

import "syscall"

// pidAlive probes the process with signal 0. EPERM still means the
// process exists, just owned by someone else.
func pidAlive(pid int) bool {
	err := syscall.Kill(pid, 0)
	return err == nil || err == syscall.EPERM
}
