//go:build unix

package filedev

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// PageSize probes the block size of the filesystem holding dir, the way
// ljmsc-wal/sys_unix.go's pageSizefs does (same unix.Statfs_t/unix.Statfs
// call), for use as eewl.Config.PageSize's default when a caller doesn't
// supply one explicitly.
func PageSize(dir string) (uint32, error) {
	stat := unix.Statfs_t{}
	if err := unix.Statfs(dir, &stat); err != nil {
		return 0, fmt.Errorf("filedev: statfs %s: %w", dir, err)
	}
	return uint32(stat.Bsize), nil
}
