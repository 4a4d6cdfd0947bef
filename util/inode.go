package util

import (
	"sync"
)

// RootInode is reserved for the mount root.
const RootInode uint64 = 1

var (
	highestInode uint64 = RootInode
	inodeLock           = sync.Mutex{}

	inodesByPath = map[string]uint64{"/": RootInode}
)

// InodeForPath returns the inode bound to path, allocating one on first use.
// The same path always maps to the same inode for the life of the process,
// so a file keeps its identity across lookups and directory listings.
func InodeForPath(path string) uint64 {
	inodeLock.Lock()
	defer inodeLock.Unlock()
	if inode, ok := inodesByPath[path]; ok {
		return inode
	}
	highestInode++
	inodesByPath[path] = highestInode
	return highestInode
}

// InodeRegistrySize reports how many paths have an inode, the root included.
func InodeRegistrySize() int {
	inodeLock.Lock()
	defer inodeLock.Unlock()
	return len(inodesByPath)
}
