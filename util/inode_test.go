package util

import (
	"fmt"
	"sync"
	"testing"
)

func TestInodeForPath_Stable(t *testing.T) {
	a := InodeForPath("/stable-a")
	b := InodeForPath("/stable-b")
	if a == b {
		t.Fatalf("distinct paths share inode %d", a)
	}
	if b != a+1 {
		t.Errorf("second allocation = %d, want %d", b, a+1)
	}
	if again := InodeForPath("/stable-a"); again != a {
		t.Errorf("InodeForPath(/stable-a) = %d, previously %d", again, a)
	}
}

func TestInodeForPath_Root(t *testing.T) {
	if got := InodeForPath("/"); got != RootInode {
		t.Errorf("InodeForPath(/) = %d, want %d", got, RootInode)
	}
	for i := range 10 {
		if InodeForPath(fmt.Sprintf("/not-root/%d", i)) == RootInode {
			t.Fatal("InodeForPath handed out the root inode")
		}
	}
}

func TestInodeForPath_Concurrent(t *testing.T) {
	before := InodeRegistrySize()

	var wg sync.WaitGroup
	numGoroutines := 100
	numPaths := 26

	inodes := make([]uint64, numGoroutines)
	wg.Add(numGoroutines)
	for i := range numGoroutines {
		go func(idx int) {
			defer wg.Done()
			inodes[idx] = InodeForPath(fmt.Sprintf("/concurrent/%d", idx%numPaths))
		}(i)
	}
	wg.Wait()

	if got := InodeRegistrySize() - before; got != numPaths {
		t.Errorf("Registry grew by %d, want %d", got, numPaths)
	}

	seen := make(map[uint64]bool)
	for i := range numGoroutines {
		if inodes[i] != inodes[i%numPaths] {
			t.Errorf("goroutine %d got inode %d for a path already bound to %d", i, inodes[i], inodes[i%numPaths])
		}
		seen[inodes[i]] = true
	}
	if len(seen) != numPaths {
		t.Errorf("%d distinct inodes for %d paths", len(seen), numPaths)
	}
}
