package xkcdfs

import (
	"context"
	"os"
	"syscall"
	"testing"
	"time"

	"bazil.org/fuse"

	"github.com/dendrascience/xkcdfs/util"
)

func mountless(t *testing.T, a *archive) *Dir {
	t.Helper()
	root, err := NewFS(a.service(t).Dispatcher()).Root()
	if err != nil {
		t.Fatalf("Root: %v", err)
	}
	return root.(*Dir)
}

func TestDir_Attr(t *testing.T) {
	root := mountless(t, newArchive(t, 3))

	var a fuse.Attr
	if err := root.Attr(context.Background(), &a); err != nil {
		t.Fatalf("Attr: %v", err)
	}
	if a.Inode != util.RootInode {
		t.Errorf("root inode = %d, want %d", a.Inode, util.RootInode)
	}
	if a.Mode != os.ModeDir|0o555 {
		t.Errorf("root mode = %v", a.Mode)
	}
}

func TestDir_ReadDirAll(t *testing.T) {
	root := mountless(t, newArchive(t, 3))

	dirents, err := root.ReadDirAll(context.Background())
	if err != nil {
		t.Fatalf("ReadDirAll: %v", err)
	}
	if len(dirents) != 3 {
		t.Fatalf("ReadDirAll returned %d entries, want 3", len(dirents))
	}
	for i, de := range dirents {
		if want := []string{"1", "2", "3"}[i]; de.Name != want {
			t.Errorf("entry %d = %q, want %q", i, de.Name, want)
		}
		if de.Type != fuse.DT_File {
			t.Errorf("entry %q type = %v, want DT_File", de.Name, de.Type)
		}
		if de.Inode != util.InodeForPath("/"+de.Name) {
			t.Errorf("entry %q inode %d is not the registered one", de.Name, de.Inode)
		}
	}
}

func TestDir_Lookup(t *testing.T) {
	root := mountless(t, newArchive(t, 3))
	ctx := context.Background()

	tests := []struct {
		name    string
		wantErr error
	}{
		{name: "1"},
		{name: "3"},
		{name: "4", wantErr: syscall.ENOENT},
		{name: "notanumber"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := root.Lookup(ctx, tt.name)
			if err != tt.wantErr {
				t.Fatalf("Lookup(%q) err = %v, want %v", tt.name, err, tt.wantErr)
			}
			if tt.wantErr == nil {
				if _, ok := node.(*File); !ok {
					t.Errorf("Lookup(%q) returned %T, want *File", tt.name, node)
				}
			}
		})
	}
}

func TestFile_ReadAll(t *testing.T) {
	root := mountless(t, newArchive(t, 5, 2))
	ctx := context.Background()

	node, err := root.Lookup(ctx, "2")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	f := node.(*File)

	data, err := f.ReadAll(ctx)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(data) != "PNGDATA-2" {
		t.Errorf("ReadAll = %q", data)
	}

	var a fuse.Attr
	if err := f.Attr(ctx, &a); err != nil {
		t.Fatalf("Attr: %v", err)
	}
	if a.Size != uint64(len(data)) {
		t.Errorf("size after read = %d, want %d", a.Size, len(data))
	}
	if a.Mode != 0o444 {
		t.Errorf("file mode = %v, want 0444", a.Mode)
	}
}

func TestFile_ReadAllErrors(t *testing.T) {
	root := mountless(t, newArchive(t, 5))
	ctx := context.Background()

	tests := []struct {
		name string
		want error
	}{
		{name: "4", want: syscall.ENOENT},
		{name: "notanumber", want: syscall.EIO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &File{fs: root.fs, path: "/" + tt.name}
			if _, err := f.ReadAll(ctx); err != tt.want {
				t.Errorf("ReadAll(/%s) = %v, want %v", tt.name, err, tt.want)
			}
		})
	}
}

func TestFile_OpenRejectsWriters(t *testing.T) {
	f := &File{fs: &FS{mounted: time.Now()}, path: "/1"}
	ctx := context.Background()

	resp := &fuse.OpenResponse{}
	if _, err := f.Open(ctx, &fuse.OpenRequest{Flags: fuse.OpenWriteOnly}, resp); err != syscall.EPERM {
		t.Errorf("Open for writing = %v, want EPERM", err)
	}

	h, err := f.Open(ctx, &fuse.OpenRequest{Flags: fuse.OpenReadOnly}, resp)
	if err != nil {
		t.Fatalf("Open read-only: %v", err)
	}
	if h != f {
		t.Errorf("Open returned %v, want the file itself", h)
	}
	if resp.Flags&fuse.OpenDirectIO == 0 {
		t.Error("Open did not request direct I/O")
	}
}

// TestFile_ConcurrentReads verifies parallel reads neither deadlock nor
// fetch more than once.
func TestFile_ConcurrentReads(t *testing.T) {
	a := newArchive(t, 5, 1)
	root := mountless(t, a)

	done := make(chan error, 20)
	for range 20 {
		go func() {
			f := &File{fs: root.fs, path: "/1"}
			_, err := f.ReadAll(context.Background())
			done <- err
		}()
	}

	for range 20 {
		select {
		case err := <-done:
			if err != nil {
				t.Errorf("ReadAll: %v", err)
			}
		case <-time.After(5 * time.Second):
			t.Fatal("ReadAll deadlocked - test timed out")
		}
	}

	if n := a.count("/1/info.0.json"); n != 1 {
		t.Errorf("record fetched %d times, want 1", n)
	}
	if n := a.count(a.imagePath(1)); n != 1 {
		t.Errorf("image fetched %d times, want 1", n)
	}
}
