package xkcdfs

import (
	"context"
	"errors"
	"os"
	"path"
	"sync"
	"syscall"
	"time"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"

	"github.com/dendrascience/xkcdfs/route"
	"github.com/dendrascience/xkcdfs/util"
)

// FS implements the xkcdfs FUSE filesystem on top of a dispatcher.
type FS struct {
	dispatcher *route.Dispatcher
	mounted    time.Time
}

// NewFS creates a filesystem that answers every kernel request through d.
func NewFS(d *route.Dispatcher) *FS {
	return &FS{
		dispatcher: d,
		mounted:    time.Now(),
	}
}

// Root returns the root directory node.
func (f *FS) Root() (fs.Node, error) {
	return &Dir{fs: f, path: "/"}, nil
}

// Dir is a directory node. Only the root exists today.
type Dir struct {
	fs   *FS
	path string
}

// Attr returns directory attributes.
func (d *Dir) Attr(ctx context.Context, a *fuse.Attr) error {
	a.Inode = util.InodeForPath(d.path)
	a.Mode = os.ModeDir | 0o555
	a.Mtime = d.fs.mounted
	a.Ctime = d.fs.mounted
	a.Atime = time.Now()
	return nil
}

// Lookup resolves a name by asking the dispatcher whether it exists.
func (d *Dir) Lookup(ctx context.Context, name string) (fs.Node, error) {
	p := path.Join(d.path, name)
	exists, err := d.fs.dispatcher.Stat(ctx, p)
	if err != nil {
		return nil, toErrno(err)
	}
	if !exists {
		return nil, syscall.ENOENT
	}
	return &File{fs: d.fs, path: p}, nil
}

// ReadDirAll lists directory contents.
func (d *Dir) ReadDirAll(ctx context.Context) ([]fuse.Dirent, error) {
	names, err := d.fs.dispatcher.List(ctx, d.path)
	if err != nil {
		return nil, toErrno(err)
	}

	dirents := make([]fuse.Dirent, 0, len(names))
	for _, name := range names {
		dirents = append(dirents, fuse.Dirent{
			Inode: util.InodeForPath(path.Join(d.path, name)),
			Name:  name,
			Type:  fuse.DT_File,
		})
	}
	return dirents, nil
}

// File is a read-only file node whose content comes from the dispatcher.
type File struct {
	fs   *FS
	path string

	size uint64 // zero until the first successful read
	mu   sync.RWMutex
}

// Attr returns file attributes.
func (f *File) Attr(ctx context.Context, a *fuse.Attr) error {
	f.mu.RLock()
	defer f.mu.RUnlock()

	a.Inode = util.InodeForPath(f.path)
	a.Mode = 0o444
	a.Size = f.size
	a.Mtime = f.fs.mounted
	a.Ctime = f.fs.mounted
	a.Atime = time.Now()
	return nil
}

// Open refuses writers. Reads bypass the page cache because the size is
// not known before the content is fetched.
func (f *File) Open(ctx context.Context, req *fuse.OpenRequest, resp *fuse.OpenResponse) (fs.Handle, error) {
	if !req.Flags.IsReadOnly() {
		return nil, syscall.EPERM
	}
	resp.Flags |= fuse.OpenDirectIO
	return f, nil
}

// ReadAll reads the entire file content.
func (f *File) ReadAll(ctx context.Context) ([]byte, error) {
	data, err := f.fs.dispatcher.Read(ctx, f.path)
	if err != nil {
		return nil, toErrno(err)
	}

	f.mu.Lock()
	f.size = uint64(len(data))
	f.mu.Unlock()
	return data, nil
}

// toErrno maps dispatcher errors to kernel errors. Handler failures wrap
// util.ErrIO even when their cause was a remote not-found.
func toErrno(err error) error {
	if !errors.Is(err, util.ErrIO) && errors.Is(err, util.ErrNotFound) {
		return syscall.ENOENT
	}
	return syscall.EIO
}
