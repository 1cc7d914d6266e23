package aggregate

import "github.com/codefang-tech/lingua/pkg/gitlib"

// fileTypeMask isolates the file-type bits of a POSIX mode, as opposed to
// its permission bits.
const fileTypeMask = 0o170000

// symlinkMode is the POSIX file-type value identifying a symbolic link
// tree entry (S_IFLNK), to be compared against mode&fileTypeMask.
const symlinkMode = 0o120000

// gitBlob adapts a gitlib.CachedBlob, addressed by its tree path and mode,
// into the blob.Blob interface so the detection pipeline never needs to
// know whether it's looking at a filesystem file or a git object.
type gitBlob struct {
	name   string
	mode   uint16
	cached *gitlib.CachedBlob
}

func newGitBlob(name string, mode uint16, cached *gitlib.CachedBlob) *gitBlob {
	return &gitBlob{name: name, mode: mode, cached: cached}
}

func (b *gitBlob) Name() string { return b.name }

func (b *gitBlob) Data() ([]byte, error) { return b.cached.Data, nil }

func (b *gitBlob) Size() int64 { return b.cached.Size() }

func (b *gitBlob) IsSymlink() bool { return b.mode&fileTypeMask == symlinkMode }
