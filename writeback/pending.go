package writeback

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arloliu/go-edifmt/internal/pool"
)

// TempPattern is the name pattern of temporary files created next to the target.
const TempPattern = ".edifmt-*"

// Pending is a temporary file that replaces a target file on Commit.
//
// Callers are expected to defer Discard right after Acquire; Discard is a no-op once Commit succeeded.
type Pending struct {
	path    string
	tmpPath string
	tmp     *os.File
	bw      *bufio.Writer
	done    bool
}

// Acquire creates a temporary file in the directory of path. The temporary file gets the permission
// bits of path when it exists.
func Acquire(path string) (*Pending, error) {
	perm := fs.FileMode(0o644)
	if fi, err := os.Stat(path); err == nil {
		if !fi.Mode().IsRegular() {
			return nil, fmt.Errorf("acquire %s: %w", path, ErrNotRegular)
		}
		perm = fi.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), TempPattern)
	if err != nil {
		return nil, fmt.Errorf("acquire %s: %w", path, err)
	}

	if err := tmp.Chmod(perm); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())

		return nil, fmt.Errorf("acquire %s: %w", path, err)
	}

	return &Pending{
		path:    path,
		tmpPath: tmp.Name(),
		tmp:     tmp,
		bw:      pool.GetWriter(tmp),
	}, nil
}

// Path returns the target path.
func (p *Pending) Path() string {
	return p.path
}

// TempPath returns the path of the temporary file.
func (p *Pending) TempPath() string {
	return p.tmpPath
}

// Write implements io.Writer.
func (p *Pending) Write(b []byte) (int, error) {
	if p.done {
		return 0, ErrFinished
	}

	return p.bw.Write(b)
}

// Commit flushes and syncs the temporary file and renames it over the target path.
// The parent directory is synced afterwards on a best-effort basis.
//
// When Commit fails the temporary file is removed and the target is left as it was.
func (p *Pending) Commit() error {
	if p.done {
		return ErrFinished
	}

	if err := p.bw.Flush(); err != nil {
		return p.abort("flush", err)
	}

	if err := p.tmp.Sync(); err != nil {
		return p.abort("sync", err)
	}

	if err := p.tmp.Close(); err != nil {
		p.tmp = nil
		return p.abort("close", err)
	}
	p.tmp = nil

	if err := osReplace(p.tmpPath, p.path); err != nil {
		return p.abort("replace", err)
	}
	p.finish()

	_ = syncDir(filepath.Dir(p.path))

	return nil
}

// Discard closes and removes the temporary file. It's safe to call more than once and after Commit.
func (p *Pending) Discard() error {
	if p.done {
		return nil
	}

	var err error
	if p.tmp != nil {
		err = p.tmp.Close()
		p.tmp = nil
	}
	if rmErr := os.Remove(p.tmpPath); rmErr != nil && !os.IsNotExist(rmErr) && err == nil {
		err = rmErr
	}
	p.finish()

	if err != nil {
		return fmt.Errorf("discard %s: %w", p.tmpPath, err)
	}

	return nil
}

func (p *Pending) abort(op string, err error) error {
	_ = p.Discard()
	return fmt.Errorf("commit %s: %s: %w", p.path, op, err)
}

func (p *Pending) finish() {
	p.done = true
	if p.bw != nil {
		pool.PutWriter(p.bw)
		p.bw = nil
	}
}
