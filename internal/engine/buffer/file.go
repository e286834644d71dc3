package buffer

import (
	"errors"
	"fmt"
	"os"
	"time"
	"unicode/utf8"
)

// MaxFileSize is the largest file the editor will load. Oversized files are
// an error, not a soft failure: the flat storage and whole-buffer
// re-highlighting are only acceptable below this bound.
const MaxFileSize = 10 << 20

// Errors returned by file operations.
var (
	ErrFileTooLarge = errors.New("file exceeds maximum size")
	ErrInvalidUTF8  = errors.New("file is not valid UTF-8")
	ErrNoFile       = errors.New("buffer has no file association")
)

// FileState is the buffer's optional binding to a file on disk.
type FileState struct {
	Path    string
	ModTime time.Time
}

// Load reads an entire file into a new buffer. The buffer starts clean:
// not modified, no conflict, indices rebuilt on first Sync.
func Load(path string, opts ...Option) (*Buffer, error) {
	b := New(opts...)
	if err := b.load(path); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Buffer) load(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.Size() > MaxFileSize {
		return fmt.Errorf("load %s: %w", path, ErrFileTooLarge)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return fmt.Errorf("load %s: %w", path, ErrInvalidUTF8)
	}

	b.chars = []rune(string(data))
	b.dirty = true
	b.modified = false
	b.modifiedOnDisk = false
	b.deleted = false
	b.file = &FileState{Path: path, ModTime: info.ModTime()}
	return nil
}

// File returns the buffer's file binding, or nil for a freestanding buffer.
func (b *Buffer) File() *FileState {
	return b.file
}

// Path returns the bound file path, or "" for a freestanding buffer.
func (b *Buffer) Path() string {
	if b.file == nil {
		return ""
	}
	return b.file.Path
}

// RefreshFromDisk re-stats the bound file and reconciles:
//
//   - mtime unchanged: no-op
//   - changed, buffer clean: reload content from disk
//   - changed, buffer locally modified: set the conflict flag, keep content
//   - file missing: set the deleted flag, keep content
//
// Resolution of a conflict is a caller decision; this never overwrites
// local edits.
func (b *Buffer) RefreshFromDisk() error {
	if b.file == nil {
		return nil
	}
	info, err := os.Stat(b.file.Path)
	if err != nil {
		if os.IsNotExist(err) {
			b.deleted = true
			return nil
		}
		return fmt.Errorf("stat %s: %w", b.file.Path, err)
	}
	b.deleted = false

	if info.ModTime().Equal(b.file.ModTime) {
		return nil
	}
	if b.modified {
		b.modifiedOnDisk = true
		return nil
	}
	return b.load(b.file.Path)
}

// Save normalizes and writes the buffer to its bound file: trailing spaces
// are stripped per line, a trailing newline is ensured, the file is written
// with truncate+create, and the stored mtime is updated. The in-memory text
// is normalized the same way, so a reload of the saved file is always
// byte-identical to the buffer.
func (b *Buffer) Save() error {
	if b.file == nil {
		return ErrNoFile
	}

	b.stripTrailingSpace()
	if len(b.chars) > 0 && b.chars[len(b.chars)-1] != '\n' {
		b.chars = append(b.chars, '\n')
		b.dirty = true
	}

	if err := os.WriteFile(b.file.Path, []byte(string(b.chars)), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", b.file.Path, err)
	}
	info, err := os.Stat(b.file.Path)
	if err != nil {
		return fmt.Errorf("stat after save %s: %w", b.file.Path, err)
	}

	b.file.ModTime = info.ModTime()
	b.modified = false
	b.modifiedOnDisk = false
	b.deleted = false
	return nil
}

// SaveAs binds the buffer to a new path and saves.
func (b *Buffer) SaveAs(path string) error {
	b.file = &FileState{Path: path}
	return b.Save()
}
