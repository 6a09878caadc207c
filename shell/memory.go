package shell

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
)

// InMemoryFileSystem implements the filesystem contracts for tests. Error
// maps inject failures per path. Methods are safe for concurrent use since
// the coordinator drives installs from multiple goroutines.
type InMemoryFileSystem struct {
	lock  sync.Mutex
	files map[string]*memoryFile
	dirs  map[string]struct{}

	ErrMkdirAll  map[string]error
	ErrCreate    map[string]error
	ErrChmod     map[string]error
	ErrRename    map[string]error
	ErrRemoveAll map[string]error
}

func NewInMemoryFileSystem() *InMemoryFileSystem {
	return &InMemoryFileSystem{
		files:        make(map[string]*memoryFile),
		dirs:         make(map[string]struct{}),
		ErrMkdirAll:  make(map[string]error),
		ErrCreate:    make(map[string]error),
		ErrChmod:     make(map[string]error),
		ErrRename:    make(map[string]error),
		ErrRemoveAll: make(map[string]error),
	}
}

func (this *InMemoryFileSystem) MkdirAll(path string) error {
	this.lock.Lock()
	defer this.lock.Unlock()
	if err := this.ErrMkdirAll[path]; err != nil {
		return err
	}
	this.dirs[path] = struct{}{}
	return nil
}

func (this *InMemoryFileSystem) Create(path string) (io.WriteCloser, error) {
	this.lock.Lock()
	defer this.lock.Unlock()
	if err := this.ErrCreate[path]; err != nil {
		return nil, err
	}
	created := &memoryFile{mode: 0644}
	this.files[path] = created
	return created, nil
}

func (this *InMemoryFileSystem) Chmod(path string, mode os.FileMode) error {
	this.lock.Lock()
	defer this.lock.Unlock()
	if err := this.ErrChmod[path]; err != nil {
		return err
	}
	target, found := this.files[path]
	if !found {
		return fmt.Errorf("chmod %s: %w", path, os.ErrNotExist)
	}
	target.mode = mode
	return nil
}

func (this *InMemoryFileSystem) Rename(oldPath, newPath string) error {
	this.lock.Lock()
	defer this.lock.Unlock()
	if err := this.ErrRename[oldPath]; err != nil {
		return err
	}
	if !this.exists(oldPath) {
		return fmt.Errorf("rename %s: %w", oldPath, os.ErrNotExist)
	}
	if this.exists(newPath) {
		return fmt.Errorf("rename %s %s: %w", oldPath, newPath, os.ErrExist)
	}
	movedFiles := make(map[string]*memoryFile)
	for path, file := range this.files {
		if covers(oldPath, path) {
			movedFiles[newPath+strings.TrimPrefix(path, oldPath)] = file
			delete(this.files, path)
		}
	}
	for path, file := range movedFiles {
		this.files[path] = file
	}
	movedDirs := make(map[string]struct{})
	for path := range this.dirs {
		if covers(oldPath, path) {
			movedDirs[newPath+strings.TrimPrefix(path, oldPath)] = struct{}{}
			delete(this.dirs, path)
		}
	}
	for path := range movedDirs {
		this.dirs[path] = struct{}{}
	}
	return nil
}

func (this *InMemoryFileSystem) RemoveAll(path string) error {
	this.lock.Lock()
	defer this.lock.Unlock()
	if err := this.ErrRemoveAll[path]; err != nil {
		return err
	}
	for candidate := range this.files {
		if covers(path, candidate) {
			delete(this.files, candidate)
		}
	}
	for candidate := range this.dirs {
		if covers(path, candidate) {
			delete(this.dirs, candidate)
		}
	}
	return nil
}

func (this *InMemoryFileSystem) ReadFile(path string) ([]byte, error) {
	this.lock.Lock()
	defer this.lock.Unlock()
	target, found := this.files[path]
	if !found {
		return nil, fmt.Errorf("open %s: %w", path, os.ErrNotExist)
	}
	return target.contents.Bytes(), nil
}

func (this *InMemoryFileSystem) WriteFile(path string, contents []byte) {
	this.lock.Lock()
	defer this.lock.Unlock()
	created := &memoryFile{mode: 0644}
	created.contents.Write(contents)
	this.files[path] = created
}

func (this *InMemoryFileSystem) Exists(path string) bool {
	this.lock.Lock()
	defer this.lock.Unlock()
	return this.exists(path)
}

func (this *InMemoryFileSystem) exists(path string) bool {
	for candidate := range this.files {
		if covers(path, candidate) {
			return true
		}
	}
	for candidate := range this.dirs {
		if covers(path, candidate) {
			return true
		}
	}
	return false
}

func (this *InMemoryFileSystem) Mode(path string) os.FileMode {
	this.lock.Lock()
	defer this.lock.Unlock()
	target, found := this.files[path]
	if !found {
		return 0
	}
	return target.mode
}

// Listing returns every file path in sorted order.
func (this *InMemoryFileSystem) Listing() (listing []string) {
	this.lock.Lock()
	defer this.lock.Unlock()
	for path := range this.files {
		listing = append(listing, path)
	}
	sort.Strings(listing)
	return listing
}

// covers reports whether candidate is root itself or lives underneath it.
func covers(root, candidate string) bool {
	return candidate == root || strings.HasPrefix(candidate, root+"/")
}

/////////////////////////////////////////////////

type memoryFile struct {
	contents bytes.Buffer
	mode     os.FileMode
}

func (this *memoryFile) Write(p []byte) (int, error) {
	return this.contents.Write(p)
}

func (this *memoryFile) Close() error {
	return nil
}
