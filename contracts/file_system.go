package contracts

import (
	"io"
	"os"
)

type DirectoryCreator interface {
	MkdirAll(path string) error
}

type FileCreator interface {
	Create(path string) (io.WriteCloser, error)
}

type FileReader interface {
	ReadFile(path string) ([]byte, error)
}

type PermissionSetter interface {
	Chmod(path string, mode os.FileMode) error
}

type Renamer interface {
	Rename(oldPath, newPath string) error
}

type TreeRemover interface {
	RemoveAll(path string) error
}

type Environment interface {
	LookupEnv(key string) (value string, set bool)
}

func IsExecutable(mode os.FileMode) bool {
	return mode.Perm()&0111 > 0
}
