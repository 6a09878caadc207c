package contracts

import (
	"io"
	"time"
)

type EntryKind int

const (
	EntryRegular EntryKind = iota
	EntryDirectory
	EntrySymlink
	EntryOther
)

type ArchiveHeader struct {
	Name       string
	Size       int64
	ModTime    time.Time
	Kind       EntryKind
	Executable bool
	LinkName   string
}

// ArchiveReader yields archive entries one at a time; Next returns io.EOF
// after the final entry. Reader exposes the contents of the current entry.
type ArchiveReader interface {
	Next() (ArchiveHeader, error)
	Reader() io.Reader
	Close() error
}

// ArchiveOpener wraps a compressed byte stream in an ArchiveReader.
type ArchiveOpener func(stream io.Reader) (ArchiveReader, error)
