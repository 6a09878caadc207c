package archive

import (
	"archive/tar"
	"compress/gzip"
	"io"
	"os"

	"github.com/smarty/restock/contracts"
)

// TarArchiveReader adapts a gzip-compressed tar stream to the ArchiveReader
// contract. Malformed framing surfaces as errors from OpenTarGz or Next.
type TarArchiveReader struct {
	decompressor *gzip.Reader
	reader       *tar.Reader
}

func OpenTarGz(stream io.Reader) (contracts.ArchiveReader, error) {
	decompressor, err := gzip.NewReader(stream)
	if err != nil {
		return nil, err
	}
	return &TarArchiveReader{
		decompressor: decompressor,
		reader:       tar.NewReader(decompressor),
	}, nil
}

func (this *TarArchiveReader) Next() (contracts.ArchiveHeader, error) {
	for {
		header, err := this.reader.Next()
		if err != nil {
			return contracts.ArchiveHeader{}, err
		}
		if header.Typeflag == tar.TypeXGlobalHeader {
			continue // git-generated archives lead with a pax_global_header entry
		}
		return contracts.ArchiveHeader{
			Name:       header.Name,
			Size:       header.Size,
			ModTime:    header.ModTime,
			Kind:       entryKind(header.Typeflag),
			Executable: contracts.IsExecutable(os.FileMode(header.Mode)),
			LinkName:   header.Linkname,
		}, nil
	}
}

func entryKind(typeflag byte) contracts.EntryKind {
	switch typeflag {
	case tar.TypeDir:
		return contracts.EntryDirectory
	case tar.TypeReg:
		return contracts.EntryRegular
	case tar.TypeSymlink, tar.TypeLink:
		return contracts.EntrySymlink
	default:
		return contracts.EntryOther
	}
}

func (this *TarArchiveReader) Reader() io.Reader {
	return this.reader
}

func (this *TarArchiveReader) Close() error {
	return this.decompressor.Close()
}
