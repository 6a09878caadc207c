package core

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"io"
	"time"
)

type archiveEntry struct {
	name     string
	kind     byte
	mode     int64
	contents string
	linkName string
}

func folder(name string) archiveEntry {
	return archiveEntry{name: name, kind: tar.TypeDir, mode: 0755}
}
func document(name, contents string) archiveEntry {
	return archiveEntry{name: name, kind: tar.TypeReg, contents: contents, mode: 0644}
}
func executable(name, contents string) archiveEntry {
	return archiveEntry{name: name, kind: tar.TypeReg, contents: contents, mode: 0755}
}
func symlink(name, target string) archiveEntry {
	return archiveEntry{name: name, kind: tar.TypeSymlink, linkName: target, mode: 0777}
}
func globalHeader() archiveEntry {
	return archiveEntry{name: "pax_global_header", kind: tar.TypeXGlobalHeader}
}

func buildTarGz(entries ...archiveEntry) []byte {
	buffer := bytes.NewBuffer(nil)
	compressor := gzip.NewWriter(buffer)
	writer := tar.NewWriter(compressor)

	for _, entry := range entries {
		if entry.kind == tar.TypeXGlobalHeader {
			_ = writer.WriteHeader(&tar.Header{
				Name:       entry.name,
				Typeflag:   entry.kind,
				PAXRecords: map[string]string{"comment": "0123456789abcdef0123456789abcdef01234567"},
				Format:     tar.FormatPAX,
			})
			continue
		}
		_ = writer.WriteHeader(&tar.Header{
			Name:     entry.name,
			Mode:     entry.mode,
			Size:     int64(len(entry.contents)),
			ModTime:  time.Now(),
			Typeflag: entry.kind,
			Linkname: entry.linkName,
		})
		_, _ = io.WriteString(writer, entry.contents)
	}

	_ = writer.Close()
	_ = compressor.Close()
	return buffer.Bytes()
}
