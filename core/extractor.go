package core

import (
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/smarty/restock/contracts"
)

type ExtractorFileSystem interface {
	contracts.DirectoryCreator
	contracts.FileCreator
	contracts.PermissionSetter
	contracts.Renamer
	contracts.TreeRemover
}

// TarballExtractor unpacks a provider-generated source archive, stripping the
// single top-level wrapper directory every provider wraps its archives in.
// Extraction stages into a sibling directory and renames into place on
// success, so a failed plugin never leaves partial files at the destination.
type TarballExtractor struct {
	filesystem ExtractorFileSystem
}

func NewTarballExtractor(filesystem ExtractorFileSystem) *TarballExtractor {
	return &TarballExtractor{filesystem: filesystem}
}

func (this *TarballExtractor) Extract(archive contracts.ArchiveReader, destDir string) error {
	staging := destDir + stagingSuffix
	err := this.prepareStaging(staging)
	if err != nil {
		return err
	}
	err = this.unpack(archive, staging)
	if err == nil {
		err = this.promoteStaging(staging, destDir)
	}
	if err != nil {
		_ = this.filesystem.RemoveAll(staging)
		return err
	}
	return nil
}

// promoteStaging swaps the fully-unpacked staging directory into place,
// clearing any prior installation of the plugin first so that renaming onto
// an existing directory cannot fail a reinstall.
func (this *TarballExtractor) promoteStaging(staging, destDir string) error {
	err := this.filesystem.RemoveAll(destDir)
	if err != nil {
		return err
	}
	return this.filesystem.Rename(staging, destDir)
}

func (this *TarballExtractor) prepareStaging(staging string) error {
	err := this.filesystem.RemoveAll(staging)
	if err != nil {
		return err
	}
	return this.filesystem.MkdirAll(staging)
}

func (this *TarballExtractor) unpack(archive contracts.ArchiveReader, staging string) error {
	for {
		header, err := archive.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		err = this.writeEntry(archive, header, staging)
		if err != nil {
			return err
		}
	}
}

func (this *TarballExtractor) writeEntry(
	archive contracts.ArchiveReader, header contracts.ArchiveHeader, staging string) error {

	stripped, err := stripWrapper(header)
	if err != nil {
		return err
	}
	if stripped == "" {
		return nil // the wrapper directory itself
	}
	switch header.Kind {
	case contracts.EntryDirectory:
		return this.filesystem.MkdirAll(path.Join(staging, stripped))
	case contracts.EntryRegular:
		return this.writeFile(archive.Reader(), header, path.Join(staging, stripped))
	case contracts.EntrySymlink:
		return fmt.Errorf("%w: %q -> %q", symlinkEntryErr, header.Name, header.LinkName)
	default:
		return fmt.Errorf("%w: %q", unsupportedEntryErr, header.Name)
	}
}

func (this *TarballExtractor) writeFile(
	contents io.Reader, header contracts.ArchiveHeader, target string) error {

	err := this.filesystem.MkdirAll(path.Dir(target))
	if err != nil {
		return err
	}
	writer, err := this.filesystem.Create(target)
	if err != nil {
		return err
	}
	_, err = io.Copy(writer, contents)
	closeErr := writer.Close()
	if err != nil {
		return err
	}
	if closeErr != nil {
		return closeErr
	}
	if header.Executable {
		return this.filesystem.Chmod(target, 0755)
	}
	return nil
}

// stripWrapper removes the top-level wrapper component from an entry path.
// Entries that would land outside the destination (absolute, or escaping via
// "..") and entries with no wrapper to strip are fatal for the plugin.
func stripWrapper(header contracts.ArchiveHeader) (string, error) {
	if strings.HasPrefix(header.Name, "/") {
		return "", fmt.Errorf("%w: %q", pathEscapeErr, header.Name)
	}
	cleaned := path.Clean(strings.TrimSuffix(header.Name, "/"))
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("%w: %q", pathEscapeErr, header.Name)
	}
	separator := strings.Index(cleaned, "/")
	if separator < 0 {
		if header.Kind == contracts.EntryDirectory || cleaned == "." {
			return "", nil
		}
		return "", fmt.Errorf("%w: %q", noWrapperErr, header.Name)
	}
	return cleaned[separator+1:], nil
}

const stagingSuffix = ".partial"

var (
	pathEscapeErr       = errors.New("archive entry escapes the destination directory")
	noWrapperErr        = errors.New("archive entry has no wrapper directory to strip")
	symlinkEntryErr     = errors.New("symlink entries are not allowed in plugin archives")
	unsupportedEntryErr = errors.New("unsupported archive entry type")
)
