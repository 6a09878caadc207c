package core

import (
	"fmt"
	"path/filepath"

	"github.com/smarty/restock/contracts"
)

type ArchiveExtractor interface {
	Extract(archive contracts.ArchiveReader, destDir string) error
}

// PluginInstaller carries one plugin through resolve, fetch, and extract.
// It is the failure-isolation boundary: every error, stray panics included,
// becomes an InstallOutcome here and never crosses into a sibling install.
type PluginInstaller struct {
	downloader  contracts.Downloader
	openArchive contracts.ArchiveOpener
	extractor   ArchiveExtractor
	pluginDir   string
}

func NewPluginInstaller(
	downloader contracts.Downloader,
	openArchive contracts.ArchiveOpener,
	extractor ArchiveExtractor,
	pluginDir string,
) *PluginInstaller {
	return &PluginInstaller{
		downloader:  downloader,
		openArchive: openArchive,
		extractor:   extractor,
		pluginDir:   pluginDir,
	}
}

func (this *PluginInstaller) Install(spec contracts.PluginSpec) (outcome contracts.InstallOutcome) {
	defer func() {
		if recovered := recover(); recovered != nil {
			outcome = contracts.ExtractFailure(fmt.Errorf("unexpected failure: %v", recovered))
		}
	}()

	resolved := Resolve(spec)

	body, err := this.downloader.Download(resolved.ArchiveURL)
	if err != nil {
		return contracts.FetchFailure(err)
	}
	defer func() { _ = body.Close() }()

	reader, err := this.openArchive(body)
	if err != nil {
		return contracts.ExtractFailure(err)
	}
	defer func() { _ = reader.Close() }()

	err = this.extractor.Extract(reader, filepath.Join(this.pluginDir, resolved.DestinationName))
	if err != nil {
		return contracts.ExtractFailure(err)
	}
	return contracts.SuccessOutcome()
}
