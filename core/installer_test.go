package core

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/smartystreets/assertions/should"
	"github.com/smartystreets/gunit"

	"github.com/smarty/restock/archive"
	"github.com/smarty/restock/contracts"
	"github.com/smarty/restock/shell"
)

func TestPluginInstallerFixture(t *testing.T) {
	gunit.Run(new(PluginInstallerFixture), t)
}

type PluginInstallerFixture struct {
	*gunit.Fixture
	downloader *FakeDownloader
	filesystem *shell.InMemoryFileSystem
	installer  *PluginInstaller
}

func (this *PluginInstallerFixture) Setup() {
	this.downloader = &FakeDownloader{}
	this.filesystem = shell.NewInMemoryFileSystem()
	this.installer = NewPluginInstaller(
		this.downloader, archive.OpenTarGz, NewTarballExtractor(this.filesystem), "plugins")
}

func (this *PluginInstallerFixture) spec(value string) contracts.PluginSpec {
	spec, err := contracts.ParsePluginSpec(value)
	this.So(err, should.BeNil)
	return spec
}

func (this *PluginInstallerFixture) TestSuccessfulInstall() {
	this.downloader.prepareArchiveDownload(
		folder("vim-surround-HEAD/"),
		document("vim-surround-HEAD/plugin/surround.vim", "script"),
	)

	outcome := this.installer.Install(this.spec("tpope/vim-surround"))

	this.So(outcome, should.Resemble, contracts.SuccessOutcome())
	this.So(this.downloader.requested, should.Equal,
		"https://codeload.github.com/tpope/vim-surround/tar.gz/HEAD")
	this.So(this.filesystem.Exists("plugins/vim-surround/plugin/surround.vim"), should.BeTrue)
}

func (this *PluginInstallerFixture) TestFetchFailureShortCircuitsExtraction() {
	this.downloader.err = errors.New("no such host")

	outcome := this.installer.Install(this.spec("tpope/vim-surround"))

	this.So(outcome.Status, should.Equal, contracts.FetchFailed)
	this.So(outcome.Reason, should.ContainSubstring, "no such host")
	this.So(this.filesystem.Listing(), should.BeEmpty)
}

func (this *PluginInstallerFixture) TestMalformedArchive() {
	this.downloader.prepareMalformedDownload()

	outcome := this.installer.Install(this.spec("tpope/vim-surround"))

	this.So(outcome.Status, should.Equal, contracts.ExtractFailed)
	this.So(this.filesystem.Listing(), should.BeEmpty)
}

func (this *PluginInstallerFixture) TestHostileArchive() {
	this.downloader.prepareArchiveDownload(
		document("../../etc/passwel", "gotcha"),
	)

	outcome := this.installer.Install(this.spec("tpope/vim-surround"))

	this.So(outcome.Status, should.Equal, contracts.ExtractFailed)
	this.So(this.filesystem.Listing(), should.BeEmpty)
}

func (this *PluginInstallerFixture) TestPanicBecomesOutcome() {
	this.downloader.prepareArchiveDownload(
		folder("vim-surround-HEAD/"),
	)
	this.installer = NewPluginInstaller(
		this.downloader, archive.OpenTarGz, &PanickyExtractor{}, "plugins")

	outcome := this.installer.Install(this.spec("tpope/vim-surround"))

	this.So(outcome.Status, should.Equal, contracts.ExtractFailed)
	this.So(outcome.Reason, should.ContainSubstring, "unexpected failure")
}

////////////////////////////////////////////////////////////////////////////

type FakeDownloader struct {
	body      io.ReadCloser
	err       error
	requested string
}

func (this *FakeDownloader) Download(address string) (io.ReadCloser, error) {
	this.requested = address
	if this.err != nil {
		return nil, this.err
	}
	return this.body, nil
}

func (this *FakeDownloader) prepareArchiveDownload(entries ...archiveEntry) {
	this.body = io.NopCloser(bytes.NewReader(buildTarGz(entries...)))
}

func (this *FakeDownloader) prepareMalformedDownload() {
	this.body = io.NopCloser(strings.NewReader("not a gzip stream"))
}

type PanickyExtractor struct{}

func (this *PanickyExtractor) Extract(contracts.ArchiveReader, string) error {
	panic("blammo")
}
