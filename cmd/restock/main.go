package main

import (
	"fmt"
	"log"
	"os"

	"github.com/smarty/restock/archive"
	"github.com/smarty/restock/contracts"
	"github.com/smarty/restock/core"
	"github.com/smarty/restock/shell"
)

func main() {
	log.SetFlags(log.Ltime | log.Lshortfile)

	if isSubCommand("install") {
		installMain(os.Args[2:])
	} else if isSubCommand("version") {
		versionMain()
	} else {
		restockMain(os.Args[1:])
	}
}

func isSubCommand(name string) bool {
	return len(os.Args) > 1 && os.Args[1] == name
}

// restockMain performs the wholesale run: clear the plugin directory and
// install every plugin named by the config file.
func restockMain(args []string) {
	config := parseConfig("restock", args)
	if config.ShowLocation {
		fmt.Println(config.ConfigPath)
		return
	}
	listing := loadListing(config)
	os.Exit(install(listing, true))
}

// installMain installs the plugins given as arguments into the configured
// plugin directory without clearing it first.
func installMain(args []string) {
	config := parseConfig("restock install", args)
	listing := loadListing(config)
	listing.Plugins = parseSpecArguments(config.Remainder)

	err := listing.Validate()
	if err != nil {
		log.Fatal(err)
	}
	os.Exit(install(listing, false))
}

func parseSpecArguments(args []string) (specs []contracts.PluginSpec) {
	if len(args) == 0 {
		log.Fatal("Please provide at least one plugin to install.")
	}
	for _, value := range args {
		spec, err := contracts.ParsePluginSpec(value)
		if err != nil {
			log.Fatal(err)
		}
		specs = append(specs, spec)
	}
	return specs
}

func install(listing contracts.PluginListing, replace bool) (failed int) {
	filesystem := shell.NewDiskFileSystem()
	extractor := core.NewTarballExtractor(filesystem)
	installer := core.NewPluginInstaller(
		shell.NewWebDownloader(), archive.OpenTarGz, extractor, listing.PluginDirectory)
	coordinator := core.NewInstallCoordinator(filesystem, installer, listing.Concurrency, replace)

	reports, err := coordinator.InstallAll(listing.Plugins, listing.PluginDirectory)
	if err != nil {
		log.Fatal(err)
	}
	for _, report := range reports {
		if report.Outcome.Failed() {
			failed++
		}
	}
	if failed > 0 {
		log.Printf("[WARN] %d of %d plugins failed to install.", failed, len(reports))
	} else {
		log.Printf("Installed %d plugins.", len(reports))
	}
	return failed
}

func versionMain() {
	fmt.Printf("restock [%s]\n", ldflagsSoftwareVersion)
}

var ldflagsSoftwareVersion = "debug"
