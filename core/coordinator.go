package core

import (
	"fmt"
	"log"
	"sync"

	"github.com/smarty/restock/contracts"
)

const DefaultConcurrency = 8

type CoordinatorFileSystem interface {
	contracts.TreeRemover
	contracts.DirectoryCreator
}

type pluginInstaller interface {
	Install(spec contracts.PluginSpec) contracts.InstallOutcome
}

// InstallCoordinator owns the plugin directory lifecycle and fans installs
// out across a bounded number of concurrent workers. With replace set, the
// directory is cleared and recreated before any worker starts, so a
// successful run leaves exactly the listed plugins and nothing else.
type InstallCoordinator struct {
	filesystem  CoordinatorFileSystem
	installer   pluginInstaller
	concurrency int
	replace     bool
}

func NewInstallCoordinator(
	filesystem CoordinatorFileSystem,
	installer pluginInstaller,
	concurrency int,
	replace bool,
) *InstallCoordinator {
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}
	return &InstallCoordinator{
		filesystem:  filesystem,
		installer:   installer,
		concurrency: concurrency,
		replace:     replace,
	}
}

// InstallAll returns one report per spec, in spec order; completion order
// shows up only in the log. Only directory preparation can fail the run as
// a whole, in which case no installs are attempted.
func (this *InstallCoordinator) InstallAll(
	specs []contracts.PluginSpec, pluginDir string) ([]contracts.PluginReport, error) {

	err := this.prepareDirectory(pluginDir)
	if err != nil {
		return nil, fmt.Errorf("could not prepare plugin directory %q: %w", pluginDir, err)
	}

	reports := make([]contracts.PluginReport, len(specs))
	waiter := new(sync.WaitGroup)
	waiter.Add(len(specs))
	tickets := make(chan struct{}, this.concurrency)

	for index, spec := range specs {
		go this.install(spec, &reports[index], waiter, tickets)
	}

	waiter.Wait()
	return reports, nil
}

func (this *InstallCoordinator) prepareDirectory(pluginDir string) error {
	if this.replace {
		err := this.filesystem.RemoveAll(pluginDir)
		if err != nil {
			return err
		}
	}
	return this.filesystem.MkdirAll(pluginDir)
}

func (this *InstallCoordinator) install(
	spec contracts.PluginSpec,
	report *contracts.PluginReport,
	waiter *sync.WaitGroup,
	tickets chan struct{},
) {
	defer waiter.Done()
	tickets <- struct{}{}
	defer func() { <-tickets }()

	log.Printf("Installing plugin: %s", spec.Title())
	outcome := this.installer.Install(spec)
	if outcome.Failed() {
		log.Printf("[WARN] Plugin %s: %s: %s", spec.Title(), outcome.Status, outcome.Reason)
	} else {
		log.Printf("Installed plugin: %s", spec.Title())
	}
	*report = contracts.PluginReport{Spec: spec, Outcome: outcome}
}
