package contracts

import (
	"errors"
	"fmt"
)

// PluginListing is the declarative input for a run: every listed plugin gets
// installed under PluginDirectory, and nothing else survives there.
type PluginListing struct {
	PluginDirectory string       `yaml:"plugin_dir"`
	Concurrency     int          `yaml:"concurrency"`
	Plugins         []PluginSpec `yaml:"plugins"`
}

func (this *PluginListing) Validate() error {
	if this.PluginDirectory == "" {
		return errors.New("plugin directory is required")
	}
	if this.Concurrency < 0 {
		return errors.New("concurrency must not be negative")
	}

	inventory := make(map[string]PluginSpec) // map[DestinationName]PluginSpec

	for _, plugin := range this.Plugins {
		if plugin.Git == nil && plugin.Archive == nil {
			return errors.New("blank plugin spec")
		}
		name := plugin.DestinationName()
		if name == "" {
			return fmt.Errorf("plugin %s has no destination name", plugin.Title())
		}
		if conflict, found := inventory[name]; found {
			return fmt.Errorf("plugins %s and %s both install to %q",
				conflict.Title(), plugin.Title(), name)
		}
		inventory[name] = plugin
	}
	return nil
}
