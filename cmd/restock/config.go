package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/smarty/restock/contracts"
	"github.com/smarty/restock/shell"
)

type Config struct {
	ConfigPath   string
	Workers      int
	ShowLocation bool
	Remainder    []string
}

func parseConfig(name string, args []string) (config Config) {
	flags := flag.NewFlagSet(name, flag.ExitOnError)
	flags.StringVar(&config.ConfigPath,
		"config",
		"",
		"Path to the config file. Defaults to restock/config.yaml under the user config directory.",
	)
	flags.IntVar(&config.Workers,
		"workers",
		0,
		"Maximum number of plugins installed concurrently. Overrides the config file; 0 keeps the default.",
	)
	flags.BoolVar(&config.ShowLocation,
		"config-location",
		false,
		"Print the config file location and exit.",
	)

	flags.Usage = func() {
		output := flags.Output()
		_, _ = fmt.Fprintf(output, "Usage of %s:\n", name)
		flags.PrintDefaults()
		_, _ = fmt.Fprintln(output)
		_, _ = fmt.Fprintln(output, "  The restock tool also provides 2 additional subcommands:")
		_, _ = fmt.Fprintln(output, "	install	Install the given plugins without clearing the plugin directory first.")
		_, _ = fmt.Fprintln(output, "	version	Print the software version.")
		_, _ = fmt.Fprintln(output)
	}

	err := flags.Parse(args)
	if err != nil {
		log.Fatal(err)
	}

	config.Remainder = flags.Args()

	if config.ConfigPath == "" {
		config.ConfigPath = locateConfigFile(shell.NewEnvironment())
	}
	return config
}

func loadListing(config Config) contracts.PluginListing {
	listing, err := readListing(shell.NewDiskFileSystem(), config.ConfigPath)
	if err != nil {
		log.Fatal(err)
	}
	if config.Workers > 0 {
		listing.Concurrency = config.Workers
	}
	return listing
}

func readListing(filesystem contracts.FileReader, path string) (listing contracts.PluginListing, err error) {
	raw, err := filesystem.ReadFile(path)
	if err != nil {
		return contracts.PluginListing{}, fmt.Errorf("could not read config file: %w", err)
	}
	err = yaml.Unmarshal(raw, &listing)
	if err != nil {
		return contracts.PluginListing{}, fmt.Errorf("could not parse config file: %w", err)
	}
	listing.PluginDirectory = expandPath(listing.PluginDirectory)
	return listing, listing.Validate()
}

func locateConfigFile(environment contracts.Environment) string {
	base, set := environment.LookupEnv("XDG_CONFIG_HOME")
	if !set || base == "" {
		base = filepath.Join(homeDir(), ".config")
	}
	return filepath.Join(base, "restock", "config.yaml")
}

func expandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir(), strings.TrimPrefix(path[1:], "/"))
	}
	return path
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Fatal("Could not locate home directory: ", err)
	}
	return home
}
