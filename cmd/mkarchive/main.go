// Command mkarchive packs a plugin directory into a tar.gz whose single
// top-level wrapper directory is the source directory name, matching the
// shape of provider-generated repository archives. Useful for publishing
// direct archive plugins and for exercising installs against local files.
package main

import (
	"flag"
	"log"
	"path/filepath"

	"github.com/mholt/archiver"
)

func main() {
	log.SetFlags(log.Ltime | log.Lshortfile)

	source := flag.String("source", "", "Plugin directory to package.")
	output := flag.String("out", "", "Output archive path. Defaults to <source>.tar.gz.")
	flag.Parse()

	if *source == "" {
		log.Fatal("Please provide a -source directory.")
	}
	target := *output
	if target == "" {
		target = filepath.Clean(*source) + ".tar.gz"
	}

	err := archiver.NewTarGz().Archive([]string{*source}, target)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("Packaged %s into %s.", *source, target)
}
