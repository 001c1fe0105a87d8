// Command tilextract builds deduplicated tile sheets from level rips.
//
//	tilextract -out sheets -tw 16 -th 16 rips/*.png
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/automoto/tilecore/config"
	"github.com/automoto/tilecore/extract"
	"github.com/automoto/tilecore/storage"
	"github.com/automoto/tilecore/tilemap"
)

func main() {
	out := flag.String("out", ".", "output directory for the sheets")
	prefix := flag.String("prefix", "sheet", "sheet file name prefix")
	tw := flag.Int("tw", 16, "tile width in pixels")
	th := flag.Int("th", 16, "tile height in pixels")
	horizontal := flag.Int("h", config.Extract.Horizontal, "sheet width in tiles")
	vertical := flag.Int("v", config.Extract.Vertical, "sheet height in tiles")
	sheetsConfig := flag.String("config", config.Map.SheetsFile, "sheets config written next to the sheets; empty to skip")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] rip.png...\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	store := storage.NewDir(*out)
	e, err := extract.New(extract.Config{
		TileWidth:  *tw,
		TileHeight: *th,
		Horizontal: *horizontal,
		Vertical:   *vertical,
		Prefix:     *prefix,
	}, os.DirFS("/"), store)
	if err != nil {
		log.Fatal(err)
	}
	for _, rip := range flag.Args() {
		abs, err := filepath.Abs(rip)
		if err != nil {
			log.Fatal(err)
		}
		// Rips are read from the root file system, which takes unrooted paths.
		e.AddRip(strings.TrimPrefix(filepath.ToSlash(abs), "/"))
	}

	res, err := e.Start()
	if err != nil {
		log.Fatal(err)
	}
	for _, rip := range res.Skipped {
		log.Printf("Warning: skipped %s", rip)
	}
	log.Printf("Extracted %d tiles into %d sheets", res.Tiles, len(res.Sheets))

	if *sheetsConfig == "" {
		return
	}
	if err := writeSheetsConfig(store, *sheetsConfig, *tw, *th, res.Sheets); err != nil {
		log.Fatal(err)
	}
}

func writeSheetsConfig(store storage.Storage, name string, tw, th int, sheets []string) (err error) {
	w, err := store.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return tilemap.WriteSheetsConfig(w, tilemap.SheetsConfig{
		TileWidth:  tw,
		TileHeight: th,
		Files:      sheets,
	})
}
