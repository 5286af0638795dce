// Command locator-seed loads a YAML dataset into the Meilisearch index the locator reads.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"locator/internal/backend"
	"locator/internal/config"
)

func main() {
	var configPath, datasetPath, filterable string
	flag.StringVar(&configPath, "config", "", "Path to a config file (default: user config dir)")
	flag.StringVar(&datasetPath, "dataset", "", "YAML dataset to index (default: backend.dataset_path)")
	flag.StringVar(&filterable, "filterable", "", "Extra comma-separated fields to make filterable")
	flag.Parse()

	if err := godotenv.Load(".env.local"); err != nil && !os.IsNotExist(err) {
		log.Printf("Error reading .env.local: %v", err)
	}

	configSvc := config.NewConfigService()
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = configSvc.LoadFromPath(configPath)
	} else {
		cfg, err = configSvc.Load()
	}
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	if datasetPath == "" {
		datasetPath = cfg.Backend.DatasetPath
	}
	ds, err := backend.LoadDataset(datasetPath)
	if err != nil {
		fmt.Printf("Error loading dataset: %v\n", err)
		os.Exit(1)
	}

	var extra []string
	for _, f := range strings.Split(filterable, ",") {
		if f = strings.TrimSpace(f); f != "" {
			extra = append(extra, f)
		}
	}

	m := backend.NewMeili(cfg.Backend.MeiliURL, cfg.Backend.MeiliKey, cfg.Backend.Index)
	if err := m.ConfigureIndex(extra); err != nil {
		fmt.Printf("Error configuring index %s: %v\n", cfg.Backend.Index, err)
		os.Exit(1)
	}
	if err := m.IndexLocations(ds.Locations); err != nil {
		fmt.Printf("Error indexing locations: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Indexed %d locations from %s into %s\n", len(ds.Locations), datasetPath, cfg.Backend.Index)
}
