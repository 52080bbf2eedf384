package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"sanctionsfeed/internal/config"
	"sanctionsfeed/internal/models"
	"sanctionsfeed/internal/pipeline"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	output := flag.String("output", "", "Artifact output path (overrides config)")
	verify := flag.Bool("verify", false, "Verify an existing artifact without downloading")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *output != "" {
		cfg.Artifact.Path = *output
	}

	if *verify {
		os.Exit(runVerify(cfg.Artifact.Path))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Println("Starting OFAC sanctions list update...")

	result, err := pipeline.Run(ctx, cfg)
	if err != nil {
		log.Fatalf("Update failed: %v", err)
	}

	printSummary(result)

	if result.Degraded {
		log.Println("Update completed with degraded entity attribution (entity list was unavailable)")
	} else {
		log.Println("Update completed successfully")
	}
}

// runVerify reports the metadata of a previously produced artifact without
// re-deriving anything.
func runVerify(path string) int {
	artifact, err := pipeline.ReadArtifact(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Verification failed: %v\n", err)
		return 1
	}

	meta := artifact.Metadata
	fmt.Printf("File:            %s\n", path)
	fmt.Printf("Source:          %s\n", meta.Source)
	fmt.Printf("Generated:       %s\n", meta.GeneratedAt)
	fmt.Printf("Total addresses: %d\n", meta.TotalAddresses)
	fmt.Printf("Currencies:      %s\n", strings.Join(meta.Currencies, ", "))
	return 0
}

func printSummary(result *pipeline.Result) {
	meta := result.Artifact.Metadata

	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("OFAC Update Summary")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Total addresses:   %d\n", meta.TotalAddresses)
	fmt.Printf("Unique currencies: %d\n", len(meta.Currencies))
	fmt.Printf("Currencies:        %s\n", strings.Join(meta.Currencies, ", "))
	fmt.Printf("Rejected:          %d\n", result.Rejected)
	fmt.Printf("Duplicates:        %d\n", result.Duplicates)
	fmt.Printf("Checksum (SHA-256): %s\n", result.Checksum)
	fmt.Println()

	fmt.Println("Top 10 entities by address count:")
	for _, e := range topEntities(result.Artifact.Addresses, 10) {
		fmt.Printf("  %3d  %s\n", e.count, e.name)
	}
	fmt.Println(strings.Repeat("=", 60))
}

type entityCount struct {
	name  string
	count int
}

func topEntities(addresses []models.SanctionedAddress, n int) []entityCount {
	counts := make(map[string]int)
	for _, addr := range addresses {
		counts[addr.EntityName]++
	}

	out := make([]entityCount, 0, len(counts))
	for name, count := range counts {
		out = append(out, entityCount{name: name, count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].name < out[j].name
	})

	if len(out) > n {
		out = out[:n]
	}
	return out
}
