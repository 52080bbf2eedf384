package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"sanctionsfeed/internal/config"
	"sanctionsfeed/internal/fetch"
	"sanctionsfeed/internal/models"
	"sanctionsfeed/internal/sdn"
)

// Result summarizes a completed update run.
type Result struct {
	Artifact   *models.Artifact
	Checksum   string
	Degraded   bool
	Rejected   int
	Duplicates int
}

// Run executes the full update: fetch both sources, resolve the record graph,
// validate and deduplicate, build the artifact and write it to disk. Failure
// of the flat entity source degrades the run; failure of the advanced
// document, or an empty result, aborts it with no artifact written.
func Run(ctx context.Context, cfg *config.Config) (*Result, error) {
	client := fetch.NewClient(cfg.Sources.Timeout(), cfg.Sources.Retries)

	// The two sources are independent; fetch them concurrently. Only the
	// advanced document is required.
	var entityData, advancedData []byte
	degraded := false

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		data, err := client.Download(gctx, cfg.Sources.EntityListURL)
		if err != nil {
			log.Printf("[pipeline] warning: entity list unavailable, names will be synthesized: %v", err)
			degraded = true
			return nil
		}
		entityData = data
		return nil
	})
	g.Go(func() error {
		data, err := client.Download(gctx, cfg.Sources.AdvancedListURL)
		if err != nil {
			return fmt.Errorf("fetch advanced SDN document: %w", err)
		}
		advancedData = data
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	directory := sdn.Directory{}
	if entityData != nil {
		dir, err := sdn.ParseEntityList(bytes.NewReader(entityData))
		if err != nil {
			log.Printf("[pipeline] warning: entity list truncated: %v", err)
			degraded = true
		}
		directory = dir
		log.Printf("[pipeline] cached %d entity names", len(directory))
	}

	doc, err := sdn.ParseDocument(bytes.NewReader(advancedData))
	if err != nil {
		return nil, err
	}

	candidates := sdn.Resolve(doc, directory)
	log.Printf("[pipeline] resolved %d candidate addresses", len(candidates))

	col := Collect(candidates)
	artifact, err := BuildArtifact(col, cfg.Sources.AdvancedListURL, time.Now())
	if err != nil {
		return nil, err
	}

	checksum, err := WriteArtifact(artifact, cfg.Artifact.Path)
	if err != nil {
		return nil, err
	}
	log.Printf("[pipeline] wrote %d addresses to %s (sha256 %s)",
		len(artifact.Addresses), cfg.Artifact.Path, checksum)

	return &Result{
		Artifact:   artifact,
		Checksum:   checksum,
		Degraded:   degraded,
		Rejected:   col.Rejected,
		Duplicates: col.Duplicates,
	}, nil
}
