package pipeline

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"sanctionsfeed/internal/models"
)

// SourceName identifies the list in artifact metadata.
const SourceName = "OFAC Specially Designated Nationals (SDN) List"

// ErrEmptyCollection signals a run that resolved zero valid addresses. An
// empty list would silently disable downstream compliance checks, so it is a
// failure rather than a boring success.
var ErrEmptyCollection = errors.New("no valid addresses resolved")

// BuildArtifact assembles the versioned output document. Addresses keep
// resolution order; the currency set is sorted for deterministic diffs.
func BuildArtifact(col *Collection, sourceURL string, now time.Time) (*models.Artifact, error) {
	if len(col.Addresses) == 0 {
		return nil, ErrEmptyCollection
	}

	currencies := make([]string, 0, len(col.Chains))
	for chain := range col.Chains {
		currencies = append(currencies, chain)
	}
	sort.Strings(currencies)

	return &models.Artifact{
		Metadata: models.Metadata{
			Source:         SourceName,
			SourceURL:      sourceURL,
			GeneratedAt:    now.UTC().Format(time.RFC3339),
			TotalAddresses: len(col.Addresses),
			Currencies:     currencies,
		},
		Addresses: col.Addresses,
	}, nil
}

// WriteArtifact persists the artifact as pretty-printed JSON and returns its
// SHA-256 checksum. The file is written to a temp name and renamed so a failed
// run never clobbers the previous artifact.
func WriteArtifact(artifact *models.Artifact, path string) (string, error) {
	data, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal artifact: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create artifact directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".artifact-*")
	if err != nil {
		return "", fmt.Errorf("create temp artifact: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("write artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("close artifact: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("replace artifact: %w", err)
	}

	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// ReadArtifact loads a previously written artifact, for verification and for
// the screening service.
func ReadArtifact(path string) (*models.Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}

	var artifact models.Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("parse artifact: %w", err)
	}
	return &artifact, nil
}
