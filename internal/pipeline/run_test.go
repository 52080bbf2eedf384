package pipeline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sanctionsfeed/internal/config"
)

const testAdvancedXML = `<?xml version="1.0" encoding="utf-8"?>
<Sanctions>
  <FeatureType ID="1">Digital Currency Address - XBT</FeatureType>
  <FeatureType ID="2">Digital Currency Address - ETH</FeatureType>
  <FeatureType ID="3">Phone Number</FeatureType>
  <DistinctParty FixedRef="100">
    <Profile><OrganisationName>Garantex</OrganisationName></Profile>
  </DistinctParty>
  <Feature FeatureTypeID="1">
    <VersionDetail>1BvBMSEYstWetqTFn5Au4m4GFg7xJaNVN2</VersionDetail>
    <IdentityReference IdentityID="100"/>
  </Feature>
  <Feature FeatureTypeID="2">
    <VersionDetail>0x7F367cC41522cE07553e823bf3be79A889DEbe1B</VersionDetail>
    <IdentityReference IdentityID="500"/>
  </Feature>
  <Feature FeatureTypeID="2">
    <VersionDetail>0x7F367CC41522CE07553E823BF3BE79A889DEBE1B</VersionDetail>
    <IdentityReference IdentityID="100"/>
  </Feature>
  <Feature FeatureTypeID="3">
    <VersionDetail>+1 555 0100</VersionDetail>
  </Feature>
</Sanctions>`

const testEntityCSV = `500,"HYDRA MARKET","-0-"` + "\n"

func testConfig(t *testing.T, advancedURL, entityURL string) *config.Config {
	t.Helper()
	return &config.Config{
		Sources: config.SourcesConfig{
			AdvancedListURL: advancedURL,
			EntityListURL:   entityURL,
			TimeoutSeconds:  5,
			Retries:         0,
		},
		Artifact: config.ArtifactConfig{
			Path: filepath.Join(t.TempDir(), "ofac_addresses.json"),
		},
	}
}

func TestRun(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/sdn_advanced.xml":
			w.Write([]byte(testAdvancedXML))
		case "/sdn.csv":
			w.Write([]byte(testEntityCSV))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	cfg := testConfig(t, srv.URL+"/sdn_advanced.xml", srv.URL+"/sdn.csv")

	result, err := Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.False(t, result.Degraded)

	artifact := result.Artifact
	require.Len(t, artifact.Addresses, 2)
	assert.Equal(t, 1, result.Duplicates)
	assert.Equal(t, 0, result.Rejected)

	assert.Equal(t, "1bvbmseystwetqtfn5au4m4gfg7xjanvn2", artifact.Addresses[0].Address)
	assert.Equal(t, "Garantex", artifact.Addresses[0].EntityName)

	// identity ref 500 is not in the XML party records but resolves via
	// the flat entity table; the duplicate keeps this first attribution
	assert.Equal(t, "0x7f367cc41522ce07553e823bf3be79a889debe1b", artifact.Addresses[1].Address)
	assert.Equal(t, "HYDRA MARKET", artifact.Addresses[1].EntityName)

	assert.Equal(t, []string{"bitcoin", "ethereum"}, artifact.Metadata.Currencies)
	assert.Equal(t, 2, artifact.Metadata.TotalAddresses)

	// artifact on disk matches the returned one
	onDisk, err := ReadArtifact(cfg.Artifact.Path)
	require.NoError(t, err)
	assert.Equal(t, artifact, onDisk)
}

func TestRunIdempotent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/sdn.csv" {
			w.Write([]byte(testEntityCSV))
			return
		}
		w.Write([]byte(testAdvancedXML))
	}))
	defer srv.Close()

	cfg := testConfig(t, srv.URL+"/sdn_advanced.xml", srv.URL+"/sdn.csv")

	first, err := Run(context.Background(), cfg)
	require.NoError(t, err)
	second, err := Run(context.Background(), cfg)
	require.NoError(t, err)

	// identical except for the generation timestamp
	firstMeta, secondMeta := first.Artifact.Metadata, second.Artifact.Metadata
	firstMeta.GeneratedAt, secondMeta.GeneratedAt = "", ""
	assert.Equal(t, firstMeta, secondMeta)
	assert.Equal(t, first.Artifact.Addresses, second.Artifact.Addresses)
}

func TestRunDegradedEntitySource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/sdn.csv" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(testAdvancedXML))
	}))
	defer srv.Close()

	cfg := testConfig(t, srv.URL+"/sdn_advanced.xml", srv.URL+"/sdn.csv")

	result, err := Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.True(t, result.Degraded)

	// without the flat table, the unmapped reference gets a synthesized name
	require.Len(t, result.Artifact.Addresses, 2)
	assert.Equal(t, "Entity 500", result.Artifact.Addresses[1].EntityName)
}

func TestRunAdvancedSourceFailureIsFatal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/sdn.csv" {
			w.Write([]byte(testEntityCSV))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	cfg := testConfig(t, srv.URL+"/sdn_advanced.xml", srv.URL+"/sdn.csv")

	_, err := Run(context.Background(), cfg)
	require.Error(t, err)
	assert.NoFileExists(t, cfg.Artifact.Path)
}

func TestRunMalformedDocumentIsFatal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/sdn.csv" {
			w.Write([]byte(testEntityCSV))
			return
		}
		w.Write([]byte("<Sanctions><Feature></Sanctions>"))
	}))
	defer srv.Close()

	cfg := testConfig(t, srv.URL+"/sdn_advanced.xml", srv.URL+"/sdn.csv")

	_, err := Run(context.Background(), cfg)
	require.Error(t, err)
	assert.NoFileExists(t, cfg.Artifact.Path)
}

func TestRunEmptyResultFailsAndPreservesPreviousArtifact(t *testing.T) {
	// every feature in this document fails validation
	invalidXML := `<Sanctions>
  <FeatureType ID="1">Digital Currency Address - ETH</FeatureType>
  <Feature FeatureTypeID="1"><VersionDetail>0xdeadbeef</VersionDetail></Feature>
</Sanctions>`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/sdn.csv" {
			w.Write([]byte(testEntityCSV))
			return
		}
		w.Write([]byte(invalidXML))
	}))
	defer srv.Close()

	cfg := testConfig(t, srv.URL+"/sdn_advanced.xml", srv.URL+"/sdn.csv")

	previous := []byte(`{"metadata":{},"addresses":[]}`)
	require.NoError(t, os.WriteFile(cfg.Artifact.Path, previous, 0o644))

	_, err := Run(context.Background(), cfg)
	assert.ErrorIs(t, err, ErrEmptyCollection)

	// the previous artifact is left untouched
	data, err := os.ReadFile(cfg.Artifact.Path)
	require.NoError(t, err)
	assert.Equal(t, previous, data)
}
