package sdn

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDocument = `<?xml version="1.0" encoding="utf-8"?>
<Sanctions xmlns="https://sanctionslistservice.ofac.treas.gov/api/PublicationPreview/exports/ADVANCED_XML">
  <ReferenceValueSets>
    <FeatureTypeValues>
      <FeatureType ID="1">Digital Currency Address - XBT</FeatureType>
      <FeatureType ID="2">Digital Currency Address - ETH</FeatureType>
      <FeatureType ID="3">Digital Currency Address - ZZZ</FeatureType>
      <FeatureType ID="4">Phone Number</FeatureType>
      <FeatureType ID="5">Tax ID No.</FeatureType>
    </FeatureTypeValues>
  </ReferenceValueSets>
  <DistinctParties>
    <DistinctParty FixedRef="100">
      <Profile>
        <Identity>
          <NamePart><GivenName>Ivan</GivenName></NamePart>
          <NamePart><Surname>Petrov</Surname></NamePart>
        </Identity>
      </Profile>
    </DistinctParty>
    <DistinctParty FixedRef="200">
      <Profile>
        <Identity>
          <NamePart><OrganisationName>Lazarus Group</OrganisationName></NamePart>
        </Identity>
      </Profile>
    </DistinctParty>
    <DistinctParty FixedRef="300">
      <Profile>
        <Identity></Identity>
      </Profile>
    </DistinctParty>
  </DistinctParties>
  <Distillates>
    <Feature FeatureTypeID="1">
      <FeatureVersion>
        <VersionDetail>1BvBMSEYstWetqTFn5Au4m4GFg7xJaNVN2</VersionDetail>
      </FeatureVersion>
      <IdentityReference IdentityID="100"/>
    </Feature>
    <Feature FeatureTypeID="2">
      <FeatureVersion>
        <VersionDetail>0x7F367cC41522cE07553e823bf3be79A889DEbe1B</VersionDetail>
      </FeatureVersion>
      <IdentityReference IdentityID="200"/>
    </Feature>
    <Feature FeatureTypeID="4">
      <FeatureVersion>
        <VersionDetail>+1 555 0100</VersionDetail>
      </FeatureVersion>
      <IdentityReference IdentityID="100"/>
    </Feature>
    <Feature FeatureTypeID="3">
      <FeatureVersion>
        <VersionDetail>zzzaddress0123456789</VersionDetail>
      </FeatureVersion>
    </Feature>
  </Distillates>
</Sanctions>`

func TestParseDocument(t *testing.T) {
	doc, err := ParseDocument(strings.NewReader(sampleDocument))
	require.NoError(t, err)

	require.Len(t, doc.FeatureTypes, 5)
	assert.Equal(t, "1", doc.FeatureTypes[0].ID)
	assert.Equal(t, "Digital Currency Address - XBT", doc.FeatureTypes[0].Label)
	assert.Equal(t, "Phone Number", doc.FeatureTypes[3].Label)

	require.Len(t, doc.Parties, 3)
	assert.Equal(t, "100", doc.Parties[0].FixedRef)
	assert.Equal(t, "Ivan", doc.Parties[0].GivenName)
	assert.Equal(t, "Petrov", doc.Parties[0].Surname)
	assert.True(t, doc.Parties[0].HasProfile)
	assert.Equal(t, "Lazarus Group", doc.Parties[1].OrgName)
	assert.Empty(t, doc.Parties[2].GivenName)
	assert.Empty(t, doc.Parties[2].OrgName)

	require.Len(t, doc.Features, 4)
	assert.Equal(t, "1", doc.Features[0].TypeID)
	assert.Equal(t, "1BvBMSEYstWetqTFn5Au4m4GFg7xJaNVN2", doc.Features[0].Value)
	assert.Equal(t, "100", doc.Features[0].IdentityRef)
	assert.Empty(t, doc.Features[3].IdentityRef)
}

func TestParseDocumentMalformed(t *testing.T) {
	_, err := ParseDocument(strings.NewReader("<Sanctions><Feature></Sanctions>"))
	assert.Error(t, err)

	_, err = ParseDocument(strings.NewReader("not xml at all <<<"))
	assert.Error(t, err)
}

func TestParseDocumentNestedFeatures(t *testing.T) {
	// published documents nest Feature records inside the party profile
	doc, err := ParseDocument(strings.NewReader(`
<Sanctions>
  <FeatureType ID="1">Digital Currency Address - XBT</FeatureType>
  <DistinctParty FixedRef="100">
    <Profile>
      <OrganisationName>Chatex</OrganisationName>
      <Feature FeatureTypeID="1">
        <VersionDetail>1BvBMSEYstWetqTFn5Au4m4GFg7xJaNVN2</VersionDetail>
        <IdentityReference IdentityID="100"/>
      </Feature>
      <Feature FeatureTypeID="1">
        <VersionDetail>3J98t1WpEZ73CNmQviecrnyiWrnqRhWNLy</VersionDetail>
        <IdentityReference IdentityID="100"/>
      </Feature>
    </Profile>
  </DistinctParty>
</Sanctions>`))
	require.NoError(t, err)

	require.Len(t, doc.Parties, 1)
	assert.Equal(t, "Chatex", doc.Parties[0].OrgName)

	require.Len(t, doc.Features, 2)
	assert.Equal(t, "1BvBMSEYstWetqTFn5Au4m4GFg7xJaNVN2", doc.Features[0].Value)
	assert.Equal(t, "3J98t1WpEZ73CNmQviecrnyiWrnqRhWNLy", doc.Features[1].Value)
	assert.Equal(t, "100", doc.Features[1].IdentityRef)
}

func TestParseDocumentFirstNamePartWins(t *testing.T) {
	doc, err := ParseDocument(strings.NewReader(`
<Sanctions>
  <DistinctParty FixedRef="1">
    <Profile>
      <GivenName>First</GivenName>
      <GivenName>Second</GivenName>
      <Surname>Only</Surname>
    </Profile>
  </DistinctParty>
</Sanctions>`))
	require.NoError(t, err)
	require.Len(t, doc.Parties, 1)
	assert.Equal(t, "First", doc.Parties[0].GivenName)
	assert.Equal(t, "Only", doc.Parties[0].Surname)
}
