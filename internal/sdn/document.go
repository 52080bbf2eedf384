package sdn

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// FeatureType is a declared identifier kind from the reference value sets.
// Only a small fraction of these declare digital-currency address types.
type FeatureType struct {
	ID    string
	Label string
}

// Party is one DistinctParty record. Name parts are the first occurrence of
// each element anywhere under the party, mirroring the source's loose nesting.
type Party struct {
	FixedRef   string
	GivenName  string
	Surname    string
	OrgName    string
	HasProfile bool
}

// Feature is one identifying-attribute record attached to a party by
// identifier reference, not by position.
type Feature struct {
	TypeID      string
	Value       string
	IdentityRef string
}

// Document holds the three record collections of an advanced SDN document,
// each in document order. Cross-references between them are resolved later.
type Document struct {
	FeatureTypes []FeatureType
	Parties      []Party
	Features     []Feature
}

// ParseDocument streams an advanced SDN XML document and collects the three
// record kinds by local element name, ignoring namespaces and nesting depth.
// Any token-level error is a document defect and fatal to the caller's run.
func ParseDocument(r io.Reader) (*Document, error) {
	dec := xml.NewDecoder(r)
	doc := &Document{}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("malformed SDN document: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch start.Name.Local {
		case "FeatureType":
			ft, err := parseFeatureType(dec, start)
			if err != nil {
				return nil, fmt.Errorf("malformed SDN document: %w", err)
			}
			doc.FeatureTypes = append(doc.FeatureTypes, ft)
		case "DistinctParty":
			p, nested, err := parseParty(dec, start)
			if err != nil {
				return nil, fmt.Errorf("malformed SDN document: %w", err)
			}
			doc.Parties = append(doc.Parties, p)
			doc.Features = append(doc.Features, nested...)
		case "Feature":
			f, err := parseFeature(dec, start)
			if err != nil {
				return nil, fmt.Errorf("malformed SDN document: %w", err)
			}
			doc.Features = append(doc.Features, f)
		}
	}

	return doc, nil
}

func attrValue(start xml.StartElement, name string) string {
	for _, a := range start.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

func parseFeatureType(dec *xml.Decoder, start xml.StartElement) (FeatureType, error) {
	ft := FeatureType{ID: attrValue(start, "ID")}

	var label strings.Builder
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return ft, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		case xml.CharData:
			if depth == 1 {
				label.Write(t)
			}
		}
	}

	ft.Label = label.String()
	return ft, nil
}

// parseParty consumes a DistinctParty subtree. Feature records nest inside
// party profiles in published documents, so they are collected here and
// returned alongside the party.
func parseParty(dec *xml.Decoder, start xml.StartElement) (Party, []Feature, error) {
	p := Party{FixedRef: attrValue(start, "FixedRef")}

	var nested []Feature
	depth := 1
	var field string
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return p, nested, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "Feature" {
				// parseFeature consumes through the matching end element
				f, err := parseFeature(dec, t)
				if err != nil {
					return p, nested, err
				}
				nested = append(nested, f)
				continue
			}
			depth++
			switch t.Name.Local {
			case "Profile":
				p.HasProfile = true
			case "GivenName", "Surname", "OrganisationName":
				field = t.Name.Local
			}
		case xml.EndElement:
			depth--
			field = ""
		case xml.CharData:
			// first occurrence wins, as the source repeats name parts
			// across alias records
			text := strings.TrimSpace(string(t))
			if text == "" {
				break
			}
			switch field {
			case "GivenName":
				if p.GivenName == "" {
					p.GivenName = text
				}
			case "Surname":
				if p.Surname == "" {
					p.Surname = text
				}
			case "OrganisationName":
				if p.OrgName == "" {
					p.OrgName = text
				}
			}
		}
	}

	return p, nested, nil
}

func parseFeature(dec *xml.Decoder, start xml.StartElement) (Feature, error) {
	f := Feature{TypeID: attrValue(start, "FeatureTypeID")}

	depth := 1
	inDetail := false
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return f, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "VersionDetail":
				inDetail = true
			case "IdentityReference":
				if f.IdentityRef == "" {
					f.IdentityRef = attrValue(t, "IdentityID")
				}
			}
		case xml.EndElement:
			depth--
			inDetail = false
		case xml.CharData:
			if inDetail && f.Value == "" {
				text := strings.TrimSpace(string(t))
				if text != "" {
					f.Value = text
				}
			}
		}
	}

	return f, nil
}
