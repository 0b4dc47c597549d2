package adzuna

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"
)

// Posting is one job advert as the API returns it. Only the fields the triage
// pipeline needs are mapped; everything else in an item is ignored.
type Posting struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Created      string   `json:"created"`
	RedirectURL  string   `json:"redirect_url"`
	AdRef        string   `json:"adref"`
	ContractType string   `json:"contract_type"`
	Company      Company  `json:"company"`
	Location     Location `json:"location"`
}

type Company struct {
	DisplayName string `json:"display_name"`
}

type Location struct {
	DisplayName string   `json:"display_name"`
	Area        []string `json:"area"`
}

// URL returns the stable link for the posting, falling back to the ad
// reference when no redirect link is present.
func (p *Posting) URL() string {
	if p.RedirectURL != "" {
		return p.RedirectURL
	}
	return p.AdRef
}

// City extracts a city name from the location. Display names come in shapes
// like "Paris, Ile-de-France" or "Lyon - Rhone"; the first segment is the
// most specific one. The area list is ordered country-first, so its last
// element is the fallback.
func (p *Posting) City() string {
	display := strings.TrimSpace(p.Location.DisplayName)
	for _, sep := range []string{",", " - "} {
		if idx := strings.Index(display, sep); idx >= 0 {
			return strings.TrimSpace(display[:idx])
		}
	}
	if display != "" {
		return display
	}
	if n := len(p.Location.Area); n > 0 {
		return strings.TrimSpace(p.Location.Area[n-1])
	}
	return ""
}

// JobID derives a stable identifier from the posting's origin and link, so
// re-running ingestion never duplicates a row.
func JobID(source, url string) string {
	sum := sha1.Sum([]byte(source + "|" + url))
	return hex.EncodeToString(sum[:])
}
