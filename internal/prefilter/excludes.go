package prefilter

import (
	"encoding/json"
	"os"
	"time"

	"github.com/mkaddani/job-hunter/internal/scoring"
)

// Excludes is a persistent blocklist of companies and job urls that should
// never reach the sheet again, for example agencies reposting the same ads.
type Excludes struct {
	Items []*Exclude
}

type Exclude struct {
	Company    string    `json:"company,omitempty"`
	URL        string    `json:"url,omitempty"`
	ExcludedAt time.Time `json:"excluded_at,omitempty"`
}

// GetExcludesFromFile loads the blocklist. An empty file yields an empty
// blocklist, so the file can be touched in advance.
func GetExcludesFromFile(path string) (*Excludes, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Size() == 0 {
		return &Excludes{}, nil
	}

	var excludes Excludes
	if err := json.NewDecoder(file).Decode(&excludes); err != nil {
		return nil, err
	}
	return &excludes, nil
}

func (e *Excludes) Append(other *Excludes) {
	e.Items = append(e.Items, other.Items...)
}

func (e *Excludes) ToFile(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}

// AppendToFile adds the given entries to the blocklist at path, creating the
// file when it does not exist yet.
func AppendToFile(path string, items []*Exclude) error {
	if len(items) == 0 {
		return nil
	}

	excludes, err := GetExcludesFromFile(path)
	if os.IsNotExist(err) {
		excludes = &Excludes{}
	} else if err != nil {
		return err
	}

	excludes.Append(&Excludes{Items: items})
	return excludes.ToFile(path)
}

// Matches reports whether a posting from the given company or url is on the
// blocklist. Company comparison ignores case and surrounding whitespace.
func (e *Excludes) Matches(company, url string) bool {
	if e == nil {
		return false
	}
	company = scoring.NormalizeText(company)
	for _, item := range e.Items {
		if item.URL != "" && item.URL == url {
			return true
		}
		if item.Company != "" && scoring.NormalizeText(item.Company) == company && company != "" {
			return true
		}
	}
	return false
}
