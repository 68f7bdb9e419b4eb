// Package datasets decodes the two input datasets: the voting record and
// the contact directory. Both are JSON objects keyed by member name, and the
// key order of those objects is significant, so decoding preserves it.
// YAML documents with the same shape are accepted too.
package datasets

import (
	"bytes"
	"encoding/json"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/hemicycle/pkg/errors"
)

// Bill is one entry of the bill catalog.
type Bill struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	Date  string `json:"date,omitempty" yaml:"date,omitempty"`
}

// VotingEntry is one name of the voting dataset with its vote texts keyed by
// bill id. Party and Province are what the voting source recorded, which may
// be stale; the contact directory is authoritative for both.
type VotingEntry struct {
	Name     string            `json:"name" yaml:"name"`
	Party    string            `json:"party,omitempty" yaml:"party,omitempty"`
	Province string            `json:"province,omitempty" yaml:"province,omitempty"`
	Votes    map[string]string `json:"votes" yaml:"votes"`
}

// Voting is the decoded voting dataset.
type Voting struct {
	Entries     []VotingEntry
	Bills       []Bill
	LastUpdated string

	billIndex map[string]int
}

// NewVoting builds a Voting from already decoded parts. A bill id that
// appears twice keeps its first position and its last content.
func NewVoting(entries []VotingEntry, bills []Bill, lastUpdated string) *Voting {
	v := &Voting{
		Entries:     entries,
		LastUpdated: lastUpdated,
		billIndex:   make(map[string]int, len(bills)),
	}
	for _, b := range bills {
		if i, ok := v.billIndex[b.ID]; ok {
			v.Bills[i] = b
			continue
		}
		v.billIndex[b.ID] = len(v.Bills)
		v.Bills = append(v.Bills, b)
	}
	return v
}

// Bill looks up a catalog entry.
func (v *Voting) Bill(id string) (Bill, bool) {
	if v == nil {
		return Bill{}, false
	}
	i, ok := v.billIndex[id]
	if !ok {
		return Bill{}, false
	}
	return v.Bills[i], true
}

// HasBill reports whether id is in the catalog.
func (v *Voting) HasBill(id string) bool {
	_, ok := v.Bill(id)
	return ok
}

// Names returns the entry names in dataset order.
func (v *Voting) Names() []string {
	names := make([]string, len(v.Entries))
	for i, e := range v.Entries {
		names[i] = e.Name
	}
	return names
}

// Contact is one entry of the contact directory. Name is the directory key
// and the authoritative member name.
type Contact struct {
	Name        string   `json:"name" yaml:"name"`
	DisplayName string   `json:"display_name,omitempty" yaml:"display_name,omitempty"`
	Party       string   `json:"party" yaml:"party"`
	Province    string   `json:"province" yaml:"province"`
	Email       string   `json:"email,omitempty" yaml:"email,omitempty"`
	Telephones  []string `json:"telephones,omitempty" yaml:"telephones,omitempty"`
	Faxes       []string `json:"faxes,omitempty" yaml:"faxes,omitempty"`
	Address     string   `json:"address,omitempty" yaml:"address,omitempty"`
	ImageURL    string   `json:"image_url,omitempty" yaml:"image_url,omitempty"`
}

// Contacts is the decoded contact directory in dataset order.
type Contacts struct {
	Entries []Contact
}

// Names returns the directory keys in dataset order.
func (c *Contacts) Names() []string {
	names := make([]string, len(c.Entries))
	for i, e := range c.Entries {
		names[i] = e.Name
	}
	return names
}

type votingDocument struct {
	MPs         Object          `json:"mps"`
	Bills       Object          `json:"bills"`
	LastUpdated json.RawMessage `json:"last_updated"`
}

type votingRecord struct {
	Party    string  `json:"party"`
	Province string  `json:"province"`
	Votes    textMap `json:"votes"`
}

type billRecord struct {
	Title json.RawMessage `json:"title"`
	Date  json.RawMessage `json:"date"`
}

type contactRecord struct {
	Name       string     `json:"name"`
	Party      string     `json:"party"`
	Province   string     `json:"province"`
	Email      string     `json:"email"`
	Telephones stringList `json:"telephones"`
	Faxes      stringList `json:"faxes"`
	Address    string     `json:"address"`
	ImageURL   string     `json:"image_url"`
}

// DecodeVoting parses a voting dataset.
func DecodeVoting(data []byte) (*Voting, error) {
	data, err := normalize(data)
	if err != nil {
		return nil, err
	}

	var doc votingDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.WrapParse("json", "voting", err)
	}

	entries := make([]VotingEntry, 0, len(doc.MPs))
	for _, f := range doc.MPs {
		var rec votingRecord
		if err := json.Unmarshal(f.Value, &rec); err != nil {
			return nil, errors.NewParseError("json", "voting", "entry "+f.Key+": "+err.Error(), err)
		}
		votes := map[string]string(rec.Votes)
		if votes == nil {
			votes = map[string]string{}
		}
		entries = append(entries, VotingEntry{
			Name:     f.Key,
			Party:    rec.Party,
			Province: rec.Province,
			Votes:    votes,
		})
	}

	bills := make([]Bill, 0, len(doc.Bills))
	for _, f := range doc.Bills {
		var rec billRecord
		if err := json.Unmarshal(f.Value, &rec); err != nil {
			return nil, errors.NewParseError("json", "voting", "bill "+f.Key+": "+err.Error(), err)
		}
		bills = append(bills, Bill{ID: f.Key, Title: text(rec.Title), Date: text(rec.Date)})
	}

	return NewVoting(entries, bills, text(doc.LastUpdated)), nil
}

// DecodeContacts parses a contact directory.
func DecodeContacts(data []byte) (*Contacts, error) {
	data, err := normalize(data)
	if err != nil {
		return nil, err
	}

	var doc Object
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.WrapParse("json", "contacts", err)
	}

	entries := make([]Contact, 0, len(doc))
	for _, f := range doc {
		var rec contactRecord
		if err := json.Unmarshal(f.Value, &rec); err != nil {
			return nil, errors.NewParseError("json", "contacts", "entry "+f.Key+": "+err.Error(), err)
		}
		entries = append(entries, Contact{
			Name:        f.Key,
			DisplayName: rec.Name,
			Party:       rec.Party,
			Province:    rec.Province,
			Email:       rec.Email,
			Telephones:  []string(rec.Telephones),
			Faxes:       []string(rec.Faxes),
			Address:     rec.Address,
			ImageURL:    rec.ImageURL,
		})
	}
	return &Contacts{Entries: entries}, nil
}

// normalize returns JSON bytes for data. JSON input passes through; anything
// else is treated as YAML and converted with key order intact.
func normalize(data []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf")))
	if len(trimmed) == 0 {
		return nil, errors.NewParseError("json", "", "empty document", nil)
	}
	if trimmed[0] == '{' {
		return trimmed, nil
	}
	converted, err := yaml.YAMLToJSON(trimmed)
	if err != nil {
		return nil, errors.WrapParse("yaml", "", err)
	}
	return converted, nil
}
