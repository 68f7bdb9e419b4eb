// Package members defines the reconciled member record and the read-only
// views derived from it: slugs, flat export records, per-bill vote lines and
// search filters.
package members

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/agentstation/hemicycle/pkg/ballots"
	"github.com/agentstation/hemicycle/pkg/constants"
	"github.com/agentstation/hemicycle/pkg/datasets"
	"github.com/agentstation/hemicycle/pkg/parties"
	"github.com/agentstation/hemicycle/pkg/textnorm"
)

// Contact holds the contact-directory fields of a member. Missing fields are
// empty values.
type Contact struct {
	Email      string   `json:"email,omitempty" yaml:"email,omitempty"`
	Telephones []string `json:"telephones,omitempty" yaml:"telephones,omitempty"`
	Faxes      []string `json:"faxes,omitempty" yaml:"faxes,omitempty"`
	Address    string   `json:"address,omitempty" yaml:"address,omitempty"`
	ImageURL   string   `json:"image_url,omitempty" yaml:"image_url,omitempty"`
}

// Member is one reconciled legislator. Name, Party and Province come from the
// contact directory; Votes is the union of every matching voting entry.
type Member struct {
	Name     string            `json:"name" yaml:"name"`
	Party    string            `json:"party" yaml:"party"`
	Province string            `json:"province" yaml:"province"`
	Class    parties.Class     `json:"class" yaml:"class"`
	Votes    map[string]string `json:"votes" yaml:"votes"`
	Contact  Contact           `json:"contact" yaml:"contact"`
	Aliases  []string          `json:"aliases,omitempty" yaml:"aliases,omitempty"`
}

// FromContact creates a member with no votes from a directory entry.
func FromContact(c datasets.Contact) Member {
	return Member{
		Name:     c.Name,
		Party:    c.Party,
		Province: c.Province,
		Class:    parties.Classify(c.Party),
		Votes:    map[string]string{},
		Contact: Contact{
			Email:      c.Email,
			Telephones: c.Telephones,
			Faxes:      c.Faxes,
			Address:    c.Address,
			ImageURL:   c.ImageURL,
		},
	}
}

// DisplayName is the cleaned member name.
func (m *Member) DisplayName() string {
	return textnorm.Clean(m.Name)
}

// DisplayParty is the cleaned party name.
func (m *Member) DisplayParty() string {
	return textnorm.Clean(m.Party)
}

// DisplayProvince is the cleaned province name.
func (m *Member) DisplayProvince() string {
	return textnorm.Clean(m.Province)
}

// Image returns the portrait URL, falling back to the parliament placeholder.
func (m *Member) Image() string {
	if m.Contact.ImageURL != "" {
		return m.Contact.ImageURL
	}
	return constants.DefaultImageURL
}

// Outcome classifies the member's vote on bill. Bills the member has no
// entry for are Absent.
func (m *Member) Outcome(billID string) ballots.Outcome {
	return ballots.Classify(m.Votes[billID])
}

// Tooltip is the short label shown on a seat: "Name (Party)".
func (m *Member) Tooltip() string {
	return m.DisplayName() + " (" + m.DisplayParty() + ")"
}

// Record is the flat, canonicalized export row of a member.
type Record struct {
	Name     string `json:"name" yaml:"name" csv:"Name"`
	Party    string `json:"party" yaml:"party" csv:"Party"`
	Province string `json:"province" yaml:"province" csv:"Province"`
	Email    string `json:"email" yaml:"email" csv:"Email"`
	Phones   string `json:"phones" yaml:"phones" csv:"Phones"`
	Address  string `json:"address" yaml:"address" csv:"Address"`
}

// RecordHeader is the column order of Record.Values.
var RecordHeader = []string{"Name", "Party", "Province", "Email", "Phones", "Address"}

// Record returns the export row for m. Phones are joined with ", ".
func (m *Member) Record() Record {
	phones := make([]string, 0, len(m.Contact.Telephones))
	for _, p := range m.Contact.Telephones {
		if p = textnorm.Clean(p); p != "" {
			phones = append(phones, p)
		}
	}
	return Record{
		Name:     m.DisplayName(),
		Party:    m.DisplayParty(),
		Province: m.DisplayProvince(),
		Email:    textnorm.Clean(m.Contact.Email),
		Phones:   strings.Join(phones, ", "),
		Address:  textnorm.Clean(m.Contact.Address),
	}
}

// Values returns the record fields in RecordHeader order.
func (r Record) Values() []string {
	return []string{r.Name, r.Party, r.Province, r.Email, r.Phones, r.Address}
}

// VoteLine is one row of a member's voting history.
type VoteLine struct {
	BillID     string          `json:"bill_id" yaml:"bill_id"`
	Title      string          `json:"title" yaml:"title"`
	ShortTitle string          `json:"short_title" yaml:"short_title"`
	Date       string          `json:"date,omitempty" yaml:"date,omitempty"`
	Vote       string          `json:"vote" yaml:"vote"`
	Outcome    ballots.Outcome `json:"outcome" yaml:"outcome"`
	SearchURL  string          `json:"search_url" yaml:"search_url"`
}

// VoteLines lists the member's votes in bill catalog order. Votes on bill
// ids missing from the catalog are skipped.
func (m *Member) VoteLines(voting *datasets.Voting) []VoteLine {
	if voting == nil {
		return nil
	}
	lines := make([]VoteLine, 0, len(m.Votes))
	for _, bill := range voting.Bills {
		raw, ok := m.Votes[bill.ID]
		if !ok {
			continue
		}
		title := textnorm.Clean(bill.Title)
		lines = append(lines, VoteLine{
			BillID:     bill.ID,
			Title:      title,
			ShortTitle: ShortTitle(title),
			Date:       bill.Date,
			Vote:       textnorm.Clean(raw),
			Outcome:    ballots.Classify(raw),
			SearchURL:  BillSearchURL(title),
		})
	}
	return lines
}

// ShortTitle keeps the first constants.ShortTitleLength runes of title and
// appends "...".
func ShortTitle(title string) string {
	if utf8.RuneCountInString(title) <= constants.ShortTitleLength {
		return title + "..."
	}
	runes := []rune(title)
	return string(runes[:constants.ShortTitleLength]) + "..."
}

// BillSearchURL returns a parliament site search for the exact title.
func BillSearchURL(title string) string {
	q := url.Values{}
	q.Set("q", `"`+title+`"`)
	return constants.BillSearchURL + "?" + q.Encode()
}

// OrUnknown returns s, or the "unknown" placeholder when s is empty.
func OrUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return constants.Unknown
	}
	return s
}
