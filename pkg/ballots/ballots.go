// Package ballots interprets the free-text vote strings of the voting
// dataset. Classify is the single place where a vote string becomes an
// Outcome; merge-time, statistics and display all call it.
package ballots

import (
	"strings"

	"github.com/agentstation/hemicycle/pkg/errors"
	"github.com/agentstation/hemicycle/pkg/textnorm"
)

// Outcome is the classified result of one member's vote on one bill.
type Outcome int

// Outcomes. Absent is the zero value.
const (
	Absent Outcome = iota
	Accept
	Reject
	Abstain
)

// Stems in search-key form.
const (
	stemAccept  = "kabul"
	stemReject  = "ret"
	stemRejectD = "red"
	stemAbstain = "cekimser"
)

// Classify maps raw vote text onto an Outcome. Text matching none of the
// known stems, including the empty string, is Absent.
func Classify(raw string) Outcome {
	key := textnorm.Key(raw)
	switch {
	case key == "":
		return Absent
	case strings.Contains(key, stemAccept):
		return Accept
	case strings.Contains(key, stemReject), strings.Contains(key, stemRejectD):
		return Reject
	case strings.Contains(key, stemAbstain):
		return Abstain
	default:
		return Absent
	}
}

// Cast reports whether o is a recorded decision rather than an absence.
func (o Outcome) Cast() bool {
	return o != Absent
}

// String returns the lower-case English name of o.
func (o Outcome) String() string {
	switch o {
	case Accept:
		return "accept"
	case Reject:
		return "reject"
	case Abstain:
		return "abstain"
	default:
		return "absent"
	}
}

// Label returns the Turkish display label of o.
func (o Outcome) Label() string {
	switch o {
	case Accept:
		return "Kabul"
	case Reject:
		return "Ret"
	case Abstain:
		return "Çekimser"
	default:
		return "Katılmadı"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler for the names written
// by MarshalText.
func (o *Outcome) UnmarshalText(text []byte) error {
	switch string(text) {
	case "accept":
		*o = Accept
	case "reject":
		*o = Reject
	case "abstain":
		*o = Abstain
	case "absent", "":
		*o = Absent
	default:
		return errors.NewValidationError("outcome", string(text), "unknown outcome")
	}
	return nil
}

// Priority ranks outcomes for majority tie-breaks: Accept, then Reject,
// then Abstain. Absent never wins.
func (o Outcome) Priority() int {
	switch o {
	case Accept:
		return 3
	case Reject:
		return 2
	case Abstain:
		return 1
	default:
		return 0
	}
}

// CastOutcomes lists the outcomes that count as a vote, in tie-break order.
var CastOutcomes = []Outcome{Accept, Reject, Abstain}
