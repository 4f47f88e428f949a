// Package quiz implements a ten-question political-affiliation poll.
// Each answer letter scores one point for a party; the prediction is the
// party with the most points. Tallies accumulate across runs through a
// Store, either flat per-party text files or a SQLite table.
package quiz

import (
	"bufio"
	"fmt"
	"io"
)

// The four tally buckets.
const (
	Democrat    = "Democrat"
	Republican  = "Republican"
	Independent = "Independent"
	Libertarian = "Libertarian"
)

// Parties lists the buckets in tie-break order: when counts are equal
// the earliest name wins, so an all-zero tally predicts Democrat.
var Parties = []string{Democrat, Independent, Libertarian, Republican}

// answerParty maps a response token to the party it scores for. Lookup
// is case-sensitive; anything else scores nowhere.
var answerParty = map[string]string{
	"A": Democrat,
	"B": Republican,
	"C": Independent,
	"D": Libertarian,
}

// Tally counts responses per party for one poll run.
type Tally map[string]int

// NewTally returns a tally with every party at zero.
func NewTally() Tally {
	t := make(Tally, len(Parties))
	for _, p := range Parties {
		t[p] = 0
	}
	return t
}

// Add scores one answer token. Unrecognized tokens are dropped silently.
func (t Tally) Add(answer string) {
	if p, ok := answerParty[answer]; ok {
		t[p]++
	}
}

// Predict returns the party with the highest count. Ties keep the
// earlier entry of Parties.
func (t Tally) Predict() string {
	best := Parties[0]
	for _, p := range Parties[1:] {
		if t[p] > t[best] {
			best = p
		}
	}
	return best
}

// Run asks every question on w and reads one whitespace-delimited token
// from r per question, returning the resulting tally. Input ending
// before the last answer is an error; a failed read is wrapped.
func Run(r io.Reader, w io.Writer) (Tally, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)

	tally := NewTally()
	for _, q := range Questions {
		if _, err := fmt.Fprintln(w, q); err != nil {
			return nil, fmt.Errorf("write question: %w", err)
		}
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return nil, fmt.Errorf("read answer: %w", err)
			}
			return nil, io.ErrUnexpectedEOF
		}
		tally.Add(sc.Text())
	}
	return tally, nil
}
