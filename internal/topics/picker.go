package topics

import (
	"math/rand"
	"strings"
)

// UpdateSuffix marks a headline whose topic was published recently.
const UpdateSuffix = " Update"

// Picker chooses one topic out of a candidate list.
type Picker struct {
	intn func(n int) int
}

// NewPicker uses intn as the random source; nil means math/rand.
func NewPicker(intn func(n int) int) *Picker {
	if intn == nil {
		intn = rand.Intn
	}
	return &Picker{intn: intn}
}

// Pick returns a random topic, preferring ones for which used reports false,
// and the headline to write about. A topic present in recent yields
// "<topic> Update".
func (p *Picker) Pick(candidates []string, used func(string) bool, recent []string) (topic, headline string) {
	if len(candidates) == 0 {
		return "", ""
	}

	pool := candidates
	if used != nil {
		fresh := make([]string, 0, len(candidates))
		for _, c := range candidates {
			if !used(c) {
				fresh = append(fresh, c)
			}
		}
		if len(fresh) > 0 {
			pool = fresh
		}
	}

	topic = pool[p.intn(len(pool))]
	headline = topic
	for _, r := range recent {
		if strings.EqualFold(strings.TrimSpace(r), topic) {
			headline = topic + UpdateSuffix
			break
		}
	}
	return topic, headline
}
