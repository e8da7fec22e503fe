package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatAndParseRounds(t *testing.T) {
	rounds := map[string]string{"2": "Coding", "1": "Aptitude", "10": "HR"}
	flat := FormatRounds(rounds)
	assert.Equal(t, "Round 1: Aptitude, Round 2: Coding, Round 10: HR", flat)
	assert.Equal(t, rounds, ParseRounds(flat))
	assert.Empty(t, ParseRounds(""))
	assert.Equal(t, map[string]string{"3": "HR"}, ParseRounds("garbage, Round 3: HR"))
}

func TestStatsFilterIsEmpty(t *testing.T) {
	assert.True(t, StatsFilter{}.IsEmpty())
	year := 2024
	assert.False(t, StatsFilter{Year: &year}.IsEmpty())
}

func TestBranchOffersCounts(t *testing.T) {
	b := BranchOffers{CSE: 6, IT: 4, AUTO: 1}
	counts := b.Counts()
	assert.Len(t, counts, len(BranchNames))
	assert.Equal(t, BranchCount{Branch: "CSE", Offers: 6}, counts[0])
	assert.Equal(t, BranchCount{Branch: "AUTO", Offers: 1}, counts[len(counts)-1])

	m := make(map[string]int)
	for _, c := range counts {
		m[c.Branch] = c.Offers
	}
	m["UNKNOWN"] = 9
	assert.Equal(t, b, BranchOffersFromMap(m))
}
