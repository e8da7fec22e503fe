package entity

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Role is one open position a company hires for.
type Role struct {
	Role    string            `json:"role"`
	JobDesc string            `json:"jobDesc"`
	Package string            `json:"package"`
	Rounds  map[string]string `json:"rounds"` // round number -> description
}

// CompanyInsight is the admin-facing company record. Each role is stored as its own document.
type CompanyInsight struct {
	ID          string `json:"id,omitempty"`
	CompanyName string `json:"companyName"`
	CompanyDesc string `json:"companyDesc"`
	Roles       []Role `json:"roles"`
	Description string `json:"description,omitempty"`
}

// RoleDocument is a single embedded role entry in the document store.
type RoleDocument struct {
	ID          string
	CompanyName string
	CompanyDesc string
	Description string
	Role        Role
	Text        string
	Vector      []float32
}

// BranchOffers counts offers per academic branch.
type BranchOffers struct {
	CSE   int `json:"CSE"`
	CSBS  int `json:"CSBS"`
	CYS   int `json:"CYS"`
	AIML  int `json:"AIML"`
	DS    int `json:"DS"`
	IOT   int `json:"IOT"`
	IT    int `json:"IT"`
	ECE   int `json:"ECE"`
	EEE   int `json:"EEE"`
	EIE   int `json:"EIE"`
	MECH  int `json:"MECH"`
	CIVIL int `json:"CIVIL"`
	AUTO  int `json:"AUTO"`
}

// BranchNames lists branches in display order.
var BranchNames = []string{"CSE", "CSBS", "CYS", "AIML", "DS", "IOT", "IT", "ECE", "EEE", "EIE", "MECH", "CIVIL", "AUTO"}

type BranchCount struct {
	Branch string
	Offers int
}

// Counts returns per-branch offers in BranchNames order.
func (b BranchOffers) Counts() []BranchCount {
	values := []int{b.CSE, b.CSBS, b.CYS, b.AIML, b.DS, b.IOT, b.IT, b.ECE, b.EEE, b.EIE, b.MECH, b.CIVIL, b.AUTO}
	out := make([]BranchCount, len(BranchNames))
	for i, name := range BranchNames {
		out[i] = BranchCount{Branch: name, Offers: values[i]}
	}
	return out
}

// BranchOffersFromMap is the inverse of Counts. Unknown keys are ignored.
func BranchOffersFromMap(m map[string]int) BranchOffers {
	return BranchOffers{
		CSE:   m["CSE"],
		CSBS:  m["CSBS"],
		CYS:   m["CYS"],
		AIML:  m["AIML"],
		DS:    m["DS"],
		IOT:   m["IOT"],
		IT:    m["IT"],
		ECE:   m["ECE"],
		EEE:   m["EEE"],
		EIE:   m["EIE"],
		MECH:  m["MECH"],
		CIVIL: m["CIVIL"],
		AUTO:  m["AUTO"],
	}
}

// CompanyStats is one structured hiring-statistics record for a company and year.
// Optional fields are nil when the store record does not carry them.
type CompanyStats struct {
	ID            string       `json:"id,omitempty"`
	CompanyName   string       `json:"company_name"`
	Year          *int         `json:"year,omitempty"`
	Salary        *float64     `json:"salary,omitempty"` // LPA
	InternshipPPO *int         `json:"internship_ppo,omitempty"`
	TotalOffers   int          `json:"total_offers"`
	Branches      BranchOffers `json:"branches"`
}

// StatsFilter selects stats records by exact match. Nil fields are not constrained;
// an all-nil filter selects every record.
type StatsFilter struct {
	CompanyName *string
	Year        *int
}

func (f StatsFilter) IsEmpty() bool {
	return f.CompanyName == nil && f.Year == nil
}

// RoundLines renders rounds as "Round <k>: <v>", ordered by numeric round number.
func (r Role) RoundLines() []string {
	keys := make([]string, 0, len(r.Rounds))
	for k := range r.Rounds {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, errA := strconv.Atoi(keys[i])
		b, errB := strconv.Atoi(keys[j])
		if errA == nil && errB == nil {
			return a < b
		}
		return keys[i] < keys[j]
	})

	lines := make([]string, len(keys))
	for i, k := range keys {
		lines[i] = fmt.Sprintf("Round %s: %s", k, r.Rounds[k])
	}
	return lines
}

// FormatRounds flattens rounds into "Round 1: x, Round 2: y" for document payloads.
func FormatRounds(rounds map[string]string) string {
	return strings.Join(Role{Rounds: rounds}.RoundLines(), ", ")
}

// ParseRounds is the inverse of FormatRounds. Malformed segments are skipped.
func ParseRounds(s string) map[string]string {
	rounds := make(map[string]string)
	if s == "" {
		return rounds
	}
	for _, seg := range strings.Split(s, ", ") {
		if !strings.HasPrefix(seg, "Round ") {
			continue
		}
		head, desc, ok := strings.Cut(seg, ": ")
		if !ok {
			continue
		}
		rounds[strings.TrimPrefix(head, "Round ")] = desc
	}
	return rounds
}
