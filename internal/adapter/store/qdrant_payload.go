package store

import (
	"strconv"
	"strings"

	"placements-assistant/internal/domain/entity"

	"github.com/qdrant/go-client/qdrant"
)

const (
	payloadCompanyName   = "company_name"
	payloadCompanyDesc   = "company_desc"
	payloadRole          = "roles"
	payloadJobDesc       = "job_desc"
	payloadPackage       = "package"
	payloadRounds        = "rounds"
	payloadDescription   = "description"
	payloadDocument      = "document"
	payloadYear          = "year"
	payloadSalary        = "salary"
	payloadInternshipPPO = "internship_ppo"
	payloadTotalOffers   = "total_offers"
)

func companyFilter(name string) *qdrant.Filter {
	return &qdrant.Filter{
		Must: []*qdrant.Condition{qdrant.NewMatch(payloadCompanyName, name)},
	}
}

// statsFilter returns nil for an empty filter so the scroll is unfiltered.
func statsFilter(f entity.StatsFilter) *qdrant.Filter {
	if f.IsEmpty() {
		return nil
	}
	var must []*qdrant.Condition
	if f.CompanyName != nil {
		must = append(must, qdrant.NewMatch(payloadCompanyName, *f.CompanyName))
	}
	if f.Year != nil {
		must = append(must, qdrant.NewMatchInt(payloadYear, int64(*f.Year)))
	}
	return &qdrant.Filter{Must: must}
}

func rolePayload(d entity.RoleDocument) map[string]any {
	return map[string]any{
		payloadCompanyName: d.CompanyName,
		payloadCompanyDesc: d.CompanyDesc,
		payloadRole:        d.Role.Role,
		payloadJobDesc:     d.Role.JobDesc,
		payloadPackage:     d.Role.Package,
		payloadRounds:      entity.FormatRounds(d.Role.Rounds),
		payloadDescription: d.Description,
		payloadDocument:    d.Text,
	}
}

func roleFromPayload(id string, p map[string]*qdrant.Value) entity.RoleDocument {
	return entity.RoleDocument{
		ID:          id,
		CompanyName: payloadString(p, payloadCompanyName),
		CompanyDesc: payloadString(p, payloadCompanyDesc),
		Description: payloadString(p, payloadDescription),
		Text:        payloadString(p, payloadDocument),
		Role: entity.Role{
			Role:    payloadString(p, payloadRole),
			JobDesc: payloadString(p, payloadJobDesc),
			Package: payloadString(p, payloadPackage),
			Rounds:  entity.ParseRounds(payloadString(p, payloadRounds)),
		},
	}
}

func statsPayload(s entity.CompanyStats) map[string]any {
	p := map[string]any{
		payloadCompanyName: s.CompanyName,
		payloadTotalOffers: int64(s.TotalOffers),
	}
	if s.Year != nil {
		p[payloadYear] = int64(*s.Year)
	}
	if s.Salary != nil {
		p[payloadSalary] = *s.Salary
	}
	if s.InternshipPPO != nil {
		p[payloadInternshipPPO] = int64(*s.InternshipPPO)
	}
	for _, b := range s.Branches.Counts() {
		p[b.Branch] = int64(b.Offers)
	}
	return p
}

func statsFromPayload(id string, p map[string]*qdrant.Value) entity.CompanyStats {
	s := entity.CompanyStats{
		ID:            id,
		CompanyName:   payloadString(p, payloadCompanyName),
		Year:          payloadIntPtr(p, payloadYear),
		Salary:        payloadFloatPtr(p, payloadSalary),
		InternshipPPO: payloadIntPtr(p, payloadInternshipPPO),
	}
	if n := payloadIntPtr(p, payloadTotalOffers); n != nil {
		s.TotalOffers = *n
	}

	branches := make(map[string]int)
	for _, name := range entity.BranchNames {
		if n := payloadIntPtr(p, name); n != nil {
			branches[name] = *n
		}
	}
	s.Branches = entity.BranchOffersFromMap(branches)
	return s
}

func pointID(id *qdrant.PointId) string {
	if u := id.GetUuid(); u != "" {
		return u
	}
	return strconv.FormatUint(id.GetNum(), 10)
}

func payloadString(p map[string]*qdrant.Value, key string) string {
	v, ok := p[key]
	if !ok {
		return ""
	}
	switch k := v.GetKind().(type) {
	case *qdrant.Value_StringValue:
		return k.StringValue
	case *qdrant.Value_IntegerValue:
		return strconv.FormatInt(k.IntegerValue, 10)
	case *qdrant.Value_DoubleValue:
		return strconv.FormatFloat(k.DoubleValue, 'f', -1, 64)
	default:
		return ""
	}
}

// Numbers written by other tools may arrive as doubles or numeric strings.
func payloadIntPtr(p map[string]*qdrant.Value, key string) *int {
	v, ok := p[key]
	if !ok {
		return nil
	}
	var n int
	switch k := v.GetKind().(type) {
	case *qdrant.Value_IntegerValue:
		n = int(k.IntegerValue)
	case *qdrant.Value_DoubleValue:
		n = int(k.DoubleValue)
	case *qdrant.Value_StringValue:
		parsed, err := strconv.Atoi(strings.TrimSpace(k.StringValue))
		if err != nil {
			return nil
		}
		n = parsed
	default:
		return nil
	}
	return &n
}

func payloadFloatPtr(p map[string]*qdrant.Value, key string) *float64 {
	v, ok := p[key]
	if !ok {
		return nil
	}
	var f float64
	switch k := v.GetKind().(type) {
	case *qdrant.Value_DoubleValue:
		f = k.DoubleValue
	case *qdrant.Value_IntegerValue:
		f = float64(k.IntegerValue)
	case *qdrant.Value_StringValue:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(k.StringValue), 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}
	return &f
}
