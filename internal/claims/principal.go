package claims

import (
	"strconv"
	"strings"
)

// ClaimSet maps a claim type to its set of values. Category and position
// claims are multi-valued; a set, not a list with duplicates.
type ClaimSet map[string][]string

func (s ClaimSet) Add(claimType, value string) {
	for _, v := range s[claimType] {
		if strings.EqualFold(v, value) {
			return
		}
	}
	s[claimType] = append(s[claimType], value)
}

func (s ClaimSet) Has(claimType, value string) bool {
	for _, v := range s[claimType] {
		if strings.EqualFold(v, value) {
			return true
		}
	}
	return false
}

func (s ClaimSet) Values(claimType string) []string {
	return s[claimType]
}

// Principal is the resolved identity a request acts as: base identity fields
// from the session layer plus category/position claims layered on top.
type Principal struct {
	UserID   uint64   `json:"user_id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
	Claims   ClaimSet `json:"claims"`
}

func (p *Principal) IsAuthenticated() bool {
	return p != nil && p.UserID != 0
}

func (p *Principal) HasRole(role string) bool {
	if p == nil {
		return false
	}
	for _, r := range p.Roles {
		if strings.EqualFold(r, role) {
			return true
		}
	}
	return false
}

func (p *Principal) Categories() []string {
	if p == nil || p.Claims == nil {
		return nil
	}
	return p.Claims.Values(ClaimTypeCategory)
}

func (p *Principal) Positions() []string {
	if p == nil || p.Claims == nil {
		return nil
	}
	return p.Claims.Values(ClaimTypePosition)
}

func (p *Principal) HasCategory(c Category) bool {
	return p != nil && p.Claims != nil && p.Claims.Has(ClaimTypeCategory, string(c))
}

func (p *Principal) HasPosition(pos Position) bool {
	return p != nil && p.Claims != nil && p.Claims.Has(ClaimTypePosition, string(pos))
}

// HighestCategoryLevel returns the top rank among the principal's category
// claims, or -1 when none of them is ranked.
func (p *Principal) HighestCategoryLevel() int {
	highest := -1
	for _, c := range p.Categories() {
		if lvl := GetLevel(c); lvl > highest {
			highest = lvl
		}
	}
	return highest
}

// MemberRecord is what the projection needs from the persistence layer: the
// member's current category and position sets plus the auxiliary facts.
type MemberRecord struct {
	ID          uint64
	Username    string
	Email       string
	Roles       []string
	Categories  []string
	Positions   []string
	YearsAsTuno int
	IsFounder   bool
}

// Project rebuilds the principal's claim set from a freshly loaded member
// record. Pre-existing rtub:* claims are stripped first so a refresh never
// accumulates duplicates; base identity claims are taken from the record.
func Project(member *MemberRecord) *Principal {
	p := &Principal{
		UserID:   member.ID,
		Username: member.Username,
		Email:    member.Email,
		Roles:    member.Roles,
		Claims:   make(ClaimSet),
	}

	for _, c := range member.Categories {
		p.Claims.Add(ClaimTypeCategory, c)
	}
	for _, pos := range member.Positions {
		p.Claims.Add(ClaimTypePosition, pos)
	}

	if primary := primaryCategory(member.Categories); primary != "" {
		p.Claims.Add(ClaimTypePrimaryCategory, primary)
	}
	p.Claims.Add(ClaimTypeYearsAsTuno, strconv.Itoa(member.YearsAsTuno))
	p.Claims.Add(ClaimTypeIsFounder, strconv.FormatBool(member.IsFounder))

	return p
}

// primaryCategory picks the highest-ranked category held; when only flags are
// held the first one stands in.
func primaryCategory(categories []string) string {
	best := ""
	bestLevel := -1
	for _, c := range categories {
		if lvl := GetLevel(c); lvl > bestLevel {
			best = c
			bestLevel = lvl
		}
	}
	if best == "" && len(categories) > 0 {
		best = categories[0]
	}
	return best
}
