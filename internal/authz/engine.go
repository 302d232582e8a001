package authz

import (
	"rtub-system/internal/claims"
)

// Predicate is a named policy body: a pure, synchronous check over the
// resolved principal. Predicates never do I/O and never error; an unmet
// condition is simply a deny.
type Predicate func(p *claims.Principal) bool

// AtLeast succeeds when any of the principal's category claims ranks at or
// above the given category. A member holding {Leitao, Tuno} therefore passes
// at-least-Caloiro: the highest held category decides, a lower one held
// alongside never blocks. GetLevel's -1 sentinel keeps unranked flags
// (TunoHonorario, Fundador) and unknown values out of the comparison.
func AtLeast(category claims.Category) Predicate {
	threshold := claims.GetLevel(string(category))
	return func(p *claims.Principal) bool {
		if threshold < 0 {
			return false
		}
		return p.HighestCategoryLevel() >= threshold
	}
}

// IsOnlyLeitao is the probationary test: holds Leitao and nothing ranked at
// Caloiro or above. It is deliberately not a plain negation of membership; a
// member keeps the Leitao claim for a while after being promoted.
func IsOnlyLeitao(p *claims.Principal) bool {
	return p.HasCategory(claims.CategoryLeitao) && !AtLeast(claims.CategoryCaloiro)(p)
}

// NotOnlyLeitao admits everyone except pure probationary members. Note this
// also admits members with no category claims at all (honorary-only members);
// gate those separately with AtLeast where it matters.
func NotOnlyLeitao(p *claims.Principal) bool {
	return !IsOnlyLeitao(p)
}

// HasAnyPosition succeeds when the principal holds at least one of the
// offices. Positions are independent capability tags; no ordering applies.
func HasAnyPosition(positions ...claims.Position) Predicate {
	return func(p *claims.Principal) bool {
		for _, pos := range positions {
			if p.HasPosition(pos) {
				return true
			}
		}
		return false
	}
}

func HasRole(role string) Predicate {
	return func(p *claims.Principal) bool { return p.HasRole(role) }
}

// All composes predicates with AND. Role and category are independent axes:
// a composite policy needs both to hold, one never substitutes for the other.
func All(preds ...Predicate) Predicate {
	return func(p *claims.Principal) bool {
		for _, pred := range preds {
			if !pred(p) {
				return false
			}
		}
		return true
	}
}

func Any(preds ...Predicate) Predicate {
	return func(p *claims.Principal) bool {
		for _, pred := range preds {
			if pred(p) {
				return true
			}
		}
		return false
	}
}

// Not inverts a predicate; used to carve exclusions out of a broader grant.
func Not(pred Predicate) Predicate {
	return func(p *claims.Principal) bool { return !pred(p) }
}

// CaloiroAdmin detects the reduced-privilege combination: a Caloiro who holds
// the Admin role but not Owner. Owner always supersedes the restriction, so
// (Caloiro, Admin, Owner) is not a CaloiroAdmin.
func CaloiroAdmin(p *claims.Principal) bool {
	return p.HasCategory(claims.CategoryCaloiro) &&
		p.HasRole(claims.RoleAdmin) &&
		!p.HasRole(claims.RoleOwner)
}

// memberManagement is the read-level grant; the write-level policy carves
// CaloiroAdmin out of it, so a Caloiro holding Admin browses the roster but
// cannot mutate it.
var memberManagement = Any(
	HasRole(claims.RoleOwner),
	HasRole(claims.RoleAdmin),
	HasAnyPosition(claims.PositionMagister, claims.PositionViceMagister, claims.PositionSecretario),
)

// Catalog binds policy names to predicates. Stateless; evaluated per request.
var Catalog = map[string]Predicate{
	PolicyAtLeastCaloiro:    AtLeast(claims.CategoryCaloiro),
	PolicyAtLeastTuno:       AtLeast(claims.CategoryTuno),
	PolicyAtLeastVeterano:   AtLeast(claims.CategoryVeterano),
	PolicyAtLeastTunossauro: AtLeast(claims.CategoryTunossauro),

	PolicyIsOnlyLeitao:  IsOnlyLeitao,
	PolicyNotOnlyLeitao: NotOnlyLeitao,

	PolicyMagistratura: HasAnyPosition(claims.PositionMagister, claims.PositionViceMagister),
	PolicyTesouraria:   HasAnyPosition(claims.PositionTesoureiro, claims.PositionViceTesoureiro),
	PolicyEnsaiador:    HasAnyPosition(claims.PositionEnsaiador),
	PolicyMesaAssembleia: HasAnyPosition(
		claims.PositionPresidenteMesaAssembleia,
		claims.PositionVicePresidenteMesaAssembleia,
		claims.PositionSecretarioMesaAssembleia,
	),
	PolicyConselhoFiscal: HasAnyPosition(
		claims.PositionPresidenteConselhoFiscal,
		claims.PositionPrimeiroVogalConselhoFiscal,
		claims.PositionSegundoVogalConselhoFiscal,
	),
	PolicyConselhoVeteranos: HasAnyPosition(claims.PositionPresidenteConselhoVeteranos),

	PolicyAdmin:        Any(HasRole(claims.RoleAdmin), HasRole(claims.RoleOwner)),
	PolicyOwner:        HasRole(claims.RoleOwner),
	PolicyAdminTuno:    All(HasRole(claims.RoleAdmin), AtLeast(claims.CategoryTuno)),
	PolicyCaloiroAdmin: CaloiroAdmin,

	PolicyMemberManagement:      memberManagement,
	PolicyMemberManagementWrite: All(memberManagement, Not(CaloiroAdmin)),
	PolicyFinance: Any(
		HasRole(claims.RoleOwner),
		HasRole(claims.RoleAdmin),
		HasAnyPosition(claims.PositionTesoureiro, claims.PositionViceTesoureiro),
	),
}

// Evaluate runs the named policy against the principal. An unknown policy
// name denies; nothing here panics or errors.
func Evaluate(policy string, p *claims.Principal) bool {
	pred, ok := Catalog[policy]
	if !ok {
		return false
	}
	return pred(p)
}
