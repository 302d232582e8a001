package claims

import "strings"

// Claim type identifiers. These values travel to clients and are part of the
// wire contract; do not rename.
const (
	ClaimTypeCategory        = "rtub:category"
	ClaimTypePosition        = "rtub:position"
	ClaimTypePrimaryCategory = "rtub:primary_category"
	ClaimTypeYearsAsTuno     = "rtub:years_as_tuno"
	ClaimTypeIsFounder       = "rtub:is_founder"
)

// Category is a member's standing within the association. A member can hold
// several at once (e.g. Tuno and Veterano during a transition).
type Category string

const (
	CategoryLeitao        Category = "Leitao"
	CategoryCaloiro       Category = "Caloiro"
	CategoryTuno          Category = "Tuno"
	CategoryVeterano      Category = "Veterano"
	CategoryTunossauro    Category = "Tunossauro"
	CategoryTunoHonorario Category = "TunoHonorario"
	CategoryFundador      Category = "Fundador"
)

// Hierarchy orders the five ranked categories, lowest first. TunoHonorario
// and Fundador are standing flags, not ranks, and never appear here.
var Hierarchy = []Category{
	CategoryLeitao,
	CategoryCaloiro,
	CategoryTuno,
	CategoryVeterano,
	CategoryTunossauro,
}

// TunossauroYearsAsTuno is the enforced seniority threshold. The original
// bylaws commentary says "after 4 years", but every enforcement path uses 6;
// keeping the enforced value and this note rather than resolving silently.
const TunossauroYearsAsTuno = 6

// GetLevel returns the zero-based rank of a category in the hierarchy, or -1
// for an empty or unknown value. -1 means "no rank" and must never satisfy a
// >= comparison against a real rank.
func GetLevel(category string) int {
	if category == "" {
		return -1
	}
	for i, c := range Hierarchy {
		if strings.EqualFold(string(c), category) {
			return i
		}
	}
	return -1
}

// Position is an organizational office. Offices are independent capability
// tags with no ordering among them.
type Position string

const (
	PositionMagister                     Position = "Magister"
	PositionViceMagister                 Position = "ViceMagister"
	PositionSecretario                   Position = "Secretario"
	PositionTesoureiro                   Position = "Tesoureiro"
	PositionViceTesoureiro               Position = "ViceTesoureiro"
	PositionPresidenteMesaAssembleia     Position = "PresidenteMesaAssembleia"
	PositionVicePresidenteMesaAssembleia Position = "VicePresidenteMesaAssembleia"
	PositionSecretarioMesaAssembleia     Position = "SecretarioMesaAssembleia"
	PositionPresidenteConselhoFiscal     Position = "PresidenteConselhoFiscal"
	PositionPrimeiroVogalConselhoFiscal  Position = "PrimeiroVogalConselhoFiscal"
	PositionSegundoVogalConselhoFiscal   Position = "SegundoVogalConselhoFiscal"
	PositionPresidenteConselhoVeteranos  Position = "PresidenteConselhoVeteranos"
	PositionEnsaiador                    Position = "Ensaiador"
)

var AllPositions = []Position{
	PositionMagister,
	PositionViceMagister,
	PositionSecretario,
	PositionTesoureiro,
	PositionViceTesoureiro,
	PositionPresidenteMesaAssembleia,
	PositionVicePresidenteMesaAssembleia,
	PositionSecretarioMesaAssembleia,
	PositionPresidenteConselhoFiscal,
	PositionPrimeiroVogalConselhoFiscal,
	PositionSegundoVogalConselhoFiscal,
	PositionPresidenteConselhoVeteranos,
	PositionEnsaiador,
}

// IsValidPosition reports whether name is one of the closed office set,
// case-insensitively.
func IsValidPosition(name string) bool {
	for _, p := range AllPositions {
		if strings.EqualFold(string(p), name) {
			return true
		}
	}
	return false
}

// IsValidCategory reports whether name is any known category (ranked or
// flag), case-insensitively.
func IsValidCategory(name string) bool {
	if GetLevel(name) >= 0 {
		return true
	}
	return strings.EqualFold(name, string(CategoryTunoHonorario)) ||
		strings.EqualFold(name, string(CategoryFundador))
}

// Roles are the identity-level access tiers, orthogonal to categories.
const (
	RoleOwner  = "Owner"
	RoleAdmin  = "Admin"
	RoleMember = "Member"
)
