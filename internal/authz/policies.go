package authz

// Policy names, referenced from route wiring.
const (
	PolicyAtLeastCaloiro    = "at-least-caloiro"
	PolicyAtLeastTuno       = "at-least-tuno"
	PolicyAtLeastVeterano   = "at-least-veterano"
	PolicyAtLeastTunossauro = "at-least-tunossauro"

	PolicyIsOnlyLeitao  = "is-only-leitao"
	PolicyNotOnlyLeitao = "not-only-leitao"

	PolicyMagistratura      = "magistratura"
	PolicyTesouraria        = "tesouraria"
	PolicyEnsaiador         = "ensaiador"
	PolicyMesaAssembleia    = "mesa-assembleia"
	PolicyConselhoFiscal    = "conselho-fiscal"
	PolicyConselhoVeteranos = "conselho-veteranos"

	PolicyAdmin        = "admin"
	PolicyOwner        = "owner"
	PolicyAdminTuno    = "admin-tuno"
	PolicyCaloiroAdmin = "caloiro-admin"

	PolicyMemberManagement      = "member-management"
	PolicyMemberManagementWrite = "member-management-write"
	PolicyFinance               = "finance"
)
