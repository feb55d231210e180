package dto

// ContractRequestDTO carries the seven required contract fields. JSON tag
// names are registered with the validator so missing-field errors name the
// wire-level fields exactly.
type ContractRequestDTO struct {
	CompanyName     string `json:"companyName" validate:"required"`
	CompanyID       string `json:"companyId" validate:"required"`
	CompanyAddress  string `json:"companyAddress" validate:"required"`
	LegalRepName    string `json:"legalRepName" validate:"required"`
	LegalRepID      string `json:"legalRepId" validate:"required"`
	LegalRepAddress string `json:"legalRepAddress" validate:"required"`
	LegalRepGender  string `json:"legalRepGender" validate:"required"`
}
