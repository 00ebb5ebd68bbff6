package record

// IDDocument is the shape requested from the vision model. It defines the
// happy-path schema the post-processor expects; extraction itself works on
// the looser Record map.
type IDDocument struct {
	DocumentType   string         `json:"document_type" jsonschema:"description=Type of ID (driver license, passport, etc.)"`
	IssuingCountry string         `json:"issuing_country,omitempty" jsonschema:"description=Country or state that issued the ID"`
	FullName       string         `json:"full_name" jsonschema:"description=Full name of the ID holder exactly as it appears"`
	FirstName      string         `json:"first_name,omitempty" jsonschema:"description=First name of the ID holder"`
	LastName       string         `json:"last_name,omitempty" jsonschema:"description=Last name of the ID holder"`
	Address        string         `json:"address,omitempty" jsonschema:"description=Full address if available"`
	DateOfBirth    string         `json:"date_of_birth,omitempty" jsonschema:"description=Date of birth in MM/DD/YYYY format"`
	ExpirationDate string         `json:"expiration_date,omitempty" jsonschema:"description=Document expiration date in MM/DD/YYYY format"`
	IssueDate      string         `json:"issue_date,omitempty" jsonschema:"description=Document issue date in MM/DD/YYYY format"`
	Gender         string         `json:"gender,omitempty" jsonschema:"description=Gender/sex"`
	DocumentNumber string         `json:"document_number,omitempty" jsonschema:"description=The ID document number. For California drivers licenses, this typically starts with a letter (like 'I') followed by 7 digits"`
	AdditionalInfo map[string]any `json:"additional_info,omitempty" jsonschema:"description=Any other relevant information like height, eye color, etc."`
}
