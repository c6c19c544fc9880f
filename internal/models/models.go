package models

// BusinessCard is the canonical record parsed from one card (front and
// optionally back). Required fields hold an empty string when extraction
// found no value; list fields are nil when absent, never empty slices.
// Records are immutable once constructed.
type BusinessCard struct {
	FirstName   string   `json:"first_name"`
	MiddleName  string   `json:"middle_name,omitempty"`
	LastName    string   `json:"last_name"`
	CompanyName string   `json:"company_name"`
	Position    string   `json:"position"`
	Department  string   `json:"department,omitempty"`
	Mobile      []string `json:"mobile,omitempty"`
	Telephone   []string `json:"telephone,omitempty"`
	Email       []string `json:"email,omitempty"`
	Website     []string `json:"website,omitempty"`
	Address     string   `json:"address,omitempty"`
	Extension   string   `json:"extension,omitempty"`
	Notes       string   `json:"notes,omitempty"`
}

// FieldNames lists the record's fields in their fixed export order. CSV
// headers and column order are derived from this.
func FieldNames() []string {
	return []string{
		"first_name", "middle_name", "last_name", "company_name", "position",
		"department", "mobile", "telephone", "email", "website",
		"address", "extension", "notes",
	}
}

// ScanResponse is the payload returned by the card processing endpoint.
type ScanResponse struct {
	Success        bool          `json:"success"`
	RawText        string        `json:"raw_text"`
	StructuredData *BusinessCard `json:"structured_data"`
	VCard          string        `json:"vcard,omitempty"`
	ErrorMessage   string        `json:"error_message,omitempty"`
}
