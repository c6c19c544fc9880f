package dataset

import "github.com/cardscan-io/cardscan/internal/models"

// Record is one labeled business card: the OCR text of the card and the
// hand-verified fields it should extract to.
type Record struct {
	ID       string         `json:"id" parquet:"id"`
	CardText string         `json:"card_text" parquet:"card_text"`
	Expected ExpectedFields `json:"expected" parquet:"expected"`
}

// ExpectedFields is the ground truth for a single card.
type ExpectedFields struct {
	FirstName   string   `json:"first_name" parquet:"first_name"`
	MiddleName  string   `json:"middle_name" parquet:"middle_name"`
	LastName    string   `json:"last_name" parquet:"last_name"`
	CompanyName string   `json:"company_name" parquet:"company_name"`
	Position    string   `json:"position" parquet:"position"`
	Department  string   `json:"department" parquet:"department"`
	Mobile      []string `json:"mobile" parquet:"mobile,list"`
	Telephone   []string `json:"telephone" parquet:"telephone,list"`
	Email       []string `json:"email" parquet:"email,list"`
	Website     []string `json:"website" parquet:"website,list"`
	Address     string   `json:"address" parquet:"address"`
	Extension   string   `json:"extension" parquet:"extension"`
	Notes       string   `json:"notes" parquet:"notes"`
}

// Card converts the ground truth to the shape the extraction pipeline emits,
// so both sides of a comparison share one type.
func (e *ExpectedFields) Card() *models.BusinessCard {
	return &models.BusinessCard{
		FirstName:   e.FirstName,
		MiddleName:  e.MiddleName,
		LastName:    e.LastName,
		CompanyName: e.CompanyName,
		Position:    e.Position,
		Department:  e.Department,
		Mobile:      e.Mobile,
		Telephone:   e.Telephone,
		Email:       e.Email,
		Website:     e.Website,
		Address:     e.Address,
		Extension:   e.Extension,
		Notes:       e.Notes,
	}
}
