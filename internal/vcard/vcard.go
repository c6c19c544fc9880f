// Package vcard serializes BusinessCard records into the vCard 3.0 text
// format. Rendering is deterministic over a valid record: there is no error
// path, and a malformed record here indicates a bug upstream.
package vcard

import (
	"fmt"
	"strings"
	"time"

	"github.com/cardscan-io/cardscan/internal/models"
	"github.com/cardscan-io/cardscan/internal/normalize"
)

// now is swapped out in tests to pin the REV timestamp.
var now = time.Now

// Render serializes a card into vCard 3.0 text with CRLF line endings.
// TEL, EMAIL, URL, ADR, and NOTE lines are emitted only for fields that are
// present.
func Render(card *models.BusinessCard) string {
	lines := []string{
		"BEGIN:VCARD",
		"VERSION:3.0",
		fmt.Sprintf("N:%s;%s;%s;;", card.LastName, card.FirstName, card.MiddleName),
		"FN:" + formattedName(card),
		"ORG:" + card.CompanyName,
		"TITLE:" + card.Position,
		"X-DEPARTMENT:" + card.Department,
	}

	for _, number := range card.Mobile {
		lines = append(lines, "TEL;TYPE=CELL:"+number)
	}
	for _, number := range card.Telephone {
		if card.Extension != "" {
			number += " ext. " + card.Extension
		}
		lines = append(lines, "TEL;TYPE=WORK:"+number)
	}
	for _, addr := range card.Email {
		lines = append(lines, "EMAIL;TYPE=WORK:"+addr)
	}
	for _, site := range card.Website {
		lines = append(lines, "URL:"+normalize.WebsiteURL(site))
	}

	if card.Address != "" {
		lines = append(lines, fmt.Sprintf("ADR;TYPE=WORK:;;%s;;;;", escape(card.Address)))
	}
	if card.Notes != "" {
		lines = append(lines, "NOTE:"+escape(card.Notes))
	}

	lines = append(lines, "REV:"+now().UTC().Format("20060102T150405Z"))
	lines = append(lines, "END:VCARD")

	return strings.Join(lines, "\r\n")
}

// formattedName builds the FN value from the name parts, skipping absent ones.
func formattedName(card *models.BusinessCard) string {
	var parts []string
	for _, part := range []string{card.FirstName, card.MiddleName, card.LastName} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, " ")
}

// escape applies the vCard text escaping rules for newline, comma, and
// semicolon.
func escape(value string) string {
	value = strings.ReplaceAll(value, "\n", `\n`)
	value = strings.ReplaceAll(value, ",", `\,`)
	value = strings.ReplaceAll(value, ";", `\;`)
	return value
}
