package importer

import (
	"fmt"
	"io"
	"strings"

	"github.com/emersion/go-vcard"
)

// parseVCards splits the input on BEGIN:VCARD markers and decodes each card
// on its own, so concatenated exports and files with junk between cards still
// yield every contact. The first value wins for repeated properties.
func parseVCards(r io.Reader) ([]rawRecord, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrParse, err)
	}

	chunks := strings.Split(string(raw), "BEGIN:VCARD")
	var out []rawRecord
	for _, chunk := range chunks {
		if strings.TrimSpace(chunk) == "" {
			continue
		}
		card, err := vcard.NewDecoder(strings.NewReader("BEGIN:VCARD" + chunk)).Decode()
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrParse, err)
		}
		out = append(out, cardToRecord(card))
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no vCard entries found", ErrParse)
	}
	return out, nil
}

func cardToRecord(card vcard.Card) rawRecord {
	var rec rawRecord
	rec.set(fieldName, firstValue(card, vcard.FieldFormattedName))
	rec.set(fieldEmail, firstValue(card, vcard.FieldEmail))
	rec.set(fieldPhone, firstValue(card, vcard.FieldTelephone))
	rec.set(fieldCategory, firstValue(card, vcard.FieldCategories))
	rec.set(fieldBirthday, firstValue(card, vcard.FieldBirthday))
	org := firstValue(card, vcard.FieldOrganization)
	// ORG is structured as org;unit1;unit2, only the organization name maps.
	if i := strings.Index(org, ";"); i >= 0 {
		org = org[:i]
	}
	rec.set(fieldCompany, org)
	rec.set(fieldPhotoURL, firstValue(card, vcard.FieldPhoto))
	return rec
}

func firstValue(card vcard.Card, key string) string {
	fields := card[key]
	if len(fields) == 0 {
		return ""
	}
	return fields[0].Value
}
