package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// rawRecord is one parsed import row before normalization. All values are the
// file's own text with surrounding quotes stripped.
type rawRecord struct {
	name     string
	email    string
	phone    string
	category string
	birthday string
	company  string
	photoURL string
}

func (r *rawRecord) set(field, value string) {
	value = strings.TrimSpace(stripQuotes(strings.TrimSpace(value)))
	switch field {
	case fieldName:
		r.name = value
	case fieldEmail:
		r.email = value
	case fieldPhone:
		r.phone = value
	case fieldCategory:
		r.category = value
	case fieldBirthday:
		r.birthday = value
	case fieldCompany:
		r.company = value
	case fieldPhotoURL:
		r.photoURL = value
	}
}

// parseCSV reads a header row, resolves each column through the synonym
// table, and yields one rawRecord per data row in file order. Columns with
// unrecognized headers are skipped; rows shorter than the header are padded.
func parseCSV(r io.Reader) ([]rawRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: file is empty", ErrParse)
		}
		return nil, fmt.Errorf("%w: %s", ErrParse, err)
	}

	columns := make([]string, len(header))
	recognized := 0
	for i, cell := range header {
		if field, ok := canonicalField(cell); ok {
			columns[i] = field
			recognized++
		}
	}
	if recognized == 0 {
		return nil, fmt.Errorf("%w: no recognized column headers", ErrParse)
	}

	var out []rawRecord
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrParse, err)
		}
		if isBlankRow(row) {
			continue
		}
		var rec rawRecord
		for i, field := range columns {
			if field == "" || i >= len(row) {
				continue
			}
			rec.set(field, row[i])
		}
		out = append(out, rec)
	}
	return out, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
