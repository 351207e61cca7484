package normalize

import (
	"errors"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// ErrInvalidPhone is returned when a phone number cannot be parsed or is not
// valid for any region.
var ErrInvalidPhone = errors.New("invalid phone number")

// Phone parses a raw phone string under the given default region and returns
// it in E.164 form. Numbers that already carry a country code ignore the
// region. An empty input is returned unchanged.
func Phone(raw, defaultRegion string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	num, err := phonenumbers.Parse(raw, strings.ToUpper(defaultRegion))
	if err != nil {
		return "", ErrInvalidPhone
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", ErrInvalidPhone
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}
