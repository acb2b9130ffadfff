// Package faydaid validates Ethiopian national identity numbers (Fayda IDs).
//
// A Fayda ID is 16 ASCII digits laid out as:
//
//	YY MM DD RR SSSSSSS C
//
// where YYMMDD is the holder's birth date, RR a region code, SSSSSSS a
// personal sequence and C a weighted check digit over the first 15 digits.
//
// Domain Purity: this package performs no I/O and reads no clock. Every
// function is total over arbitrary strings and never panics.
package faydaid

import (
	"errors"
	"sort"
)

// Length is the number of digits in a Fayda ID.
const Length = 16

// centuryPivot splits two-digit birth years between the 2000s and the 1900s.
const centuryPivot = 25

var (
	ErrLength    = errors.New("fayda id must be exactly 16 characters")
	ErrNonDigit  = errors.New("fayda id must contain only digits")
	ErrBirthDate = errors.New("fayda id has an invalid birth month or day")
	ErrRegion    = errors.New("fayda id has an unknown region code")
	ErrChecksum  = errors.New("fayda id checksum digit does not match")
)

var regions = map[string]string{
	"01": "Tigray",
	"02": "Afar",
	"03": "Amhara",
	"04": "Oromia",
	"05": "Somali",
	"06": "Benishangul-Gumuz",
	"07": "SNNPR",
	"08": "Gambela",
	"09": "Harari",
	"10": "Addis Ababa",
	"11": "Dire Dawa",
}

// Region is one entry of the region code table.
type Region struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// ID is a Fayda ID that passed every format gate.
type ID struct {
	value string
}

// Parse validates value and returns the parsed ID. The returned error names
// the first gate that rejected the input.
//
// The month gate accepts 00 and the day gate does not check the day against
// the month (02-31 passes). Existing fixtures depend on this looseness.
func Parse(value string) (ID, error) {
	if len(value) != Length {
		return ID{}, ErrLength
	}
	for i := 0; i < len(value); i++ {
		if !isDigit(value[i]) {
			return ID{}, ErrNonDigit
		}
	}

	month := twoDigits(value[2:4])
	day := twoDigits(value[4:6])
	if month > 12 || day < 1 || day > 31 {
		return ID{}, ErrBirthDate
	}

	if _, ok := regions[value[6:8]]; !ok {
		return ID{}, ErrRegion
	}

	expected, _ := Checksum(value[:Length-1])
	if int(value[Length-1]-'0') != expected {
		return ID{}, ErrChecksum
	}
	return ID{value: value}, nil
}

// ValidateFormat reports whether value is a well-formed Fayda ID.
func ValidateFormat(value string) bool {
	_, err := Parse(value)
	return err == nil
}

// Checksum computes the check digit for the first 15 digits of an ID.
// Digits at even positions weigh 1 and at odd positions 3; the check digit
// brings the weighted sum up to a multiple of ten. It reports false when
// digits is not exactly 15 ASCII digits.
func Checksum(digits string) (int, bool) {
	if len(digits) != Length-1 {
		return 0, false
	}
	sum := 0
	for i := 0; i < len(digits); i++ {
		c := digits[i]
		if !isDigit(c) {
			return 0, false
		}
		weight := 1
		if i%2 == 1 {
			weight = 3
		}
		sum += int(c-'0') * weight
	}
	return (10 - sum%10) % 10, true
}

// RegionName looks up the display name for a two-digit region code.
func RegionName(code string) (string, bool) {
	name, ok := regions[code]
	return name, ok
}

// Regions returns the region table ordered by code.
func Regions() []Region {
	out := make([]Region, 0, len(regions))
	for code, name := range regions {
		out = append(out, Region{Code: code, Name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// BirthYear derives a four-digit birth year from the first two digits of
// value. Years below 25 map to 20YY, the rest to 19YY.
func BirthYear(value string) (int, bool) {
	if len(value) < 2 || !isDigit(value[0]) || !isDigit(value[1]) {
		return 0, false
	}
	yy := twoDigits(value[:2])
	if yy < centuryPivot {
		return 2000 + yy, true
	}
	return 1900 + yy, true
}

// String returns the 16-digit ID.
func (id ID) String() string {
	return id.value
}

// IsZero reports whether id is the zero value.
func (id ID) IsZero() bool {
	return id.value == ""
}

// BirthMonth, BirthDay, RegionCode and Sequence return zero values for the
// zero ID.
func (id ID) BirthMonth() int {
	if id.IsZero() {
		return 0
	}
	return twoDigits(id.value[2:4])
}

func (id ID) BirthDay() int {
	if id.IsZero() {
		return 0
	}
	return twoDigits(id.value[4:6])
}

func (id ID) RegionCode() string {
	if id.IsZero() {
		return ""
	}
	return id.value[6:8]
}

func (id ID) Sequence() string {
	if id.IsZero() {
		return ""
	}
	return id.value[8:15]
}

// Region returns the display name of the ID's region.
func (id ID) Region() string {
	name, _ := RegionName(id.RegionCode())
	return name
}

func (id ID) BirthYear() int {
	year, _ := BirthYear(id.value)
	return year
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// twoDigits assumes s holds two ASCII digits.
func twoDigits(s string) int {
	return int(s[0]-'0')*10 + int(s[1]-'0')
}
