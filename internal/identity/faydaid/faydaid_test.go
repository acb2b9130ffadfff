package faydaid

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	tigrayID   = "2205150100000008"
	direDawaID = "9001011100000001"
	monthZero  = "8500150300000002"
	febThirty1 = "9502310400000002"
)

type FaydaIDSuite struct {
	suite.Suite
}

func TestFaydaIDSuite(t *testing.T) {
	suite.Run(t, new(FaydaIDSuite))
}

func (s *FaydaIDSuite) TestValidateFormat() {
	s.Run("canonical fixture is valid", func() {
		s.True(ValidateFormat(tigrayID))
	})

	s.Run("boundary region code 11 is accepted", func() {
		s.True(ValidateFormat(direDawaID))
	})

	s.Run("region code 12 is rejected", func() {
		_, err := Parse("9001011200000000")
		s.ErrorIs(err, ErrRegion)
	})

	s.Run("region code 00 is rejected", func() {
		_, err := Parse("9001010000000000")
		s.ErrorIs(err, ErrRegion)
	})

	s.Run("empty string is rejected", func() {
		s.False(ValidateFormat(""))
	})

	s.Run("fifteen digits is rejected", func() {
		_, err := Parse("123456010000000")
		s.ErrorIs(err, ErrLength)
	})

	s.Run("seventeen digits is rejected", func() {
		_, err := Parse(tigrayID + "0")
		s.ErrorIs(err, ErrLength)
	})

	s.Run("letters are rejected", func() {
		_, err := Parse("22051501000000a8")
		s.ErrorIs(err, ErrNonDigit)
	})

	s.Run("signs and spaces are rejected", func() {
		s.False(ValidateFormat("+205150100000008"))
		s.False(ValidateFormat(" 205150100000008"))
	})

	s.Run("multi-byte digits are rejected", func() {
		s.False(ValidateFormat("２205150100000008"))
	})

	s.Run("checksum mismatch is rejected", func() {
		_, err := Parse("2205150100000009")
		s.ErrorIs(err, ErrChecksum)
	})

	s.Run("sixteen digits with bad date fields is rejected", func() {
		s.False(ValidateFormat("1234560100000000"))
	})
}

func (s *FaydaIDSuite) TestBirthDateLooseness() {
	s.Run("month 00 is accepted", func() {
		s.True(ValidateFormat(monthZero))
	})

	s.Run("day 31 in February is accepted", func() {
		s.True(ValidateFormat(febThirty1))
	})

	s.Run("month 13 is rejected", func() {
		_, err := Parse("9013010100000000")
		s.ErrorIs(err, ErrBirthDate)
	})

	s.Run("day 00 is rejected", func() {
		_, err := Parse("2205000100000000")
		s.ErrorIs(err, ErrBirthDate)
	})

	s.Run("day 32 is rejected", func() {
		_, err := Parse("2205320100000000")
		s.ErrorIs(err, ErrBirthDate)
	})
}

func (s *FaydaIDSuite) TestChecksum() {
	s.Run("worked example sums to 42 and yields 8", func() {
		digit, ok := Checksum("220515010000000")
		s.True(ok)
		s.Equal(8, digit)
	})

	s.Run("multiple of ten yields 0", func() {
		digit, ok := Checksum("000000000000000")
		s.True(ok)
		s.Equal(0, digit)
	})

	s.Run("wrong length is reported", func() {
		_, ok := Checksum("22051501000000")
		s.False(ok)
	})

	s.Run("non digit is reported", func() {
		_, ok := Checksum("22051501000000x")
		s.False(ok)
	})
}

func (s *FaydaIDSuite) TestParseFields() {
	id, err := Parse(tigrayID)
	s.Require().NoError(err)

	s.Equal(tigrayID, id.String())
	s.Equal(5, id.BirthMonth())
	s.Equal(15, id.BirthDay())
	s.Equal("01", id.RegionCode())
	s.Equal("Tigray", id.Region())
	s.Equal(2022, id.BirthYear())
	s.Equal("0000000", id.Sequence())
	s.False(id.IsZero())
}

func (s *FaydaIDSuite) TestZeroID() {
	var id ID
	s.True(id.IsZero())
	s.Equal(0, id.BirthMonth())
	s.Equal("", id.RegionCode())
	s.Equal("", id.Region())
	s.Equal(0, id.BirthYear())
}

func (s *FaydaIDSuite) TestBirthYear() {
	cases := map[string]int{
		"00": 2000,
		"22": 2022,
		"24": 2024,
		"25": 1925,
		"90": 1990,
		"99": 1999,
	}
	for prefix, want := range cases {
		year, ok := BirthYear(prefix + "05150100000008")
		s.True(ok, prefix)
		s.Equal(want, year, prefix)
	}

	_, ok := BirthYear("x1")
	s.False(ok)
	_, ok = BirthYear("")
	s.False(ok)
}

func (s *FaydaIDSuite) TestRegions() {
	all := Regions()
	s.Require().Len(all, 11)
	s.Equal(Region{Code: "01", Name: "Tigray"}, all[0])
	s.Equal(Region{Code: "11", Name: "Dire Dawa"}, all[10])

	name, ok := RegionName("10")
	s.True(ok)
	s.Equal("Addis Ababa", name)

	_, ok = RegionName("12")
	s.False(ok)
}

// A valid body admits exactly one check digit, and it is the computed one.
func TestChecksumDigitIsUnique(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for n := 0; n < 500; n++ {
		body := randomBody(rng)
		want, ok := Checksum(body)
		require.True(t, ok)

		for d := 0; d <= 9; d++ {
			candidate := body + fmt.Sprint(d)
			assert.Equal(t, d == want, ValidateFormat(candidate), candidate)
		}
	}
}

func TestMalformedStringsAreRejected(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for n := 0; n < 500; n++ {
		body := randomBody(rng)
		digit, _ := Checksum(body)
		valid := body + fmt.Sprint(digit)
		require.True(t, ValidateFormat(valid))

		pos := rng.Intn(Length)
		corrupted := valid[:pos] + "x" + valid[pos+1:]
		assert.False(t, ValidateFormat(corrupted), corrupted)
		assert.False(t, ValidateFormat(valid[:rng.Intn(Length)]))
		assert.False(t, ValidateFormat(valid+strings.Repeat("0", 1+rng.Intn(3))))
	}
}

// randomBody returns 15 digits with a valid date and region.
func randomBody(rng *rand.Rand) string {
	return fmt.Sprintf("%02d%02d%02d%02d%07d",
		rng.Intn(100),
		rng.Intn(13),
		1+rng.Intn(31),
		1+rng.Intn(11),
		rng.Intn(10_000_000),
	)
}
