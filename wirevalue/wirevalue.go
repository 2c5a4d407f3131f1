// Package wirevalue parses the string form of scalar values found in HTTP
// headers, query parameters and URI labels. Code generated by restbind calls
// these functions from its response decoders.
package wirevalue

import (
	"encoding/base64"
	"math/big"
	"strconv"
	"time"

	smithytime "github.com/aws/smithy-go/time"
	"github.com/pkg/errors"
)

// ParseBoolean accepts exactly "true" or "false".
func ParseBoolean(s string) (bool, error) {
	switch s {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, errors.Errorf("cannot parse %q as Boolean, expected true or false", s)
}

// ParseByte parses a signed integer literal that must fit in 8 bits. The base
// is implied by the literal's prefix, as with strconv.ParseInt base 0.
func ParseByte(s string) (int8, error) {
	v, err := parseInt(s, 8, "Byte")
	return int8(v), err
}

// ParseShort parses a signed integer literal that must fit in 16 bits.
func ParseShort(s string) (int16, error) {
	v, err := parseInt(s, 16, "Short")
	return int16(v), err
}

// ParseInteger parses a signed integer literal that must fit in 32 bits.
func ParseInteger(s string) (int32, error) {
	v, err := parseInt(s, 32, "Integer")
	return int32(v), err
}

// ParseLong parses a signed integer literal that must fit in 64 bits.
func ParseLong(s string) (int64, error) {
	return parseInt(s, 64, "Long")
}

func parseInt(s string, bits int, kind string) (int64, error) {
	v, err := strconv.ParseInt(s, 0, bits)
	if err != nil {
		return 0, errors.Wrapf(err, "cannot parse %q as %s", s, kind)
	}
	return v, nil
}

// ParseFloat parses a 32-bit floating point literal.
func ParseFloat(s string) (float32, error) {
	v, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, errors.Wrapf(err, "cannot parse %q as Float", s)
	}
	return float32(v), nil
}

// ParseDouble parses a 64-bit floating point literal.
func ParseDouble(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "cannot parse %q as Double", s)
	}
	return v, nil
}

// ParseBigInteger parses an arbitrary precision integer literal, base implied
// by its prefix.
func ParseBigInteger(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return nil, errors.New("incorrect conversion from string to BigInteger type")
	}
	return v, nil
}

// ParseBigDecimal parses an arbitrary precision decimal literal, base implied
// by its prefix.
func ParseBigDecimal(s string) (*big.Float, error) {
	v, _, err := new(big.Float).Parse(s, 0)
	if err != nil {
		return nil, errors.New("incorrect conversion from string to BigDecimal type")
	}
	return v, nil
}

// ParseBlob decodes standard base64.
func ParseBlob(s string) ([]byte, error) {
	v, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot decode %q as base64 Blob", s)
	}
	return v, nil
}

// ParseDateTime parses an RFC 3339 date-time timestamp.
func ParseDateTime(s string) (time.Time, error) {
	t, err := smithytime.ParseDateTime(s)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "cannot parse %q as date-time Timestamp", s)
	}
	return t, nil
}

// ParseHTTPDate parses an RFC 7231 IMF-fixdate timestamp.
func ParseHTTPDate(s string) (time.Time, error) {
	t, err := smithytime.ParseHTTPDate(s)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "cannot parse %q as http-date Timestamp", s)
	}
	return t, nil
}

// ParseEpochSeconds parses decimal seconds since the Unix epoch; fractional
// seconds are allowed.
func ParseEpochSeconds(s string) (time.Time, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "cannot parse %q as epoch-seconds Timestamp", s)
	}
	return smithytime.ParseEpochSeconds(f), nil
}
