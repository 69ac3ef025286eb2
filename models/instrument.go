package models

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ErrMalformedInstrument is returned by ParseInstrument for names that do not
// follow the UNDERLYING-DDMMMYY-STRIKE-C|P convention. Callers are expected to
// skip such instruments rather than abort a scan.
var ErrMalformedInstrument = errors.New("malformed instrument name")

// SettlementHour is the UTC hour at which Deribit options settle on their
// expiry date.
const SettlementHour = 8

type OptionType string

const (
	Call OptionType = "call"
	Put  OptionType = "put"
)

var monthCodes = map[string]time.Month{
	"JAN": time.January,
	"FEB": time.February,
	"MAR": time.March,
	"APR": time.April,
	"MAY": time.May,
	"JUN": time.June,
	"JUL": time.July,
	"AUG": time.August,
	"SEP": time.September,
	"OCT": time.October,
	"NOV": time.November,
	"DEC": time.December,
}

var monthAbbrevs = [12]string{"JAN", "FEB", "MAR", "APR", "MAY", "JUN", "JUL", "AUG", "SEP", "OCT", "NOV", "DEC"}

// Instrument is a decoded option contract identifier.
type Instrument struct {
	Name       string     // Raw name, e.g. "BTC-6FEB26-60000-C"
	Underlying string     // Currency code, e.g. "BTC"
	Expiry     time.Time  // Settlement instant, 08:00 UTC on the expiry date
	Strike     float64    // Strike price in USD
	Type       OptionType // Call or Put
}

func (i Instrument) String() string {
	return i.Name
}

// Symbol rebuilds the canonical exchange name from the decoded fields. Names
// parsed with a leading zero day ("06FEB26") come back canonical ("6FEB26").
func (i Instrument) Symbol() string {
	side := "C"
	if i.Type == Put {
		side = "P"
	}
	return i.Underlying + "-" +
		strconv.Itoa(i.Expiry.Day()) + monthAbbrevs[i.Expiry.Month()-1] + fmt.Sprintf("%02d", i.Expiry.Year()%100) + "-" +
		strconv.FormatFloat(i.Strike, 'f', -1, 64) + "-" + side
}

// ParseInstrument decodes a Deribit-style option name of the form
// UNDERLYING-DDMMMYY-STRIKE-C|P. All failures wrap ErrMalformedInstrument.
func ParseInstrument(name string) (Instrument, error) {
	parts := strings.Split(name, "-")
	if len(parts) != 4 {
		return Instrument{}, fmt.Errorf("%w: %q: expected 4 dash-separated fields, got %d", ErrMalformedInstrument, name, len(parts))
	}
	underlying := parts[0]
	if underlying == "" {
		return Instrument{}, fmt.Errorf("%w: %q: empty underlying", ErrMalformedInstrument, name)
	}
	expiry, err := parseExpiryCode(parts[1])
	if err != nil {
		return Instrument{}, fmt.Errorf("%w: %q: %v", ErrMalformedInstrument, name, err)
	}
	strike, err := strconv.ParseFloat(parts[2], 64)
	if err != nil || math.IsNaN(strike) || math.IsInf(strike, 0) || strike <= 0 {
		return Instrument{}, fmt.Errorf("%w: %q: bad strike %q", ErrMalformedInstrument, name, parts[2])
	}
	var optionType OptionType
	switch parts[3] {
	case "C":
		optionType = Call
	case "P":
		optionType = Put
	default:
		return Instrument{}, fmt.Errorf("%w: %q: bad option type %q", ErrMalformedInstrument, name, parts[3])
	}
	return Instrument{
		Name:       name,
		Underlying: underlying,
		Expiry:     expiry,
		Strike:     strike,
		Type:       optionType,
	}, nil
}

// parseExpiryCode decodes DDMMMYY (day without leading zero, three letter
// month, two digit year) into the settlement instant at 08:00 UTC.
func parseExpiryCode(code string) (time.Time, error) {
	if len(code) < 6 || len(code) > 7 {
		return time.Time{}, fmt.Errorf("bad expiry code %q", code)
	}
	day, err := strconv.Atoi(code[:len(code)-5])
	if err != nil || day < 1 {
		return time.Time{}, fmt.Errorf("bad expiry day in %q", code)
	}
	month, ok := monthCodes[strings.ToUpper(code[len(code)-5:len(code)-2])]
	if !ok {
		return time.Time{}, fmt.Errorf("bad expiry month in %q", code)
	}
	year, err := strconv.Atoi(code[len(code)-2:])
	if err != nil {
		return time.Time{}, fmt.Errorf("bad expiry year in %q", code)
	}
	t := time.Date(2000+year, month, day, SettlementHour, 0, 0, 0, time.UTC)
	// time.Date normalizes out-of-range days (30FEB becomes 2MAR), so a
	// round-trip mismatch means the calendar date never existed.
	if t.Day() != day || t.Month() != month {
		return time.Time{}, fmt.Errorf("no such date %q", code)
	}
	return t, nil
}
