package pricing

import (
	"strconv"
	"strings"
	"unicode"
)

// Unit is a binary (power of 1024) size unit.
type Unit string

const (
	KiB Unit = "KiB"
	MiB Unit = "MiB"
	GiB Unit = "GiB"
	TiB Unit = "TiB"
)

var unitBytes = map[Unit]float64{
	KiB: 1 << 10, // 1,024
	MiB: 1 << 20, // 1,048,576
	GiB: 1 << 30, // 1,073,741,824
	TiB: 1 << 40, // 1,099,511,627,776
}

// ParseUnit resolves a unit identifier. Matching is exact: "kib" is rejected.
func ParseUnit(s string) (Unit, error) {
	u := Unit(s)
	if _, ok := unitBytes[u]; !ok {
		return "", &UnitError{Unit: s}
	}
	return u, nil
}

// UnitToBytes returns the number of bytes in one unit.
func UnitToBytes(u Unit) (float64, error) {
	b, ok := unitBytes[u]
	if !ok {
		return 0, &UnitError{Unit: string(u)}
	}
	return b, nil
}

// QuantityToBytes returns the number of bytes in x units.
func QuantityToBytes(x float64, u Unit) (float64, error) {
	b, err := UnitToBytes(u)
	if err != nil {
		return 0, err
	}
	return x * b, nil
}

// BytesToUnit converts a byte count into the given unit.
func BytesToUnit(bytes float64, u Unit) (float64, error) {
	b, err := UnitToBytes(u)
	if err != nil {
		return 0, err
	}
	return bytes / b, nil
}

// ParseSize parses a size such as "50TiB", "1.5 GiB" or a bare byte count
// like "1099511627776" and returns the number of bytes.
func ParseSize(s string) (float64, error) {
	s = strings.TrimSpace(s)
	i := strings.IndexFunc(s, unicode.IsLetter)
	if i < 0 {
		return parseNumber(s)
	}

	x, err := parseNumber(strings.TrimSpace(s[:i]))
	if err != nil {
		return 0, err
	}
	u, err := ParseUnit(s[i:])
	if err != nil {
		return 0, err
	}
	return QuantityToBytes(x, u)
}

func parseNumber(s string) (float64, error) {
	x, err := strconv.ParseFloat(strings.ReplaceAll(s, "_", ""), 64)
	if err != nil {
		return 0, &SizeError{Input: s, Err: err}
	}
	return x, nil
}

// readableSizes lists decimal units largest first; BytesToReadable depends on the order.
var readableSizes = []struct {
	unit string
	size float64
}{
	{"TB", 1_000_000_000_000},
	{"GB", 1_000_000_000},
	{"MB", 1_000_000},
	{"KB", 1_000},
}

// BytesToReadable formats a byte count with the largest decimal unit it
// reaches, rounded to two places: "1.5 MB", "2.0 TB", "500 Bytes".
func BytesToReadable(bytes float64) string {
	for _, rs := range readableSizes {
		if bytes >= rs.size {
			return roundedString(bytes/rs.size, true) + " " + rs.unit
		}
	}
	return roundedString(bytes, false) + " Bytes"
}

// roundedString rounds v to two decimals and drops trailing zeros. With
// keepPoint an integral value keeps a single ".0".
func roundedString(v float64, keepPoint bool) string {
	s := strings.TrimRight(strconv.FormatFloat(v, 'f', 2, 64), "0")
	if strings.HasSuffix(s, ".") {
		if keepPoint {
			return s + "0"
		}
		return strings.TrimSuffix(s, ".")
	}
	return s
}
