package layout

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// This file defines unit-safe lengths and the grammar used to read them from
// markup attributes. Resolved lengths are expressed in points.

// ErrUnresolvableUnit reports a length expression that cannot be read.
var ErrUnresolvableUnit = errors.New("unresolvable unit")

// Unit represents the unit of a length value as written in markup.
type Unit int

const (
	UnitNone Unit = iota // bare numbers, read as points
	UnitMM               // millimeters
	UnitCM               // centimeters
	UnitIN               // inches
	UnitPT               // points
)

// Conversion constants between pt and mm.
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
)

var unitSuffixes = map[string]Unit{
	"":     UnitNone,
	"mm":   UnitMM,
	"cm":   UnitCM,
	"in":   UnitIN,
	"inch": UnitIN,
	"pt":   UnitPT,
}

// UnitToString returns a short string for a Unit value.
func UnitToString(u Unit) string {
	switch u {
	case UnitMM:
		return "mm"
	case UnitCM:
		return "cm"
	case UnitIN:
		return "in"
	case UnitPT:
		return "pt"
	default:
		return ""
	}
}

// Length preserves a numeric value with its unit.
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

// ToPT converts the length to points. Bare numbers already are points.
func (l Length) ToPT() float64 {
	switch l.Unit {
	case UnitMM:
		return l.Value * MmToPt
	case UnitCM:
		return l.Value * 10 * MmToPt
	case UnitIN:
		return l.Value * 72
	default:
		return l.Value
	}
}

// ToMM converts the length to millimeters.
func (l Length) ToMM() float64 { return l.ToPT() * PtToMm }

func (l Length) String() string {
	return strconv.FormatFloat(l.Value, 'f', -1, 64) + UnitToString(l.Unit)
}

var (
	unitLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
		{Name: "Number", Pattern: `[-+]?(?:\d+\.\d*|\.\d+|\d+)`},
		{Name: "Suffix", Pattern: `[A-Za-z]+`},
	})

	lengthParser = participle.MustBuild[lengthExpr](
		participle.Lexer(unitLexer),
		participle.Elide("Whitespace"),
	)
	lengthListParser = participle.MustBuild[lengthList](
		participle.Lexer(unitLexer),
		participle.Elide("Whitespace"),
	)
)

// lengthExpr is a single number with an optional unit suffix ("2.5cm", "72").
type lengthExpr struct {
	Number string `parser:"@Number"`
	Suffix string `parser:"@Suffix?"`
}

// lengthList is a whitespace separated sequence of lengths ("1cm 2cm 19cm 2cm").
type lengthList struct {
	Items []*lengthExpr `parser:"@@*"`
}

func (e *lengthExpr) length() (Length, error) {
	v, err := strconv.ParseFloat(e.Number, 64)
	if err != nil {
		return Length{}, fmt.Errorf("%w: %q: %v", ErrUnresolvableUnit, e.Number, err)
	}
	u, ok := unitSuffixes[strings.ToLower(e.Suffix)]
	if !ok {
		return Length{}, fmt.Errorf("%w: unknown unit %q", ErrUnresolvableUnit, e.Suffix)
	}
	return Length{Value: v, Unit: u}, nil
}

// ParseLength reads a single length expression preserving its unit.
func ParseLength(value string) (Length, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return Length{}, fmt.Errorf("%w: empty length", ErrUnresolvableUnit)
	}
	expr, err := lengthParser.ParseString("", v)
	if err != nil {
		return Length{}, fmt.Errorf("%w: %q: %v", ErrUnresolvableUnit, value, err)
	}
	return expr.length()
}

// ResolveUnit converts a length expression to points.
func ResolveUnit(value string) (float64, error) {
	l, err := ParseLength(value)
	if err != nil {
		return 0, err
	}
	return l.ToPT(), nil
}

// ParseLengths reads a whitespace separated list of lengths.
func ParseLengths(value string) ([]Length, error) {
	list, err := lengthListParser.ParseString("", value)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrUnresolvableUnit, value, err)
	}
	out := make([]Length, 0, len(list.Items))
	for _, item := range list.Items {
		l, err := item.length()
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}
