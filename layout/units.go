package layout

import (
	"fmt"
	"strconv"
	"strings"
)

// This file defines unit-safe lengths. The layout unit is the raw 26.6 value
// the font engine reports: 1/64 pixel at 72 dpi, i.e. 1/64 pt.

// Unit represents the unit of a length value as written in a job file.
type Unit int

const (
	UnitNone Unit = iota // layout units
	UnitMM               // millimeters
	UnitCM               // centimeters
	UnitIN               // inches
	UnitPT               // points
	UnitEM               // multiples of the character size
)

// Conversion constants.
const (
	PtToMm     = 0.352777
	MmToPt     = 1.0 / PtToMm
	UnitsPerPt = 64.0
)

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
	case UnitEM:
		return "em"
	default:
		return ""
	}
}

// Length preserves a numeric value with its unit.
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

func (l Length) String() string {
	return strconv.FormatFloat(l.Value, 'g', -1, 64) + UnitToString(l.Unit)
}

// ToPT converts an absolute length to points. Layout units are divided by
// UnitsPerPt; em lengths need ToUnits.
func (l Length) ToPT() float64 {
	switch l.Unit {
	case UnitMM:
		return l.Value * MmToPt
	case UnitCM:
		return l.Value * 10 * MmToPt
	case UnitIN:
		return l.Value * 72
	case UnitPT:
		return l.Value
	default:
		return l.Value / UnitsPerPt
	}
}

// ToUnits 转换为排版单位；em 为字号（排版单位），仅用于 UnitEM。
func (l Length) ToUnits(em float64) float64 {
	switch l.Unit {
	case UnitNone:
		return l.Value
	case UnitEM:
		return l.Value * em
	default:
		return l.ToPT() * UnitsPerPt
	}
}

// UnitsToMM converts layout units to millimeters.
func UnitsToMM(u float64) float64 { return u / UnitsPerPt * PtToMm }

// ParseLength 解析带单位的长度，例如 "40"、"-2.5pt"、"3mm"、"0.2em"。
func ParseLength(value string) (Length, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return Length{}, fmt.Errorf("长度为空")
	}
	unit := UnitNone
	num := v
	for _, suf := range []struct {
		s string
		u Unit
	}{{"mm", UnitMM}, {"cm", UnitCM}, {"in", UnitIN}, {"pt", UnitPT}, {"em", UnitEM}, {"u", UnitNone}} {
		if strings.HasSuffix(v, suf.s) {
			unit = suf.u
			num = strings.TrimSpace(strings.TrimSuffix(v, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Length{}, fmt.Errorf("无法解析长度 %q: %w", value, err)
	}
	return Length{Value: f, Unit: unit}, nil
}
