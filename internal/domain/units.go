package domain

import (
	"fmt"
	"math"
	"strings"
)

type FlowUnit string

const (
	UnitKB FlowUnit = "KB"
	UnitMB FlowUnit = "MB"
	UnitGB FlowUnit = "GB"
	UnitTB FlowUnit = "TB"
)

var flowUnitExponent = map[FlowUnit]int{
	UnitKB: 0,
	UnitMB: 1,
	UnitGB: 2,
	UnitTB: 3,
}

// ParseFlowUnit accepts unit names case-insensitively.
func ParseFlowUnit(raw string) (FlowUnit, error) {
	unit := FlowUnit(strings.ToUpper(strings.TrimSpace(raw)))
	if _, ok := flowUnitExponent[unit]; !ok {
		return "", fmt.Errorf("unsupported flow unit %q", raw)
	}
	return unit, nil
}

// ConvertFlow converts a data amount between binary units and rounds the
// result to precision decimal places.
func ConvertFlow(value float64, from, to FlowUnit, precision int) float64 {
	exponent := flowUnitExponent[from] - flowUnitExponent[to]
	return Round(value*math.Pow(1024, float64(exponent)), precision)
}

// Round rounds half away from zero to the given number of decimal places.
func Round(value float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(value*scale) / scale
}
