package workbook

import (
	"regexp"
	"strings"

	"github.com/walteh/smbprecheck/pkg/fault"
	"github.com/xuri/excelize/v2"
)

var addressPattern = regexp.MustCompile(`^[A-Za-z]{1,3}[0-9]{1,7}$`)

// ✅ ValidAddress reports whether address looks like a cell reference (1-3 letters, 1-7 digits)
func ValidAddress(address string) bool {
	return addressPattern.MatchString(strings.TrimSpace(address))
}

// CellName converts 1-based column/row coordinates into an A1 reference
func CellName(col, row int) string {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return ""
	}
	return name
}

// 📐 Range is an inclusive rectangle of cells
type Range struct {
	MinCol, MinRow int
	MaxCol, MaxRow int
}

// ParseRange parses an "A5:M700" style reference
func ParseRange(ref string) (Range, error) {
	from, to, ok := strings.Cut(strings.TrimSpace(ref), ":")
	if !ok {
		return Range{}, fault.Format("invalid range %q: expected FROM:TO", ref)
	}
	minCol, minRow, err := excelize.CellNameToCoordinates(from)
	if err != nil {
		return Range{}, fault.Format("invalid range %q: %v", ref, err)
	}
	maxCol, maxRow, err := excelize.CellNameToCoordinates(to)
	if err != nil {
		return Range{}, fault.Format("invalid range %q: %v", ref, err)
	}
	if minCol > maxCol || minRow > maxRow {
		return Range{}, fault.Format("invalid range %q: start is after end", ref)
	}
	return Range{MinCol: minCol, MinRow: minRow, MaxCol: maxCol, MaxRow: maxRow}, nil
}

// ParseColumns parses a "C:F" style column span into 1-based bounds
func ParseColumns(ref string) (int, int, error) {
	from, to, ok := strings.Cut(strings.TrimSpace(ref), ":")
	if !ok {
		to = from
	}
	minCol, err := excelize.ColumnNameToNumber(from)
	if err != nil {
		return 0, 0, fault.Format("invalid column span %q: %v", ref, err)
	}
	maxCol, err := excelize.ColumnNameToNumber(to)
	if err != nil {
		return 0, 0, fault.Format("invalid column span %q: %v", ref, err)
	}
	if minCol > maxCol {
		return 0, 0, fault.Format("invalid column span %q: start is after end", ref)
	}
	return minCol, maxCol, nil
}
