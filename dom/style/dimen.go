package style

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/npillmayer/tyse/core/percent"
)

// SizeKind tells how to interpret a Size.
type SizeKind uint8

// Kinds of sizes. SizeAuto is the zero value and stands for "auto" for widths
// and heights, and for "none" for min/max constraints.
const (
	SizeAuto SizeKind = iota
	SizeCells
	SizePercent
)

// Size is an option type for a width, height or a min/max constraint.
// Terminals are measured in cells; "px" units are treated as cells.
type Size struct {
	Kind    SizeKind
	Cells   int
	Percent percent.Percent
}

// Auto is the unset size.
func Auto() Size {
	return Size{}
}

// Cells creates a fixed size of n cells.
func Cells(n int) Size {
	return Size{Kind: SizeCells, Cells: n}
}

// Percentage creates a size relative to the containing block.
func Percentage(p percent.Percent) Size {
	return Size{Kind: SizePercent, Percent: p}
}

// IsAuto is true for unset sizes.
func (s Size) IsAuto() bool {
	return s.Kind == SizeAuto
}

// Resolve returns the size in cells, given the size of the containing block.
// Auto sizes resolve to the fallback value.
func (s Size) Resolve(container, fallback int) int {
	switch s.Kind {
	case SizeCells:
		return s.Cells
	case SizePercent:
		return container * int(s.Percent) / 100
	}
	return fallback
}

func (s Size) String() string {
	switch s.Kind {
	case SizeCells:
		return strconv.Itoa(s.Cells)
	case SizePercent:
		return s.Percent.String()
	}
	return "auto"
}

// ParseSize interprets a width/height property: "auto", "none", "N", "Npx"
// or "N%".
func ParseSize(p Property) (Size, error) {
	s := string(p.Normalized())
	switch s {
	case "auto", "none":
		return Auto(), nil
	}
	if strings.HasSuffix(s, "%") {
		f, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil || f < 0 {
			return Size{}, fmt.Errorf("malformed percentage %q: %w", s, ErrInvalidValue)
		}
		return Percentage(percent.FromFloat(f)), nil
	}
	n, err := ParseCells(p)
	if err != nil {
		return Size{}, err
	}
	if n < 0 {
		return Size{}, fmt.Errorf("negative size %q: %w", s, ErrInvalidValue)
	}
	return Cells(n), nil
}

// MaxCells bounds lengths in cells, in either direction. Sums of a few
// lengths and screen coordinates stay far from overflowing an int.
const MaxCells = 1 << 20

// ParseCells interprets a length in cells: "N" or "Npx". Fractional lengths
// are truncated. Lengths beyond ±MaxCells are invalid.
func ParseCells(p Property) (int, error) {
	s := strings.TrimSuffix(string(p.Normalized()), "px")
	if s == "" {
		return 0, fmt.Errorf("empty length: %w", ErrInvalidValue)
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n > MaxCells || n < -MaxCells {
			return 0, fmt.Errorf("length %q out of range: %w", p, ErrInvalidValue)
		}
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("malformed length %q: %w", p, ErrInvalidValue)
	}
	if math.Abs(f) > MaxCells {
		return 0, fmt.Errorf("length %q out of range: %w", p, ErrInvalidValue)
	}
	return int(f), nil
}

// Edges holds per-side values for padding and margin.
type Edges struct {
	Top, Right, Bottom, Left int
}

// EdgesAll creates edges with all four sides set to n.
func EdgesAll(n int) Edges {
	return Edges{n, n, n, n}
}

// Horizontal returns the sum of left and right.
func (e Edges) Horizontal() int {
	return e.Left + e.Right
}

// Vertical returns the sum of top and bottom.
func (e Edges) Vertical() int {
	return e.Top + e.Bottom
}

func (e Edges) String() string {
	if e.Top == e.Right && e.Right == e.Bottom && e.Bottom == e.Left {
		return strconv.Itoa(e.Top)
	}
	return fmt.Sprintf("%d %d %d %d", e.Top, e.Right, e.Bottom, e.Left)
}

// ParseOpacity interprets "0.5", "50%" or the keywords "0" and "1".
// The result is clamped to [0…1].
func ParseOpacity(p Property) (float64, error) {
	s := string(p.Normalized())
	scale := 1.0
	if strings.HasSuffix(s, "%") {
		s, scale = strings.TrimSuffix(s, "%"), 100.0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return 0, fmt.Errorf("malformed opacity %q: %w", p, ErrInvalidValue)
	}
	return math.Max(0, math.Min(1, f/scale)), nil
}

// ParseInt interprets an integer property such as z-index or flex-grow.
func ParseInt(p Property) (int, error) {
	n, err := strconv.Atoi(string(p.Normalized()))
	if err != nil {
		return 0, fmt.Errorf("malformed integer %q: %w", p, ErrInvalidValue)
	}
	return n, nil
}
