package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/phanxgames/gestures"
)

var (
	colorCyan  = lipgloss.Color("36")  // Teal - headings
	colorGreen = lipgloss.Color("35")  // Green - start callbacks
	colorAmber = lipgloss.Color("220") // Amber - end callbacks
	colorWhite = lipgloss.Color("255") // Bright white - values
	colorGray  = lipgloss.Color("245") // Gray - secondary text
)

var (
	styleTitle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleHeader = lipgloss.NewStyle().Bold(true).Foreground(colorGray)
	styleValue  = lipgloss.NewStyle().Foreground(colorWhite)
	styleStart  = lipgloss.NewStyle().Foreground(colorGreen)
	styleEnd    = lipgloss.NewStyle().Foreground(colorAmber)
	styleDim    = lipgloss.NewStyle().Foreground(colorGray)
)

// column widths for the emission table
var columnWidths = []int{5, 18, 10, 10, 12, 8}

// emissionRow is one fired callback observed during a replay.
type emissionRow struct {
	Index     int                   `json:"index"`
	Kind      gestures.CallbackKind `json:"kind"`
	Transform gestures.Transform    `json:"transform"`
}

func cell(style lipgloss.Style, width int, s string) string {
	return style.Width(width).Render(s)
}

func kindStyle(k gestures.CallbackKind) lipgloss.Style {
	switch k {
	case gestures.CallbackStart, gestures.CallbackMultiTouchStart,
		gestures.CallbackRotateStart, gestures.CallbackScaleStart:
		return styleStart
	case gestures.CallbackEnd, gestures.CallbackRelease, gestures.CallbackMultiTouchEnd,
		gestures.CallbackRotateEnd, gestures.CallbackScaleEnd:
		return styleEnd
	}
	return styleValue
}

func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// printTable writes the emissions as an aligned, styled table followed by
// the final transform.
func printTable(w io.Writer, title string, rows []emissionRow, final gestures.Transform) {
	fmt.Fprintln(w, styleTitle.Render(title))

	headers := []string{"#", "callback", "left", "top", "rotate", "scale"}
	var line string
	for i, h := range headers {
		line += cell(styleHeader, columnWidths[i], h)
	}
	fmt.Fprintln(w, line)

	for _, r := range rows {
		t := r.Transform
		fmt.Fprintln(w,
			cell(styleDim, columnWidths[0], strconv.Itoa(r.Index))+
				cell(kindStyle(r.Kind), columnWidths[1], r.Kind.String())+
				cell(styleValue, columnWidths[2], formatNum(t.Left))+
				cell(styleValue, columnWidths[3], formatNum(t.Top))+
				cell(styleValue, columnWidths[4], t.Rotate.String())+
				cell(styleValue, columnWidths[5], formatNum(t.Scale)))
	}
	fmt.Fprintf(w, "%s %s\n", styleHeader.Render("final:"), styleValue.Render(final.String()))
}
