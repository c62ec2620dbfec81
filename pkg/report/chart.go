package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	chartWidth  = 300
	chartHeight = 80
	maxGPA      = 10
)

// ChartFileName is the default name of the exported trend chart.
const ChartFileName = "cgpa_trend.svg"

type ChartPoint struct {
	X, Y float64
}

// ChartPoints places each GPA of the trend on the chart canvas: evenly spaced
// along x, with y growing downwards from a GPA of 10 at the top.
func ChartPoints(trend []float64) []ChartPoint {
	if len(trend) < 2 {
		return nil
	}
	points := make([]ChartPoint, len(trend))
	for i, gpa := range trend {
		points[i] = ChartPoint{
			X: float64(i) / float64(len(trend)-1) * chartWidth,
			Y: chartHeight - (gpa/maxGPA)*chartHeight,
		}
	}
	return points
}

// Chart renders the trend as an SVG line with a dot per semester. Nothing is
// drawn with fewer than two semesters of data.
func Chart(trend []float64) (string, bool) {
	points := ChartPoints(trend)
	if points == nil {
		return "", false
	}

	coords := make([]string, len(points))
	for i, p := range points {
		coords[i] = formatFloat(p.X) + "," + formatFloat(p.Y)
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="100%%" height="100%%" viewBox="0 0 %d %d" overflow="visible">`, chartWidth, chartHeight)
	b.WriteString("\n")
	fmt.Fprintf(&b, `  <polyline points="%s" class="chart-line" fill="none" stroke="currentColor" />`, strings.Join(coords, " "))
	b.WriteString("\n")
	for _, p := range points {
		fmt.Fprintf(&b, `  <circle cx="%s" cy="%s" r="3" class="chart-dot" />`, formatFloat(p.X), formatFloat(p.Y))
		b.WriteString("\n")
	}
	b.WriteString("</svg>\n")
	return b.String(), true
}

var ticks = []rune("▁▂▃▄▅▆▇█")

// Sparkline is the terminal rendition of Chart, on the same fixed 0-10 scale.
func Sparkline(trend []float64) string {
	if len(trend) < 2 {
		return ""
	}
	line := make([]rune, len(trend))
	for i, gpa := range trend {
		gpa = math.Max(0, math.Min(maxGPA, gpa))
		line[i] = ticks[int(math.Round(gpa/maxGPA*float64(len(ticks)-1)))]
	}
	return string(line)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
