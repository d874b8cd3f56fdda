package visuals

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// maxChartPoints bounds how many samples a chart renders; longer series are
// downsampled so mermaid stays readable.
const maxChartPoints = 60

// GenerateProfitLossChart creates a Mermaid xychart-beta line chart of the
// cumulative profit/loss series.
func GenerateProfitLossChart(cumulative []float64) string {
	if len(cumulative) == 0 {
		return ""
	}

	points, indices := Downsample(cumulative, maxChartPoints)

	var labels []string
	var values []string
	for i, v := range points {
		labels = append(labels, fmt.Sprintf("%d", indices[i]+1))
		values = append(values, fmt.Sprintf("%.1f", v))
	}

	// Dynamically scale the Y-axis with breathing room on both sides.
	minY, maxY := points[0], points[0]
	for _, v := range points {
		minY = math.Min(minY, v)
		maxY = math.Max(maxY, v)
	}
	if minY == maxY {
		minY, maxY = minY-1, maxY+1
	}
	pad := (maxY - minY) * 0.1

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString("    title \"Cumulative Profit/Loss\"\n")
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"P/L\" %d --> %d\n", int(math.Floor(minY-pad)), int(math.Ceil(maxY+pad))))
	sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(values, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// GenerateDistributionChart creates a Mermaid bar chart of the per-prize
// win percentages. Prizes render in ID order for stable output.
func GenerateDistributionChart(distribution map[string]float64) string {
	if len(distribution) == 0 {
		return ""
	}

	ids := make([]string, 0, len(distribution))
	for id := range distribution {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var labels []string
	var values []string
	maxY := 0.0
	for _, id := range ids {
		labels = append(labels, fmt.Sprintf("%q", id))
		values = append(values, fmt.Sprintf("%.2f", distribution[id]))
		if distribution[id] > maxY {
			maxY = distribution[id]
		}
	}
	if maxY == 0 {
		maxY = 1
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString("    title \"Win Distribution (%)\"\n")
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Wins %%\" 0 --> %d\n", int(math.Ceil(maxY*1.1))))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(values, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// Downsample reduces a series to at most limit evenly spaced points,
// always keeping the final point. It returns the sampled values and their
// original indices.
func Downsample(series []float64, limit int) ([]float64, []int) {
	if limit <= 0 || len(series) <= limit {
		indices := make([]int, len(series))
		for i := range series {
			indices[i] = i
		}
		return series, indices
	}

	values := make([]float64, 0, limit)
	indices := make([]int, 0, limit)
	step := float64(len(series)-1) / float64(limit-1)
	for i := 0; i < limit; i++ {
		idx := int(math.Round(float64(i) * step))
		if idx >= len(series) {
			idx = len(series) - 1
		}
		values = append(values, series[idx])
		indices = append(indices, idx)
	}
	return values, indices
}
