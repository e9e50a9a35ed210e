package handlers

import (
	"math"
	"strconv"

	"worddee/internal/models"
)

type StatsCardView struct {
	Title string
	Value string
	Icon  string
}

// NewStatsCard builds a stats card, defaulting the icon
func NewStatsCard(title, value, icon string) StatsCardView {
	if icon == "" {
		icon = "📊"
	}
	return StatsCardView{Title: title, Value: value, Icon: icon}
}

func summaryCards(s models.Summary) []StatsCardView {
	return []StatsCardView{
		NewStatsCard("Total Practices", strconv.Itoa(s.TotalPractices), "📝"),
		NewStatsCard("Average Score", models.FormatScore(s.AverageScore), "⭐"),
		NewStatsCard("Words Learned", strconv.Itoa(s.TotalWordsPracticed), "📚"),
	}
}

// bar colours per level: fill, border
var levelPalette = map[models.Difficulty][2]string{
	models.Beginner:     {"#10B981", "#059669"},
	models.Intermediate: {"#F59E0B", "#D97706"},
	models.Advanced:     {"#EF4444", "#DC2626"},
}

// chart geometry in SVG user units
const (
	chartWidth      = 400
	chartHeight     = 256
	chartPlotLeft   = 36.0
	chartPlotRight  = 392.0
	chartPlotTop    = 12.0
	chartPlotBottom = 228.0
	chartMaxTicks   = 10
)

type BarChartView struct {
	Label      string
	Width      int
	Height     int
	PlotLeft   float64
	PlotRight  float64
	TickLabelX float64
	AxisLabelY float64
	AxisMax    int
	Step       int
	Bars       []BarView
	Ticks      []TickView
}

type BarView struct {
	Label  string
	Count  int
	X      float64
	Y      float64
	Width  float64
	Height float64
	LabelX float64
	Fill   string
	Border string
}

type TickView struct {
	Value int
	Y     float64
}

// NewBarChart lays out one bar per difficulty level on an integer axis
// starting at zero
func NewBarChart(dist models.LevelDistribution) BarChartView {
	levels := models.Levels()
	counts := make([]int, len(levels))
	maxCount := 0
	for i, level := range levels {
		counts[i] = max(dist.Count(level), 0)
		maxCount = max(maxCount, counts[i])
	}

	step := max(int(math.Ceil(float64(maxCount)/chartMaxTicks)), 1)
	axisMax := max((maxCount+step-1)/step*step, step)
	plotHeight := chartPlotBottom - chartPlotTop

	view := BarChartView{
		Label:      "Practice Count",
		Width:      chartWidth,
		Height:     chartHeight,
		PlotLeft:   chartPlotLeft,
		PlotRight:  chartPlotRight,
		TickLabelX: chartPlotLeft - 6,
		AxisLabelY: chartPlotBottom + 18,
		AxisMax:    axisMax,
		Step:       step,
	}

	for v := 0; v <= axisMax; v += step {
		view.Ticks = append(view.Ticks, TickView{
			Value: v,
			Y:     chartPlotBottom - float64(v)/float64(axisMax)*plotHeight,
		})
	}

	slot := (chartPlotRight - chartPlotLeft) / float64(len(levels))
	barWidth := slot * 0.6
	for i, level := range levels {
		height := float64(counts[i]) / float64(axisMax) * plotHeight
		x := chartPlotLeft + float64(i)*slot + (slot-barWidth)/2
		palette := levelPalette[level]
		view.Bars = append(view.Bars, BarView{
			Label:  string(level),
			Count:  counts[i],
			X:      x,
			Y:      chartPlotBottom - height,
			Width:  barWidth,
			Height: height,
			LabelX: x + barWidth/2,
			Fill:   palette[0],
			Border: palette[1],
		})
	}
	return view
}

type HistoryItemView struct {
	Word        string
	Sentence    string
	Score       string
	Tone        string
	PracticedAt string
}

type HistoryView struct {
	Items []HistoryItemView
}

func newHistoryView(items []models.HistoryItem) HistoryView {
	view := HistoryView{Items: make([]HistoryItemView, 0, len(items))}
	for _, item := range items {
		practicedAt := ""
		if !item.PracticedAt.IsZero() {
			practicedAt = item.PracticedAt.Format("Jan 2, 2006 3:04 PM")
		}
		view.Items = append(view.Items, HistoryItemView{
			Word:        item.Word,
			Sentence:    item.UserSentence,
			Score:       models.FormatScore(item.Score),
			Tone:        historyTone(item.Score),
			PracticedAt: practicedAt,
		})
	}
	return view
}

func historyTone(score float64) string {
	switch {
	case score >= 8:
		return "success"
	case score >= 6:
		return "warning"
	default:
		return "danger"
	}
}

func feedbackTone(score float64) string {
	if score >= 7 {
		return "good"
	}
	return "fair"
}
