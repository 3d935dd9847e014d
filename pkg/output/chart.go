package output

import (
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/iwvelando/loan-simulator/internal/simulation"
	"github.com/iwvelando/loan-simulator/pkg/amortization"
)

// Series identifies one line of a schedule chart.
type Series int

const (
	SeriesCumulativeInterest Series = iota
	SeriesCumulativeAmortization
	SeriesCumulativeCorrection
	SeriesClosingBalance
)

// SeriesStyle is how a series is labelled and drawn.
type SeriesStyle struct {
	Label string
	Color string
}

// FallbackStyle is used for a series with no registered style.
var FallbackStyle = SeriesStyle{Label: "Série", Color: "grey"}

var seriesStyles = map[Series]SeriesStyle{
	SeriesCumulativeInterest:     {Label: "Juros acumulados", Color: "green"},
	SeriesCumulativeAmortization: {Label: "Amortização acumulada", Color: "blue"},
	SeriesCumulativeCorrection:   {Label: "Correção acumulada", Color: "orange"},
	SeriesClosingBalance:         {Label: "Saldo devedor", Color: "red"},
}

// Style returns the registered style of a series.
func (s Series) Style() SeriesStyle {
	if style, ok := seriesStyles[s]; ok {
		return style
	}
	return FallbackStyle
}

// SeriesData is one series ready to plot, rounded to cents.
type SeriesData struct {
	Series Series
	Values []float64
}

// ChartSeries extracts the series of a schedule by period. The correction
// series is included only for the corrected SAC.
func ChartSeries(schedule amortization.Schedule) []SeriesData {
	series := []Series{SeriesCumulativeInterest, SeriesCumulativeAmortization}
	if schedule.System == amortization.SystemSACCorrected {
		series = append(series, SeriesCumulativeCorrection)
	}
	series = append(series, SeriesClosingBalance)

	data := make([]SeriesData, len(series))
	for i, s := range series {
		data[i] = SeriesData{Series: s, Values: make([]float64, len(schedule.Records))}
	}
	for r, record := range schedule.Records {
		rounded := record.Rounded()
		for i := range data {
			var v float64
			switch data[i].Series {
			case SeriesCumulativeInterest:
				v = rounded.CumulativeInterest.InexactFloat64()
			case SeriesCumulativeAmortization:
				v = rounded.CumulativeAmortization.InexactFloat64()
			case SeriesCumulativeCorrection:
				v = rounded.CumulativeCorrection.InexactFloat64()
			case SeriesClosingBalance:
				v = rounded.ClosingBalance.InexactFloat64()
			}
			data[i].Values[r] = v
		}
	}
	return data
}

// LineChart builds the chart of one result.
func LineChart(result simulation.Result) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    result.Name,
			Subtitle: "Evolução do financiamento por mês",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: true}),
		charts.WithXAxisOpts(opts.XAxis{Name: HeaderMonth}),
		charts.WithYAxisOpts(opts.YAxis{Name: "R$"}),
	)

	labels := make([]string, len(result.Schedule.Records))
	for i, record := range result.Schedule.Records {
		labels[i] = record.DueDate
		if labels[i] == "" {
			labels[i] = strconv.Itoa(record.Month)
		}
	}
	line.SetXAxis(labels)

	for _, data := range ChartSeries(result.Schedule) {
		style := data.Series.Style()
		points := make([]opts.LineData, len(data.Values))
		for i, v := range data.Values {
			points[i] = opts.LineData{Value: v}
		}
		line.AddSeries(style.Label, points,
			charts.WithLineStyleOpts(opts.LineStyle{Color: style.Color}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: style.Color}),
		)
	}
	return line
}

// RenderChart writes an HTML page with one line chart per result.
func RenderChart(w io.Writer, results []simulation.Result) error {
	page := components.NewPage()
	page.PageTitle = "Simulações de financiamento"
	for _, result := range results {
		page.AddCharts(LineChart(result))
	}
	return page.Render(w)
}
