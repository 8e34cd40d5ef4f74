package models

import (
	"time"
)

const (
	weekDays   = 7
	monthDays  = 30
	yearMonths = 12
)

// DashboardChart names one dashboard chart and the series that drives it
type DashboardChart struct {
	SurfaceID string
	Name      string
	Kind      ChartKind
	Series    Series
}

var (
	WeeklyChartName   = titleCase("small radius")
	MonthlyChartName  = titleCase("occurrences this day")
	YearlyChartName   = titleCase("occurrences this month")
	LifetimeChartName = titleCase("occurrences this year")
)

// DashboardCharts builds the four dashboard charts from occurrences as of now.
func DashboardCharts(occurrences []Occurrence, now time.Time) []DashboardChart {
	return []DashboardChart{
		{SurfaceID: "bargraph-weekly", Name: WeeklyChartName, Kind: BarChart, Series: WeeklyBarSeries(occurrences, now)},
		{SurfaceID: "linegraph-monthly", Name: MonthlyChartName, Kind: LineChart, Series: MonthlyLineSeries(occurrences, now)},
		{SurfaceID: "linegraph-yearly", Name: YearlyChartName, Kind: LineChart, Series: YearlyLineSeries(occurrences, now)},
		{SurfaceID: "linegraph-lifetime", Name: LifetimeChartName, Kind: LineChart, Series: LifetimeLineSeries(occurrences, now)},
	}
}

// WeeklyBarSeries counts occurrences per day for the seven days ending today,
// labelled with the weekday name. Days without occurrences count 0.
func WeeklyBarSeries(occurrences []Occurrence, now time.Time) Series {
	return dailySeries(occurrences, now, weekDays, func(d time.Time) string {
		return d.Weekday().String()
	})
}

// MonthlyLineSeries counts occurrences per day for the last 30 days.
func MonthlyLineSeries(occurrences []Occurrence, now time.Time) Series {
	return dailySeries(occurrences, now, monthDays, func(d time.Time) string {
		return d.Format("Jan 02")
	})
}

// YearlyLineSeries counts occurrences per month for the last 12 months.
func YearlyLineSeries(occurrences []Occurrence, now time.Time) Series {
	loc := now.Location()
	counts := make(map[string]int)
	for _, o := range occurrences {
		counts[o.Time.In(loc).Format("2006-01")]++
	}

	thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	series := make(Series, 0, yearMonths)
	for i := yearMonths - 1; i >= 0; i-- {
		month := thisMonth.AddDate(0, -i, 0)
		series = append(series, Point{
			Label: month.Format("Jan 2006"),
			Value: float64(counts[month.Format("2006-01")]),
		})
	}
	return series
}

// LifetimeLineSeries counts occurrences per calendar year, from the year of the
// first occurrence through the current year.
func LifetimeLineSeries(occurrences []Occurrence, now time.Time) Series {
	loc := now.Location()
	counts := make(map[int]int)
	first := now.Year() + 1
	for _, o := range occurrences {
		year := o.Time.In(loc).Year()
		if year > now.Year() {
			continue
		}
		counts[year]++
		if year < first {
			first = year
		}
	}

	series := make(Series, 0)
	for year := first; year <= now.Year(); year++ {
		series = append(series, Point{
			Label: time.Date(year, 1, 1, 0, 0, 0, 0, loc).Format("2006"),
			Value: float64(counts[year]),
		})
	}
	return series
}

func dailySeries(occurrences []Occurrence, now time.Time, days int, label func(time.Time) string) Series {
	loc := now.Location()
	counts := make(map[string]int)
	for _, o := range occurrences {
		counts[o.Time.In(loc).Format(time.DateOnly)]++
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	series := make(Series, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		series = append(series, Point{
			Label: label(day),
			Value: float64(counts[day.Format(time.DateOnly)]),
		})
	}
	return series
}
