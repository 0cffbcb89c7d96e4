package forecast

import (
	"math"
	"strconv"
	"time"
)

// TodayLabel is the weekday label for the first forecast day.
const TodayLabel = "Сегодня"

// weekdays holds lowercase long Russian weekday names, indexed by
// time.Weekday (Sunday first).
var weekdays = [7]string{
	"воскресенье",
	"понедельник",
	"вторник",
	"среда",
	"четверг",
	"пятница",
	"суббота",
}

// ForecastDay is the display-ready view of one forecast day. Derived
// fresh on every render pass, never persisted.
type ForecastDay struct {
	Date           string `json:"date"` // ISO form, as returned by the service
	IsToday        bool   `json:"isToday"`
	WeekdayLabel   string `json:"weekday"`
	DateLabel      string `json:"dateLabel"` // DD.MM.YYYY
	MaxTemp        int    `json:"maxTemp"`
	MinTemp        int    `json:"minTemp"`
	ConditionLabel string `json:"condition"`
	WindSpeed      string `json:"wind"`
	Precipitation  string `json:"precipitation"`
}

// BuildDays maps the raw daily arrays into display-ready entries. Day
// index 0 is always labeled "Сегодня"; later days carry the long
// Russian weekday name of the returned date.
func BuildDays(d Daily) []ForecastDay {
	days := make([]ForecastDay, 0, len(d.Time))
	for i := range d.Time {
		day := ForecastDay{
			Date:           d.Time[i],
			IsToday:        i == 0,
			WeekdayLabel:   TodayLabel,
			DateLabel:      d.Time[i],
			MaxTemp:        int(math.Round(d.TemperatureMax[i])),
			MinTemp:        int(math.Round(d.TemperatureMin[i])),
			ConditionLabel: ConditionLabel(d.WeatherCode[i]),
			WindSpeed:      formatMetric(d.WindSpeedMax[i], "м/с"),
			Precipitation:  formatMetric(d.PrecipitationSum[i], "мм"),
		}

		if date, err := time.Parse("2006-01-02", d.Time[i]); err == nil {
			day.DateLabel = date.Format("02.01.2006")
			if i > 0 {
				day.WeekdayLabel = weekdays[date.Weekday()]
			}
		}

		days = append(days, day)
	}
	return days
}

// formatMetric renders a raw reading with its unit suffix. A zero
// reading renders as the placeholder dash, indistinguishable from
// missing data. That matches the observed widget behaviour and is kept
// for parity.
func formatMetric(v float64, unit string) string {
	if v == 0 {
		return Placeholder
	}
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + unit
}
