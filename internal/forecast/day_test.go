package forecast

import "testing"

func sampleDaily() Daily {
	return Daily{
		Time:             []string{"2026-08-28", "2026-08-29", "2026-08-30"},
		TemperatureMax:   []float64{21.6, 18.4, 25.5},
		TemperatureMin:   []float64{12.4, 9.6, 14.0},
		WeatherCode:      []int{0, 61, 42},
		WindSpeedMax:     []float64{4.3, 0, 12.7},
		PrecipitationSum: []float64{0, 3.5, 0.2},
	}
}

func TestBuildDaysProducesThreeEntries(t *testing.T) {
	days := BuildDays(sampleDaily())
	if len(days) != 3 {
		t.Fatalf("got %d days, want 3", len(days))
	}

	if !days[0].IsToday || days[0].WeekdayLabel != TodayLabel {
		t.Fatalf("day 0 must be labeled %q, got %+v", TodayLabel, days[0])
	}
	// 2026-08-29 is a Saturday, 2026-08-30 a Sunday.
	if days[1].WeekdayLabel != "суббота" {
		t.Fatalf("day 1 weekday = %q, want суббота", days[1].WeekdayLabel)
	}
	if days[2].WeekdayLabel != "воскресенье" {
		t.Fatalf("day 2 weekday = %q, want воскресенье", days[2].WeekdayLabel)
	}
	if days[0].DateLabel != "28.08.2026" {
		t.Fatalf("day 0 date label = %q, want 28.08.2026", days[0].DateLabel)
	}
}

func TestBuildDaysRoundsTemperatures(t *testing.T) {
	days := BuildDays(sampleDaily())

	if days[0].MaxTemp != 22 || days[0].MinTemp != 12 {
		t.Fatalf("day 0 temps = %d/%d, want 22/12", days[0].MaxTemp, days[0].MinTemp)
	}
	if days[1].MaxTemp != 18 || days[1].MinTemp != 10 {
		t.Fatalf("day 1 temps = %d/%d, want 18/10", days[1].MaxTemp, days[1].MinTemp)
	}
}

func TestBuildDaysConditionLabels(t *testing.T) {
	days := BuildDays(sampleDaily())

	if days[0].ConditionLabel != "Ясно" {
		t.Fatalf("code 0 label = %q, want Ясно", days[0].ConditionLabel)
	}
	if days[1].ConditionLabel != "Лёгкий дождь" {
		t.Fatalf("code 61 label = %q, want Лёгкий дождь", days[1].ConditionLabel)
	}
	// 42 is not in the table.
	if days[2].ConditionLabel != Placeholder {
		t.Fatalf("unknown code label = %q, want %q", days[2].ConditionLabel, Placeholder)
	}
}

// A zero wind or precipitation reading renders as the placeholder dash,
// same as missing data. Known quirk, asserted here as current behaviour.
func TestBuildDaysZeroReadsAsPlaceholder(t *testing.T) {
	days := BuildDays(sampleDaily())

	if days[0].WindSpeed != "4.3 м/с" {
		t.Fatalf("day 0 wind = %q, want 4.3 м/с", days[0].WindSpeed)
	}
	if days[1].WindSpeed != Placeholder {
		t.Fatalf("zero wind = %q, want %q", days[1].WindSpeed, Placeholder)
	}
	if days[0].Precipitation != Placeholder {
		t.Fatalf("zero precipitation = %q, want %q", days[0].Precipitation, Placeholder)
	}
	if days[1].Precipitation != "3.5 мм" {
		t.Fatalf("day 1 precipitation = %q, want 3.5 мм", days[1].Precipitation)
	}
}
