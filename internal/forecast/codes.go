package forecast

// Placeholder shown for unknown weather codes and for missing
// wind/precipitation values.
const Placeholder = "—"

// weatherCodes maps Open-Meteo WMO weather codes to Russian labels.
var weatherCodes = map[int]string{
	0:  "Ясно",
	1:  "Преимущественно ясно",
	2:  "Малооблачно",
	3:  "Облачно",
	45: "Туман",
	48: "Туман с отложениями",
	51: "Лёгкая морось",
	53: "Умеренная морось",
	55: "Плотная морось",
	61: "Лёгкий дождь",
	63: "Умеренный дождь",
	65: "Сильный дождь",
	71: "Снег",
	73: "Снег",
	75: "Сильный снег",
	80: "Лёгкий дождь (ливень)",
	81: "Дождь",
	82: "Интенсивный дождь",
	95: "Гроза",
}

// ConditionLabel returns the localized description for a weather code,
// or the placeholder dash for codes outside the table.
func ConditionLabel(code int) string {
	if label, ok := weatherCodes[code]; ok {
		return label
	}
	return Placeholder
}
