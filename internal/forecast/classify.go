package forecast

import (
	"math"
	"strconv"
)

var categoryDesc = map[string]string{
	"POP": "precipitation probability (%)",
	"R06": "6h precipitation (mm)",
	"S06": "6h new snowfall (cm)",
	"T3H": "3h temperature (C)",
	"TMN": "morning minimum temperature (C)",
	"TMX": "daytime maximum temperature (C)",
	"WAV": "wave height (m)",
	"T1H": "temperature (C)",
	"RN1": "1h precipitation (mm)",
	"SKY": "sky condition",
	"UUU": "east-west wind component (m/s)",
	"VVV": "north-south wind component (m/s)",
	"REH": "humidity (%)",
	"PTY": "precipitation type",
	"LGT": "lightning",
	"VEC": "wind direction (deg)",
	"WSD": "wind speed (m/s)",
}

var ptyCodes = map[string]string{
	"0": "none",
	"1": "rain",
	"2": "rain/snow",
	"3": "snow",
	"4": "shower",
	"5": "drizzle",
	"6": "drizzle/flurry",
	"7": "flurry",
}

// "2" was withdrawn from the live API in June 2019 but older releases still carry it.
var skyCodes = map[string]string{
	"1": "clear",
	"2": "partly cloudy",
	"3": "mostly cloudy",
	"4": "overcast",
}

var windOctants = [8]string{
	"N-NE",
	"NE-E",
	"E-SE",
	"SE-S",
	"S-SW",
	"SW-W",
	"W-NW",
	"NW-N",
}

// CategoryDescription returns the label for a category code.
func CategoryDescription(category string) (string, bool) {
	desc, ok := categoryDesc[category]
	return desc, ok
}

// Classify maps a raw record to a described item.
func Classify(r RawRecord) WeatherItem {
	value := r.Value()
	item := WeatherItem{
		Category: r.Category,
		Value:    value,
	}

	if desc, ok := CategoryDescription(r.Category); ok {
		item.Desc = &desc
	}

	switch r.Category {
	case "PTY":
		item.ValueDesc = lookup(ptyCodes, value)
	case "SKY":
		item.ValueDesc = lookup(skyCodes, value)
	case "VEC":
		item.ValueDesc = windDirection(value)
	}

	return item
}

func lookup(table map[string]string, value string) *string {
	if desc, ok := table[value]; ok {
		return &desc
	}
	return nil
}

// windDirection buckets degrees into 45 degree octants starting at north.
func windDirection(value string) *string {
	deg, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(deg) || math.IsInf(deg, 0) {
		return nil
	}
	idx := int(math.Floor(math.Mod(deg, 360) / 45))
	if idx < 0 || idx >= len(windOctants) {
		return nil
	}
	desc := windOctants[idx]
	return &desc
}
