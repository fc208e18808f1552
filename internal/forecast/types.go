package forecast

import (
	"encoding/json"
	"time"
)

// Operation names, appended to the base URL.
const (
	OpUltraSrtNcst = "getUltraSrtNcst"
	OpUltraSrtFcst = "getUltraSrtFcst"
	OpVilageFcst   = "getVilageFcst"
	OpFcstVersion  = "getFcstVersion"
)

const (
	DefaultNumOfRows = 1024
	DefaultPageNo    = 1
)

// DisplayLayout formats base dates and forecast bucket dates.
const DisplayLayout = "2006-01-02 15:04"

// Request selects a location and release for the observation and forecast
// operations. A zero Time means now; zero paging fields take the defaults.
type Request struct {
	Lat       float64
	Lng       float64
	Time      time.Time
	NumOfRows int
	PageNo    int
}

// FileType selects the product whose publication version is queried.
type FileType string

const (
	FileTypeODAM FileType = "ODAM" // ultra-short-term observation
	FileTypeVSRT FileType = "VSRT" // ultra-short-term forecast
	FileTypeSHRT FileType = "SHRT" // village (short-term) forecast
)

func (f FileType) Valid() bool {
	switch f {
	case FileTypeODAM, FileTypeVSRT, FileTypeSHRT:
		return true
	}
	return false
}

type VersionRequest struct {
	Type      FileType
	Time      time.Time
	NumOfRows int
	PageNo    int
}

// RawRecord is one row of body.items.item.
type RawRecord struct {
	BaseDate  string `json:"baseDate"`
	BaseTime  string `json:"baseTime"`
	Category  string `json:"category"`
	NX        int    `json:"nx"`
	NY        int    `json:"ny"`
	ObsrValue string `json:"obsrValue,omitempty"`
	FcstDate  string `json:"fcstDate,omitempty"`
	FcstTime  string `json:"fcstTime,omitempty"`
	FcstValue string `json:"fcstValue,omitempty"`
}

// Value is the observed value when present, else the forecast value.
func (r RawRecord) Value() string {
	if r.ObsrValue != "" {
		return r.ObsrValue
	}
	return r.FcstValue
}

// WeatherItem is a classified record. Desc is nil for unknown categories and
// ValueDesc is nil unless a decode table matched the value.
type WeatherItem struct {
	Category  string  `json:"category"`
	Value     string  `json:"value"`
	Desc      *string `json:"desc,omitempty"`
	ValueDesc *string `json:"valueDesc,omitempty"`
}

// ForecastBucket groups every category reported for one forecast instant.
type ForecastBucket struct {
	Date  string        `json:"date"`
	Items []WeatherItem `json:"items"`
}

type ObservationResult struct {
	URL      string          `json:"url"`
	BaseDate string          `json:"baseDate"`
	Items    []WeatherItem   `json:"items"`
	Origin   json.RawMessage `json:"origin,omitempty"`
}

type ForecastResult struct {
	URL       string           `json:"url"`
	BaseDate  string           `json:"baseDate"`
	Forecasts []ForecastBucket `json:"forecasts"`
	Origin    json.RawMessage  `json:"origin,omitempty"`
}

// VersionResult passes the provider's version record through in Result;
// FileType and Version are decoded from it for convenience.
type VersionResult struct {
	URL      string          `json:"url"`
	FileType string          `json:"filetype"`
	Version  string          `json:"version"`
	Result   json.RawMessage `json:"result"`
	Origin   json.RawMessage `json:"origin,omitempty"`
}
