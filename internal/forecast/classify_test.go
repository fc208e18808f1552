package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_PTY(t *testing.T) {
	item := Classify(RawRecord{Category: "PTY", ObsrValue: "1"})

	assert.Equal(t, "PTY", item.Category)
	assert.Equal(t, "1", item.Value)
	require.NotNil(t, item.Desc)
	assert.Equal(t, "precipitation type", *item.Desc)
	require.NotNil(t, item.ValueDesc)
	assert.Equal(t, "rain", *item.ValueDesc)
}

func TestClassify_PTYAllCodes(t *testing.T) {
	want := []string{"none", "rain", "rain/snow", "snow", "shower", "drizzle", "drizzle/flurry", "flurry"}
	for code, desc := range want {
		item := Classify(RawRecord{Category: "PTY", FcstValue: string(rune('0' + code))})
		require.NotNil(t, item.ValueDesc, "code %d", code)
		assert.Equal(t, desc, *item.ValueDesc)
	}
}

func TestClassify_SKY(t *testing.T) {
	tests := map[string]string{
		"1": "clear",
		"2": "partly cloudy",
		"3": "mostly cloudy",
		"4": "overcast",
	}
	for value, want := range tests {
		item := Classify(RawRecord{Category: "SKY", FcstValue: value})
		require.NotNil(t, item.ValueDesc, value)
		assert.Equal(t, want, *item.ValueDesc)
	}

	assert.Nil(t, Classify(RawRecord{Category: "SKY", FcstValue: "9"}).ValueDesc)
}

func TestClassify_VEC(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"0", "N-NE"},
		{"44.9", "N-NE"},
		{"45", "NE-E"},
		{"180", "S-SW"},
		{"359", "NW-N"},
		{"360", "N-NE"},
		{"370", "N-NE"},
		{"725", "N-NE"},
		{"315", "NW-N"},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			item := Classify(RawRecord{Category: "VEC", FcstValue: tt.value})
			require.NotNil(t, item.ValueDesc)
			assert.Equal(t, tt.want, *item.ValueDesc)
		})
	}
}

func TestClassify_VECUndecodable(t *testing.T) {
	assert.Nil(t, Classify(RawRecord{Category: "VEC", FcstValue: "calm"}).ValueDesc)
	assert.Nil(t, Classify(RawRecord{Category: "VEC", FcstValue: "-10"}).ValueDesc)
	assert.Nil(t, Classify(RawRecord{Category: "VEC", FcstValue: "NaN"}).ValueDesc)
}

func TestClassify_PlainCategory(t *testing.T) {
	item := Classify(RawRecord{Category: "T1H", ObsrValue: "21.3"})
	require.NotNil(t, item.Desc)
	assert.Equal(t, "temperature (C)", *item.Desc)
	assert.Nil(t, item.ValueDesc)
}

func TestClassify_UnknownCategoryPassesThrough(t *testing.T) {
	item := Classify(RawRecord{Category: "TMP", FcstValue: "12"})
	assert.Equal(t, "TMP", item.Category)
	assert.Equal(t, "12", item.Value)
	assert.Nil(t, item.Desc)
	assert.Nil(t, item.ValueDesc)
}

func TestRawRecord_Value(t *testing.T) {
	assert.Equal(t, "3", RawRecord{ObsrValue: "3", FcstValue: "7"}.Value())
	assert.Equal(t, "7", RawRecord{FcstValue: "7"}.Value())
	// "0" is a real observation, not an absent one.
	assert.Equal(t, "0", RawRecord{ObsrValue: "0", FcstValue: "7"}.Value())
}

func TestCategoryDescription(t *testing.T) {
	assert.Len(t, categoryDesc, 17)

	desc, ok := CategoryDescription("WSD")
	assert.True(t, ok)
	assert.Equal(t, "wind speed (m/s)", desc)

	_, ok = CategoryDescription("XYZ")
	assert.False(t, ok)
}

func TestClassify_UsesCategoryDescription(t *testing.T) {
	for category := range categoryDesc {
		want, ok := CategoryDescription(category)
		require.True(t, ok)

		item := Classify(RawRecord{Category: category, ObsrValue: "1"})
		require.NotNil(t, item.Desc, category)
		assert.Equal(t, want, *item.Desc)
	}
}

func TestGroupByForecastTime(t *testing.T) {
	records := []RawRecord{
		{Category: "T1H", FcstDate: "20240426", FcstTime: "1600", FcstValue: "18"},
		{Category: "T1H", FcstDate: "20240426", FcstTime: "1500", FcstValue: "19"},
		{Category: "SKY", FcstDate: "20240426", FcstTime: "1600", FcstValue: "1"},
		{Category: "SKY", FcstDate: "20240426", FcstTime: "1500", FcstValue: "4"},
		{Category: "PTY", FcstDate: "20240426", FcstTime: "1700", FcstValue: "0"},
	}

	buckets, err := GroupByForecastTime(records)
	require.NoError(t, err)
	require.Len(t, buckets, 3)

	assert.Equal(t, "2024-04-26 16:00", buckets[0].Date)
	assert.Equal(t, "2024-04-26 15:00", buckets[1].Date)
	assert.Equal(t, "2024-04-26 17:00", buckets[2].Date)

	require.Len(t, buckets[0].Items, 2)
	assert.Equal(t, "T1H", buckets[0].Items[0].Category)
	assert.Equal(t, "SKY", buckets[0].Items[1].Category)
	assert.Equal(t, "clear", *buckets[0].Items[1].ValueDesc)
	assert.Len(t, buckets[1].Items, 2)
	assert.Len(t, buckets[2].Items, 1)
}

func TestGroupByForecastTime_BadStamp(t *testing.T) {
	_, err := GroupByForecastTime([]RawRecord{{Category: "T1H", FcstDate: "2024-04-26", FcstTime: "16"}})
	assert.ErrorIs(t, err, ErrMalformedEnvelope)
}
