package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveStation(t *testing.T) {
	assert.Equal(t, 456, ResolveStation(nil, 456))
	assert.Equal(t, 999, ResolveStation(ptr(999), 456))
	assert.Equal(t, 0, ResolveStation(ptr(0), 456))
}

func TestAverageForSixRecords(t *testing.T) {
	avg := AverageFor(sixRecords(), 123)
	require.NotNil(t, avg)
	assert.Equal(t, "Station A", avg.LocationName)
	require.NotNil(t, avg.AirTemp)
	assert.InDelta(t, 68.0/6, *avg.AirTemp, 1e-9)
}

func TestAverageForMatchesReferenceFeed(t *testing.T) {
	temps := []float64{12.6, 14.4, 13.3, 16.7, 11.3, 13.8}
	var records []Record
	for _, v := range temps {
		records = append(records, Record{WMO: ptr(123), Name: ptr("station1"), AirTemp: ptr(v)})
	}

	avg := AverageFor(records, 123)
	require.NotNil(t, avg)
	require.NotNil(t, avg.AirTemp)
	assert.InDelta(t, 13.683333333333332, *avg.AirTemp, 1e-12)
}

func TestAverageForNoMatch(t *testing.T) {
	assert.Nil(t, AverageFor(sixRecords(), 999))
	assert.Nil(t, AverageFor(nil, 123))
	assert.Nil(t, AverageFor([]Record{{Name: ptr("no id"), AirTemp: ptr(1.0)}}, 0))
}

func TestAverageForSkipsNilTemperatures(t *testing.T) {
	records := []Record{
		{WMO: ptr(7), Name: ptr("X"), AirTemp: ptr(10.0)},
		{WMO: ptr(7), Name: ptr("X")},
		{WMO: ptr(7), Name: ptr("X"), AirTemp: ptr(20.0)},
	}

	avg := AverageFor(records, 7)
	require.NotNil(t, avg)
	require.NotNil(t, avg.AirTemp)
	assert.InDelta(t, 15.0, *avg.AirTemp, 1e-9)
}

func TestAverageForAllNilTemperatures(t *testing.T) {
	records := []Record{
		{WMO: ptr(7), Name: ptr("X")},
		{WMO: ptr(7), Name: ptr("X")},
	}

	avg := AverageFor(records, 7)
	require.NotNil(t, avg)
	assert.Equal(t, "X", avg.LocationName)
	assert.Nil(t, avg.AirTemp)
}

func TestAverageForIgnoresOtherStations(t *testing.T) {
	records := []Record{
		{WMO: ptr(1), Name: ptr("Other"), AirTemp: ptr(100.0)},
		{WMO: ptr(2), Name: ptr("Mine"), AirTemp: ptr(4.0)},
		{Name: ptr("Unknown"), AirTemp: ptr(-50.0)},
		{WMO: ptr(2), Name: ptr("Mine later"), AirTemp: ptr(6.0)},
	}

	avg := AverageFor(records, 2)
	require.NotNil(t, avg)
	assert.Equal(t, "Mine", avg.LocationName)
	require.NotNil(t, avg.AirTemp)
	assert.InDelta(t, 5.0, *avg.AirTemp, 1e-9)
}

func TestAverageForLocationNameFallsBackToStationID(t *testing.T) {
	records := []Record{
		{WMO: ptr(94672), AirTemp: ptr(1.0)},
		{WMO: ptr(94672), Name: ptr("Adelaide Airport"), AirTemp: ptr(3.0)},
	}

	avg := AverageFor(records, 94672)
	require.NotNil(t, avg)
	assert.Equal(t, "94672", avg.LocationName)
}

func TestGroupByStation(t *testing.T) {
	records := []Record{
		{WMO: ptr(1), SortOrder: ptr(0)},
		{WMO: ptr(2), SortOrder: ptr(1)},
		{SortOrder: ptr(2)},
		{WMO: ptr(1), SortOrder: ptr(3)},
	}

	groups := GroupByStation(records)
	require.Len(t, groups, 2)
	require.Len(t, groups[1], 2)
	assert.Equal(t, 0, *groups[1][0].SortOrder)
	assert.Equal(t, 3, *groups[1][1].SortOrder)
	assert.Len(t, groups[2], 1)
}
