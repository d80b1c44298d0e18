package weather

import "strconv"

// ResolveStation returns the requested station, or the configured default when
// none was requested.
func ResolveStation(requested *int, configuredDefault int) int {
	if requested != nil {
		return *requested
	}
	return configuredDefault
}

// GroupByStation buckets records by WMO id, keeping upstream order inside each
// bucket. Records without an id are dropped.
func GroupByStation(records []Record) map[int][]Record {
	groups := make(map[int][]Record)
	for _, r := range records {
		if r.WMO == nil {
			continue
		}
		groups[*r.WMO] = append(groups[*r.WMO], r)
	}
	return groups
}

// AverageFor computes the mean air temperature of stationID over records.
// It returns nil when no record belongs to the station. Records without a
// temperature are left out of the mean; if none has one, AirTemp is nil.
func AverageFor(records []Record, stationID int) *AverageTemperature {
	var matching []Record
	for _, r := range records {
		if r.WMO != nil && *r.WMO == stationID {
			matching = append(matching, r)
		}
	}

	group, ok := GroupByStation(matching)[stationID]
	if !ok || len(group) == 0 {
		return nil
	}

	name := strconv.Itoa(stationID)
	if group[0].Name != nil {
		name = *group[0].Name
	}

	var (
		sum float64
		n   int
	)
	for _, r := range group {
		if r.AirTemp == nil {
			continue
		}
		sum += *r.AirTemp
		n++
	}

	avg := &AverageTemperature{LocationName: name}
	if n > 0 {
		mean := sum / float64(n)
		avg.AirTemp = &mean
	}
	return avg
}
