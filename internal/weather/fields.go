package weather

import "strconv"

// Field is one selectable column of a Record.
type Field struct {
	Name  string
	value func(r *Record) *string
}

// Value renders the field of r, or nil when r has no value for it.
func (f Field) Value(r *Record) *string {
	return f.value(r)
}

func intField(name string, get func(r *Record) *int) Field {
	return Field{Name: name, value: func(r *Record) *string {
		return formatInt(get(r))
	}}
}

func floatField(name string, get func(r *Record) *float64) Field {
	return Field{Name: name, value: func(r *Record) *string {
		return formatFloat(get(r))
	}}
}

func stringField(name string, get func(r *Record) *string) Field {
	return Field{Name: name, value: func(r *Record) *string {
		if v := get(r); v != nil {
			s := *v
			return &s
		}
		return nil
	}}
}

func formatInt(v *int) *string {
	if v == nil {
		return nil
	}
	s := strconv.Itoa(*v)
	return &s
}

// formatFloat uses the shortest representation that round-trips, independent of locale.
func formatFloat(v *float64) *string {
	if v == nil {
		return nil
	}
	s := strconv.FormatFloat(*v, 'f', -1, 64)
	return &s
}

// recordFields lists every Record field in declaration order.
var recordFields = []Field{
	intField("sort_order", func(r *Record) *int { return r.SortOrder }),
	intField("wmo", func(r *Record) *int { return r.WMO }),
	stringField("name", func(r *Record) *string { return r.Name }),
	stringField("history_product", func(r *Record) *string { return r.HistoryProduct }),
	stringField("local_date_time", func(r *Record) *string { return r.LocalDateTime }),
	stringField("local_date_time_full", func(r *Record) *string { return r.LocalDateTimeFull }),
	stringField("aifstime_utc", func(r *Record) *string { return r.AifstimeUTC }),
	floatField("lat", func(r *Record) *float64 { return r.Lat }),
	floatField("lon", func(r *Record) *float64 { return r.Lon }),
	floatField("apparent_t", func(r *Record) *float64 { return r.ApparentT }),
	stringField("cloud", func(r *Record) *string { return r.Cloud }),
	intField("cloud_base_m", func(r *Record) *int { return r.CloudBaseM }),
	intField("cloud_oktas", func(r *Record) *int { return r.CloudOktas }),
	intField("cloud_type_id", func(r *Record) *int { return r.CloudTypeID }),
	stringField("cloud_type", func(r *Record) *string { return r.CloudType }),
	floatField("delta_t", func(r *Record) *float64 { return r.DeltaT }),
	intField("gust_kmh", func(r *Record) *int { return r.GustKmh }),
	intField("gust_kt", func(r *Record) *int { return r.GustKt }),
	floatField("air_temp", func(r *Record) *float64 { return r.AirTemp }),
	floatField("dewpt", func(r *Record) *float64 { return r.Dewpt }),
	floatField("press", func(r *Record) *float64 { return r.Press }),
	floatField("press_qnh", func(r *Record) *float64 { return r.PressQNH }),
	floatField("press_msl", func(r *Record) *float64 { return r.PressMSL }),
	stringField("press_tend", func(r *Record) *string { return r.PressTend }),
	stringField("rain_trace", func(r *Record) *string { return r.RainTrace }),
	intField("rel_hum", func(r *Record) *int { return r.RelHum }),
	stringField("sea_state", func(r *Record) *string { return r.SeaState }),
	stringField("swell_dir_worded", func(r *Record) *string { return r.SwellDirWorded }),
	floatField("swell_height", func(r *Record) *float64 { return r.SwellHeight }),
	floatField("swell_period", func(r *Record) *float64 { return r.SwellPeriod }),
	stringField("vis_km", func(r *Record) *string { return r.VisKm }),
	stringField("weather", func(r *Record) *string { return r.Weather }),
	stringField("wind_dir", func(r *Record) *string { return r.WindDir }),
	intField("wind_spd_kmh", func(r *Record) *int { return r.WindSpdKmh }),
	intField("wind_spd_kt", func(r *Record) *int { return r.WindSpdKt }),
}

// Fields returns a copy of the field table in declaration order.
func Fields() []Field {
	out := make([]Field, len(recordFields))
	copy(out, recordFields)
	return out
}

// FieldNames returns the selectable field names in declaration order.
func FieldNames() []string {
	names := make([]string, 0, len(recordFields))
	for _, f := range recordFields {
		names = append(names, f.Name)
	}
	return names
}
