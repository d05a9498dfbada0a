package pipeline

import (
	"encoding/csv"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	hitrack "github.com/mbee/hitrack2tcx"
)

type canonicalParquetRow struct {
	TSUTCISO   string  `parquet:"name=ts_utc_iso, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	ElapsedS   float64 `parquet:"name=elapsed_s, type=DOUBLE"`
	Lat        float64 `parquet:"name=lat, type=DOUBLE"`
	Lon        float64 `parquet:"name=lon, type=DOUBLE"`
	DistanceM  float64 `parquet:"name=distance_m, type=DOUBLE"`
	AltitudeM  float64 `parquet:"name=altitude_m, type=DOUBLE"`
	HRBPM      float64 `parquet:"name=hr_bpm, type=DOUBLE"`
	CadenceRPM float64 `parquet:"name=cadence_rpm, type=DOUBLE"`
	HasGPS     bool    `parquet:"name=has_gps, type=BOOLEAN"`
}

func writeCanonicalParquet(path string, records []hitrack.CompositeRecord) error {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return err
	}
	pw, err := writer.NewParquetWriter(fw, new(canonicalParquetRow), 4)
	if err != nil {
		return err
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	elapsedBase := 0.0
	if len(records) > 0 {
		elapsedBase = records[0].Time
	}
	for _, r := range records {
		row := canonicalParquetRow{
			TSUTCISO:   isoTime(r.Time),
			ElapsedS:   r.Time - elapsedBase,
			Lat:        floatOrNaN(r.Lat),
			Lon:        floatOrNaN(r.Lon),
			DistanceM:  floatOrNaN(r.Distance),
			AltitudeM:  floatOrNaN(r.Altitude),
			HRBPM:      intOrNaN(r.HeartRate),
			CadenceRPM: intOrNaN(r.Cadence),
			HasGPS:     r.HasPosition(),
		}
		if err := pw.Write(row); err != nil {
			_ = pw.WriteStop()
			_ = fw.Close()
			return err
		}
	}
	if err := pw.WriteStop(); err != nil {
		_ = fw.Close()
		return err
	}
	return fw.Close()
}

func writeCanonicalCSV(path string, records []hitrack.CompositeRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		"ts_utc_iso", "elapsed_s", "lat", "lon", "distance_m", "altitude_m", "hr_bpm", "cadence_rpm", "has_gps",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	elapsedBase := 0.0
	if len(records) > 0 {
		elapsedBase = records[0].Time
	}
	for _, r := range records {
		row := []string{
			isoTime(r.Time),
			formatFloat(r.Time - elapsedBase),
			formatFloatPtr(r.Lat),
			formatFloatPtr(r.Lon),
			formatFloatPtr(r.Distance),
			formatFloatPtr(r.Altitude),
			formatIntPtr(r.HeartRate),
			formatIntPtr(r.Cadence),
			strconv.FormatBool(r.HasPosition()),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func isoTime(ts float64) string {
	return time.Unix(int64(ts), 0).UTC().Format(time.RFC3339)
}

func floatOrNaN(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}

func intOrNaN(v *int) float64 {
	if v == nil {
		return math.NaN()
	}
	return float64(*v)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

func formatFloatPtr(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}

func formatIntPtr(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
