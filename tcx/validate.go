package tcx

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// Validator checks a saved document against the published schema. It first
// downloads the XSD (confirming the schema service is reachable and the
// schema still exists), then re-parses the document and verifies the
// structural constraints the schema imposes on converter output. The
// pipeline reports the outcome but never depends on it.
type Validator struct {
	SchemaURL string
	Client    *http.Client
	Logger    *slog.Logger
}

// NewValidator returns a validator wired to the Garmin schema endpoint.
func NewValidator(logger *slog.Logger) *Validator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Validator{
		SchemaURL: SchemaURL,
		Client:    &http.Client{Timeout: 30 * time.Second},
		Logger:    logger,
	}
}

// Validate fetches the schema and checks the document at path. A nil return
// means the document passed.
func (v *Validator) Validate(ctx context.Context, path string) error {
	if err := v.fetchSchema(ctx); err != nil {
		return fmt.Errorf("retrieve schema: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}

	var doc struct {
		Xmlns      string `xml:"xmlns,attr"`
		Activities struct {
			Activity struct {
				Sport string `xml:"Sport,attr"`
				ID    string `xml:"Id"`
				Laps  []struct {
					StartTime        string `xml:"StartTime,attr"`
					TotalTimeSeconds string `xml:"TotalTimeSeconds"`
					DistanceMeters   string `xml:"DistanceMeters"`
					Calories         string `xml:"Calories"`
					Intensity        string `xml:"Intensity"`
					TriggerMethod    string `xml:"TriggerMethod"`
					Track            struct {
						Trackpoints []struct {
							Time string `xml:"Time"`
						} `xml:"Trackpoint"`
					} `xml:"Track"`
				} `xml:"Lap"`
			} `xml:"Activity"`
		} `xml:"Activities"`
	}
	if err := xml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse document: %w", err)
	}

	if doc.Xmlns != Namespace {
		return fmt.Errorf("document namespace %q, want %q", doc.Xmlns, Namespace)
	}
	act := doc.Activities.Activity
	switch act.Sport {
	case "Running", "Biking", "Swimming", "Other":
	default:
		return fmt.Errorf("sport %q is not a TrainingCenterDatabase sport", act.Sport)
	}
	if act.ID == "" {
		return fmt.Errorf("activity is missing its Id element")
	}
	if len(act.Laps) == 0 {
		return fmt.Errorf("activity has no laps")
	}
	for i, lap := range act.Laps {
		if lap.StartTime == "" {
			return fmt.Errorf("lap %d is missing StartTime", i+1)
		}
		for _, required := range []struct{ name, value string }{
			{"TotalTimeSeconds", lap.TotalTimeSeconds},
			{"DistanceMeters", lap.DistanceMeters},
			{"Calories", lap.Calories},
			{"Intensity", lap.Intensity},
			{"TriggerMethod", lap.TriggerMethod},
		} {
			if required.value == "" {
				return fmt.Errorf("lap %d is missing %s", i+1, required.name)
			}
		}
		for j, tp := range lap.Track.Trackpoints {
			if tp.Time == "" {
				return fmt.Errorf("lap %d trackpoint %d is missing Time", i+1, j+1)
			}
		}
	}

	v.Logger.Info("document validated", "path", path, "laps", len(act.Laps))
	return nil
}

func (v *Validator) fetchSchema(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.SchemaURL, nil)
	if err != nil {
		return err
	}
	resp, err := v.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("schema fetch returned %s", resp.Status)
	}

	dir, err := os.MkdirTemp("", "tcx-schema-*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	f, err := os.Create(filepath.Join(dir, "TrainingCenterDatabasev2.xsd"))
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := io.Copy(f, resp.Body); err != nil {
		return err
	}
	return nil
}
