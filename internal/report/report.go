// Package report writes scan results and sampling grids to files or stdout.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/domecast/internal/config"
	"github.com/Faultbox/domecast/pkg/dome"
	"github.com/Faultbox/domecast/pkg/math"
)

// Document is the serialized outcome of one scan.
type Document struct {
	RunID     string         `yaml:"run_id" json:"run_id"`
	CreatedAt time.Time      `yaml:"created_at" json:"created_at"`
	Origin    []float64      `yaml:"origin,flow" json:"origin"`
	Steps     dome.Steps     `yaml:"steps" json:"steps"`
	Count     int            `yaml:"count" json:"count"`
	Results   dome.ResultSet `yaml:"results" json:"results"`
}

// NewDocument wraps a result set with a fresh run ID.
func NewDocument(origin math.Vec3, steps dome.Steps, rs dome.ResultSet) *Document {
	if rs == nil {
		rs = dome.ResultSet{}
	}
	return &Document{
		RunID:     uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Origin:    []float64{origin.X, origin.Y, origin.Z},
		Steps:     steps,
		Count:     len(rs),
		Results:   rs,
	}
}

// Write encodes doc to w in the given format. CSV output carries only the
// result rows.
func Write(w io.Writer, format string, doc *Document) error {
	switch format {
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	case config.FormatCSV:
		return writeResultsCSV(w, doc.Results)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

func writeResultsCSV(w io.Writer, rs dome.ResultSet) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"azimuth", "elevation"}); err != nil {
		return err
	}
	for _, r := range rs {
		if err := cw.Write([]string{formatFloat(r.Azimuth), formatFloat(r.Elevation)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteGrid writes every sample as az,el,x,y,z rows.
func WriteGrid(w io.Writer, samples []dome.Sample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"azimuth", "elevation", "x", "y", "z"}); err != nil {
		return err
	}
	for _, s := range samples {
		row := []string{
			formatFloat(s.Azimuth),
			formatFloat(s.Elevation),
			formatFloat(s.Direction.X),
			formatFloat(s.Direction.Y),
			formatFloat(s.Direction.Z),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
