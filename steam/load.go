package steam

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	_ "embed"

	log "github.com/sirupsen/logrus"

	"steamcycle/model"
)

//go:embed data/sat_water_table.txt
var satWaterTable []byte

//go:embed data/superheated_table.txt
var superheatedTable []byte

// Tables bundles the two property assets. Both are read-only after loading.
type Tables struct {
	Saturation  *SaturationTable
	Superheated *SuperheatedTable
}

var (
	embeddedOnce   sync.Once
	embeddedTables *Tables
	embeddedErr    error
)

// EmbeddedTables parses the tables shipped with the binary once per process.
func EmbeddedTables() (*Tables, error) {
	embeddedOnce.Do(func() {
		var t Tables
		t.Saturation, embeddedErr = LoadSaturationTable(bytes.NewReader(satWaterTable))
		if embeddedErr != nil {
			return
		}
		t.Superheated, embeddedErr = LoadSuperheatedTable(bytes.NewReader(superheatedTable))
		if embeddedErr != nil {
			return
		}
		embeddedTables = &t
	})
	return embeddedTables, embeddedErr
}

// LoadTables reads the tables from files; an empty path selects the embedded asset.
func LoadTables(satPath, superheatedPath string) (*Tables, error) {
	embedded, err := EmbeddedTables()
	if err != nil {
		return nil, err
	}
	t := *embedded
	if satPath != "" {
		if t.Saturation, err = loadFile(satPath, LoadSaturationTable); err != nil {
			return nil, err
		}
	}
	if superheatedPath != "" {
		if t.Superheated, err = loadFile(superheatedPath, LoadSuperheatedTable); err != nil {
			return nil, err
		}
	}
	log.WithFields(log.Fields{
		"saturation":  pathOrEmbedded(satPath),
		"superheated": pathOrEmbedded(superheatedPath),
	}).Info("steam tables loaded")
	return &t, nil
}

func pathOrEmbedded(path string) string {
	if path == "" {
		return "embedded"
	}
	return path
}

func loadFile[T any](path string, load func(io.Reader) (T, error)) (T, error) {
	var zero T
	f, err := os.Open(path)
	if err != nil {
		return zero, fmt.Errorf("open table: %w", err)
	}
	defer f.Close()
	v, err := load(f)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

// LoadSaturationTable parses "T P hf hg sf sg vf vg" rows after one header line.
func LoadSaturationTable(r io.Reader) (*SaturationTable, error) {
	var rows []model.SaturationRow
	err := scanTable(r, 8, func(f []float64) {
		rows = append(rows, model.SaturationRow{
			T: f[0], P: f[1], Hf: f[2], Hg: f[3], Sf: f[4], Sg: f[5], Vf: f[6], Vg: f[7],
		})
	})
	if err != nil {
		return nil, err
	}
	return NewSaturationTable(rows)
}

// LoadSuperheatedTable parses "P T h s v" rows after one header line.
func LoadSuperheatedTable(r io.Reader) (*SuperheatedTable, error) {
	var points []GridPoint
	err := scanTable(r, 5, func(f []float64) {
		points = append(points, GridPoint{P: f[0], T: f[1], H: f[2], S: f[3], V: f[4]})
	})
	if err != nil {
		return nil, err
	}
	return NewSuperheatedTable(points)
}

// scanTable skips the header, blank lines and '#' comments.
func scanTable(r io.Reader, cols int, row func([]float64)) error {
	sc := bufio.NewScanner(r)
	header := true
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if header {
			header = false
			continue
		}
		fields := strings.Fields(text)
		if len(fields) != cols {
			return fmt.Errorf("line %d: want %d columns, got %d", line, cols, len(fields))
		}
		vals := make([]float64, cols)
		for i, s := range fields {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return fmt.Errorf("line %d column %d: %w", line, i+1, err)
			}
			vals[i] = v
		}
		row(vals)
	}
	return sc.Err()
}
