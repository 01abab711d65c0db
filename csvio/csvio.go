package csvio

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/spatial/r3"
	"pipecut/model"
)

var ErrPathNotFound = errors.New("path does not exist")

// ReadNumericCsv skips headerRows records and parses every remaining token as
// float64. Trailing empty tokens of a row are dropped, so "1,2,3," reads as
// three values. Blank lines are not records and do not count as headers.
func ReadNumericCsv(path string, delimiter rune, headerRows int) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(bufio.NewReader(f))
	r.Comma = delimiter
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	rows := make([][]float64, 0)
	line := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		line++
		if line <= headerRows {
			continue
		}
		record = trimTrailingEmpty(record)
		row := make([]float64, len(record))
		for i, token := range record {
			row[i], err = strconv.ParseFloat(strings.TrimSpace(token), 64)
			if err != nil {
				return nil, fmt.Errorf("%s row %d column %d: %w", path, line, i+1, err)
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ReadCentroidCsv reads a centerline of x,y,z rows. A missing file is logged
// and yields an empty centerline so the caller can carry on.
func ReadCentroidCsv(path string, delimiter rune, headerRows int) (model.Centerline, error) {
	centerline, normals, err := ReadStationCsv(path, delimiter, headerRows)
	if err != nil {
		return nil, err
	}
	if normals != nil {
		return nil, fmt.Errorf("%s: want 3 columns, got 6", path)
	}
	return centerline, nil
}

// ReadStationCsv reads x,y,z rows, optionally followed by an explicit cut
// normal nx,ny,nz. Every row must have the same layout. normals is nil for
// plain x,y,z input. A missing file is handled like ReadCentroidCsv.
func ReadStationCsv(path string, delimiter rune, headerRows int) (model.Centerline, []model.Vector3, error) {
	rows, err := ReadNumericCsv(path, delimiter, headerRows)
	if errors.Is(err, ErrPathNotFound) {
		log.WithField("path", path).Warn("centerline file not found, continuing with an empty centerline")
		return model.Centerline{}, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}

	want := 3
	if len(rows) > 0 && len(rows[0]) == 6 {
		want = 6
	}
	centerline := make(model.Centerline, 0, len(rows))
	var normals []model.Vector3
	for i, row := range rows {
		if len(row) != want {
			return nil, nil, fmt.Errorf("%s data row %d: want %d columns, got %d", path, i+1, want, len(row))
		}
		centerline = append(centerline, r3.Vec{X: row[0], Y: row[1], Z: row[2]})
		if want == 6 {
			normals = append(normals, r3.Vec{X: row[3], Y: row[4], Z: row[5]})
		}
	}
	return centerline, normals, nil
}

// WriteSeries emits the header and one x,y,z,value row per sample.
func WriteSeries(w io.Writer, header []string, series model.SampleSeries) error {
	if header == nil {
		header = model.CsvHeader
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	row := make([]string, 4)
	for _, s := range series.Samples {
		row[0] = formatFloat(s.Origin.X)
		row[1] = formatFloat(s.Origin.Y)
		row[2] = formatFloat(s.Origin.Z)
		row[3] = formatFloat(s.Value)
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSeriesCsv overwrites path with the serialized series.
func WriteSeriesCsv(path string, header []string, series model.SampleSeries) error {
	f, err := os.Create(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}
		return err
	}
	if err := WriteSeries(f, header, series); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// EnsureDirectory creates path and its parents, no-op when it already exists.
func EnsureDirectory(path string) error {
	return os.MkdirAll(path, 0o755)
}

// DirFromSessionPath drops the session file extension and appends suffix,
// e.g. /runs/pipe.sim + ".PipeCuts" -> /runs/pipe.PipeCuts.
func DirFromSessionPath(sessionPath, suffix string) string {
	return strings.TrimSuffix(sessionPath, filepath.Ext(sessionPath)) + suffix
}

func trimTrailingEmpty(record []string) []string {
	n := len(record)
	for n > 0 && strings.TrimSpace(record[n-1]) == "" {
		n--
	}
	return record[:n]
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
