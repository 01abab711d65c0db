package sampler

import (
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"pipecut/chart"
	"pipecut/csvio"
	"pipecut/geometry"
	"pipecut/model"
)

// Run is the whole macro: read the centerline, derive the station frames,
// then sample and save every configured field. File errors are logged and
// skipped; geometry and host errors stop the run.
func Run(s Session, cfg *Config) (*model.RunSummary, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	centerline, normals, err := csvio.ReadStationCsv(cfg.InputPath, cfg.Delimiter, cfg.HeaderRows)
	if err != nil {
		return nil, err
	}
	centerline = centerline.Scale(cfg.UnitScale)

	// 输入带 nx,ny,nz 列时按给定方向截面，否则沿切线
	var frames []model.StationFrame
	if normals != nil {
		frames, err = geometry.FramesWithNormals(centerline, normals, cfg.Mode == ModeCylindrical)
	} else {
		frames, err = geometry.Frames(centerline, cfg.Mode == ModeCylindrical)
	}
	if err != nil {
		return nil, err
	}
	logFrames(frames)

	outDir := cfg.OutputDirectory()
	if err := csvio.EnsureDirectory(outDir); err != nil {
		log.WithError(err).WithField("dir", outDir).Error("could not create output directory")
	}

	summary := &model.RunSummary{Stations: len(frames)}
	c := NewCurveSampler(s, cfg)
	for _, field := range cfg.Fields {
		series, err := c.SampleAlongCurve(frames, field)
		if err != nil {
			return summary, err
		}
		summary.Fields = append(summary.Fields, field)

		path := filepath.Join(outDir, field+".csv")
		if err := csvio.WriteSeriesCsv(path, model.CsvHeader, series); err != nil {
			log.WithError(err).WithField("path", path).Error("could not save series")
		} else {
			summary.Files = append(summary.Files, path)
		}

		if cfg.Plot {
			png := filepath.Join(outDir, field+".png")
			if err := chart.SaveSeries(png, series); err != nil {
				log.WithError(err).WithField("path", png).Error("could not plot series")
			} else {
				summary.Files = append(summary.Files, png)
			}
		}

		var text strings.Builder
		if err := csvio.WriteSeries(&text, model.CsvHeader, series); err == nil {
			log.WithField("field", field).Info("CSV field by the tube length:\n" + text.String())
		}
	}
	log.WithFields(log.Fields{
		"stations": summary.Stations,
		"fields":   len(summary.Fields),
		"files":    len(summary.Files),
	}).Info("End")
	return summary, nil
}

func logFrames(frames []model.StationFrame) {
	for i, f := range frames {
		entry := log.WithFields(log.Fields{
			"station": i,
			"origin":  f.Origin,
			"normal":  f.Normal,
		})
		if f.Basis != nil {
			entry = entry.WithFields(log.Fields{
				"i": f.Basis.I,
				"j": f.Basis.J,
			})
		}
		entry.Debug("station frame")
	}
}
