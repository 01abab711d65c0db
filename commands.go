package main

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"pipecut/chart"
	"pipecut/csvio"
	"pipecut/geometry"
	"pipecut/model"
	"pipecut/sampler"
	"pipecut/server"
	"pipecut/session"
)

type rootOptions struct {
	configPath string
	logLevel   string
	cfg        *sampler.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "pipecut",
		Short:         "Average CFD fields over cuts along a pipe centerline",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := log.ParseLevel(opts.logLevel)
			if err != nil {
				return err
			}
			log.SetLevel(level)
			opts.cfg, err = sampler.LoadConfig(opts.configPath)
			return err
		},
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", sampler.DefaultConfigPath, "ini configuration file")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "logrus level")

	root.AddCommand(
		newServeCmd(opts),
		newDryRunCmd(opts),
		newEmulateCmd(opts),
		newFramesCmd(opts),
		newPlotCmd(),
	)
	return root
}

func newServeCmd(opts *rootOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Wait for the simulation host and run the sampling macro through it",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.cfg.Validate(); err != nil {
				return err
			}
			if addr == "" {
				addr = opts.cfg.Addr
			}
			upgrader := websocket.Upgrader{
				ReadBufferSize:  1024,
				WriteBufferSize: 1024,
				CheckOrigin: func(r *http.Request) bool {
					return true
				},
			}
			return server.NewServer(addr, upgrader, opts.cfg).Serve()
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides [server] Addr")
	return cmd
}

// memorySession answers every configured field with a constant.
func memorySession(cfg *sampler.Config, value float64) *session.Memory {
	fields := make(map[string]session.FieldFunc, len(cfg.Fields))
	for _, f := range cfg.Fields {
		fields[f] = session.Constant(value)
	}
	return session.NewMemory([]string{cfg.RegionName}, fields)
}

func newDryRunCmd(opts *rootOptions) *cobra.Command {
	var value float64
	cmd := &cobra.Command{
		Use:   "dry-run",
		Short: "Run the macro against an in-memory host returning a constant average",
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := sampler.Run(memorySession(opts.cfg, value), opts.cfg)
			if err != nil {
				return err
			}
			for _, f := range summary.Files {
				fmt.Fprintln(cmd.OutOrStdout(), f)
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&value, "value", 0, "average returned for every field")
	return cmd
}

func newEmulateCmd(opts *rootOptions) *cobra.Command {
	var (
		url   string
		value float64
	)
	cmd := &cobra.Command{
		Use:   "emulate",
		Short: "Connect to a running serve instance and act as the simulation host",
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, _, err := websocket.DefaultDialer.Dial(url, nil)
			if err != nil {
				return err
			}
			defer conn.Close()
			summary, err := server.ServeHost(conn, memorySession(opts.cfg, value))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d stations, fields %s\n", summary.Stations, strings.Join(summary.Fields, ","))
			return nil
		},
	}
	cmd.Flags().StringVar(&url, "url", "ws://localhost:9000/ws", "serve endpoint")
	cmd.Flags().Float64Var(&value, "value", 0, "average returned for every field")
	return cmd
}

func newFramesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "frames",
		Short: "Print the station frames derived from the input centerline",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			centerline, normals, err := csvio.ReadStationCsv(cfg.InputPath, cfg.Delimiter, cfg.HeaderRows)
			if err != nil {
				return err
			}
			centerline = centerline.Scale(cfg.UnitScale)
			withBasis := cfg.Mode == sampler.ModeCylindrical
			var frames []model.StationFrame
			if normals != nil {
				frames, err = geometry.FramesWithNormals(centerline, normals, withBasis)
			} else {
				frames, err = geometry.Frames(centerline, withBasis)
			}
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "station,x,y,z,nx,ny,nz,ix,iy,iz,jx,jy,jz")
			for i, f := range frames {
				fmt.Fprintf(out, "%d,%s,%s", i, formatVec(f.Origin), formatVec(f.Normal))
				if f.Basis != nil {
					fmt.Fprintf(out, ",%s,%s", formatVec(f.Basis.I), formatVec(f.Basis.J))
				} else {
					fmt.Fprint(out, ",,,,,,")
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}
}

func newPlotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plot <series.csv>...",
		Short: "Render saved x,y,z,value series to PNG next to each CSV",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				series, err := readSeries(path)
				if err != nil {
					return err
				}
				png := strings.TrimSuffix(path, filepath.Ext(path)) + ".png"
				if err := chart.SaveSeries(png, series); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), png)
			}
			return nil
		},
	}
}

func formatVec(v model.Vector3) string {
	return fmt.Sprintf("%g,%g,%g", v.X, v.Y, v.Z)
}

func readSeries(path string) (model.SampleSeries, error) {
	series := model.SampleSeries{Field: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))}
	rows, err := csvio.ReadNumericCsv(path, ',', 1)
	if err != nil {
		return series, err
	}
	for i, row := range rows {
		if len(row) != 4 {
			return series, fmt.Errorf("%s data row %d: want x,y,z,value", path, i+1)
		}
		series.Samples = append(series.Samples, model.Sample{
			Origin: model.Point3{X: row[0], Y: row[1], Z: row[2]},
			Value:  row[3],
		})
	}
	return series, nil
}
