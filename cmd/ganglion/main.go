// Command ganglion computes the response of a retinal ganglion cell to one pulse
// train and writes it as CSV rows of time, waveform and output.
//
// Usage:
//
//	ganglion [-config run.yaml] [-freq n] [-out response.csv] [-v]
//
// Without -config the reference model parameters and a 20 Hz pulse train are used.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/synaptecltd/ganglion"
	"github.com/synaptecltd/ganglion/config"
)

func main() {
	configPath := flag.String("config", "", "yaml run description, defaults to the reference model")
	freqNum := flag.Int("freq", -1, "0-based frequency index, overrides freq_num in the config")
	outPath := flag.String("out", "", "CSV output path, defaults to stdout")
	verbose := flag.Bool("v", false, "log debug records to stderr")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(*configPath, *freqNum, *outPath, logger); err != nil {
		logger.Error("ganglion failed", "err", err)
		os.Exit(1)
	}
}

func run(configPath string, freqNum int, outPath string, logger *slog.Logger) error {
	var (
		r   *config.Run
		err error
	)
	if configPath == "" {
		r, err = config.Decode(nil)
	} else {
		r, err = config.Load(configPath)
	}
	if err != nil {
		return err
	}
	if freqNum >= 0 {
		r.FreqNum = freqNum
	}

	params, stim, err := r.Build()
	if err != nil {
		return err
	}
	m, err := ganglion.NewModel(params, ganglion.WithLogger(logger))
	if err != nil {
		return err
	}
	resp, err := m.Response(stim, r.FreqNum)
	if err != nil {
		return err
	}

	if outPath == "" {
		err = writeCSV(os.Stdout, stim.T, resp)
	} else {
		err = writeCSVFile(outPath, stim.T, resp)
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}

	logger.Info("response written", "id", resp.ID, "freq", resp.Freq, "samples", len(resp.Output),
		"degenerate", resp.Degenerate)
	return nil
}

// Writes the CSV trace to path, reporting a failed close as a failed write.
func writeCSVFile(path string, t []float64, resp *ganglion.Response) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return writeCSV(f, t, resp)
}

func writeCSV(w io.Writer, t []float64, resp *ganglion.Response) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"t", "waveform", "output"}); err != nil {
		return err
	}
	for i := range t {
		row := []string{
			strconv.FormatFloat(t[i], 'g', -1, 64),
			strconv.FormatFloat(resp.Waveform[i], 'g', -1, 64),
			strconv.FormatFloat(resp.Output[i], 'g', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
