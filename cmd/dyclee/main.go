// Command dyclee runs the streaming clustering engine over a CSV file
// or a named synthetic dataset and reports the per-sample labels.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/piratevector/DynamicClustering/internal/dataset"
	"github.com/piratevector/DynamicClustering/internal/dyclee"
	"github.com/piratevector/DynamicClustering/internal/monitor"
	"github.com/piratevector/DynamicClustering/internal/runstore"
)

// parseFloatSlice parses a comma-separated list of floats.
func parseFloatSlice(s string) ([]float64, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid float '%s': %w", p, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// parseBoolSlice parses a comma-separated list of 0/1 flags.
func parseBoolSlice(s string) ([]bool, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]bool, 0, len(parts))
	for _, p := range parts {
		switch strings.TrimSpace(p) {
		case "0":
			out = append(out, false)
		case "1":
			out = append(out, true)
		default:
			return nil, fmt.Errorf("invalid ordinal flag '%s': want 0 or 1", p)
		}
	}
	return out, nil
}

func loadSamples(input, synth string, n int, seed int64) ([][]float64, string, error) {
	if input != "" {
		X, err := dataset.LoadCSV(input)
		return X, input, err
	}
	switch synth {
	case "blobs":
		return dataset.TwoBlobs(n, 0.3, seed), synth, nil
	case "circles":
		return dataset.Circles(n, 0.5, 0.05, seed), synth, nil
	case "uniform":
		return dataset.Uniform(n, seed), synth, nil
	case "drift":
		return dataset.Drift(n, 0.3, seed), synth, nil
	default:
		return nil, "", fmt.Errorf("unknown dataset '%s' (want blobs, circles, uniform or drift)", synth)
	}
}

func writeLabels(path string, labels []int64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create labels file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()
	if err := w.Write([]string{"row", "label"}); err != nil {
		return err
	}
	for i, label := range labels {
		if err := w.Write([]string{strconv.Itoa(i), strconv.FormatInt(label, 10)}); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	var (
		input   = flag.String("input", "", "CSV file of numeric samples (one row per sample)")
		synth   = flag.String("dataset", "blobs", "synthetic dataset when no -input is given: blobs, circles, uniform, drift")
		n       = flag.Int("n", 1500, "synthetic dataset size")
		seed    = flag.Int64("seed", 1, "synthetic dataset seed")
		phi     = flag.Float64("phi", 0.06, "hyperbox relative size in (0, 1]")
		tGlobal = flag.Int64("tglobal", 0, "density stage period in samples (0 = dataset length)")
		loFlag  = flag.String("lo", "", "comma-separated context lower bounds (default: data minimum)")
		hiFlag  = flag.String("hi", "", "comma-separated context upper bounds (default: data maximum)")
		ordinal = flag.String("ordinal", "", "comma-separated 0/1 ordinal mask, e.g. 0,0,1")
		dbPath  = flag.String("db", "", "sqlite file to record the run (optional)")
		html    = flag.String("html", "", "write an interactive scatter of the result (optional)")
		png     = flag.String("png", "", "write a static scatter of the result (optional)")
		out     = flag.String("labels", "", "write per-row labels as CSV (optional)")
	)
	flag.Parse()

	X, name, err := loadSamples(*input, *synth, *n, *seed)
	if err != nil {
		log.Fatalf("load samples: %v", err)
	}

	lo, err := parseFloatSlice(*loFlag)
	if err != nil {
		log.Fatalf("parse -lo: %v", err)
	}
	hi, err := parseFloatSlice(*hiFlag)
	if err != nil {
		log.Fatalf("parse -hi: %v", err)
	}
	if lo == nil || hi == nil {
		dataLo, dataHi := dataset.Bounds(X)
		if lo == nil {
			lo = dataLo
		}
		if hi == nil {
			hi = dataHi
		}
	}
	mask, err := parseBoolSlice(*ordinal)
	if err != nil {
		log.Fatalf("parse -ordinal: %v", err)
	}

	engine, err := dyclee.New(dyclee.Config{
		Phi:     *phi,
		Lo:      lo,
		Hi:      hi,
		Ordinal: mask,
		TGlobal: *tGlobal,
	})
	if err != nil {
		log.Fatalf("build engine: %v", err)
	}

	labels, err := engine.RunDataset(X)
	if err != nil {
		log.Fatalf("run: %v", err)
	}

	finals := engine.FinalClusters()
	log.Printf("processed %d samples in %d dimensions: %d final clusters, %d active, %d outlier microclusters",
		len(X), engine.Dims(), len(finals), len(engine.Active()), len(engine.Outliers()))
	for _, fc := range finals {
		log.Printf("  cluster %d: %d microclusters, %d samples, center %v, spread %.3f",
			fc.Label, fc.MicroClusters, fc.Samples, fc.Center, fc.Spread)
	}

	if *dbPath != "" {
		store, err := runstore.Open(*dbPath)
		if err != nil {
			log.Fatalf("open run store: %v", err)
		}
		defer store.Close()
		run := &runstore.Run{Phi: *phi, TGlobal: *tGlobal, Dims: engine.Dims(), Dataset: name}
		if err := store.CreateRun(run); err != nil {
			log.Fatalf("record run: %v", err)
		}
		if snap := engine.Snapshots().Latest(); snap != nil {
			if err := store.RecordPass(run.RunID, snap.Timestamp, snap.Clusters); err != nil {
				log.Fatalf("record pass: %v", err)
			}
		}
		log.Printf("recorded run %s in %s", run.RunID, *dbPath)
	}

	if *html != "" {
		if err := monitor.RenderHTML(*html, "dyclee: "+name, X, labels); err != nil {
			log.Fatalf("render html: %v", err)
		}
		log.Printf("wrote %s", *html)
	}
	if *png != "" {
		if err := monitor.RenderPNG(*png, "dyclee: "+name, X, labels); err != nil {
			log.Fatalf("render png: %v", err)
		}
		log.Printf("wrote %s", *png)
	}

	if *out != "" {
		if err := writeLabels(*out, labels); err != nil {
			log.Fatalf("write labels: %v", err)
		}
		log.Printf("wrote %s", *out)
	} else {
		counts := make(map[int64]int)
		for _, label := range labels {
			counts[label]++
		}
		for label, count := range counts {
			if label == dyclee.Unclassed {
				fmt.Printf("unclassed: %d samples\n", count)
			} else {
				fmt.Printf("cluster %d: %d samples\n", label, count)
			}
		}
	}
}
