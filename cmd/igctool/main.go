package main

// igctool converts, checks, analyses and publishes flight tracks.
//
//   igctool [flags] encode in.json
//   igctool [flags] decode in.igc[.gz]
//   igctool [flags] validate in.igc
//   igctool [flags] analyse in.igc|in.json|in.msgpack.zst
//   igctool [flags] convert in.igc out.msgpack.zst
//   igctool [flags] convert in.gpx|in.kml out.igc
//   igctool [flags] publish gs://bucket/in.igc
//
// Settings come from FLIGHTLOG_* environment variables; see package config.

import(
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/skypies/util/histogram"

	"github.com/skypies/flightlog"
	"github.com/skypies/flightlog/analysis"
	"github.com/skypies/flightlog/config"
	"github.com/skypies/flightlog/igc"
	"github.com/skypies/flightlog/importer"
	"github.com/skypies/flightlog/log"
	"github.com/skypies/flightlog/publish"
)

var(
	ctx = context.Background()
	fPilot string
	fLogLevel string
	fWindow int
	fOut string
)

func init() {
	flag.StringVar(&fPilot, "pilot", "", "pilot name for IGC headers and published rows")
	flag.StringVar(&fLogLevel, "v", "", "log level (debug, info, warn, error)")
	flag.IntVar(&fWindow, "window", 0, "altitude smoothing window, in fixes, for decoded tracks")
	flag.StringVar(&fOut, "out", "", "write output here instead of stdout")
}

type tool struct {
	cfg config.Config
	l   *log.Logger
	pub *publish.Publisher
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: igctool [flags] encode|decode|validate|analyse|convert|publish <file> [out]\n")
	flag.PrintDefaults()
	os.Exit(2)
}

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) < 2 { usage() }

	cfg,err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}
	if fPilot != "" { cfg.Pilot = fPilot }
	if fLogLevel != "" { cfg.LogLevel = fLogLevel }
	if fWindow > 0 { cfg.SmoothingWindow = fWindow }

	l := log.New(cfg.LogLevel, cfg.LogDir)
	defer l.Close()

	t := tool{cfg:cfg, l:l, pub:publish.New(cfg, l)}

	switch cmd,in := args[0], args[1]; cmd {
	case "encode":   err = t.encode(in)
	case "decode":   err = t.decode(in)
	case "validate": err = t.validate(in)
	case "analyse", "analyze": err = t.analyse(in)
	case "convert":
		if len(args) < 3 { usage() }
		err = t.convert(in, args[2])
	case "publish":  err = t.publish(in)
	default:
		fmt.Fprintf(os.Stderr, "command '%s' not known\n", cmd)
		usage()
	}

	if err != nil {
		l.Errorf("%s: %v", args[0], err)
		l.Close()
		os.Exit(1)
	}
}

// {{{ input / output

// format is the file's kind, ignoring any trailing .gz
func format(name string) string {
	name = strings.TrimSuffix(strings.ToLower(name), ".gz")
	switch {
	case strings.HasSuffix(name, ".igc"):         return "igc"
	case strings.HasSuffix(name, ".json"):        return "json"
	case strings.HasSuffix(name, ".msgpack.zst"): return "snapshot"
	case strings.HasSuffix(name, ".gpx"):         return "gpx"
	case strings.HasSuffix(name, ".kml"):         return "kml"
	default:                                      return ""
	}
}

func (t tool)readAll(name string) ([]byte, error) {
	rc,err := t.pub.Open(ctx, name)
	if err != nil { return nil, err }
	defer rc.Close()
	return io.ReadAll(rc)
}

func (t tool)decodeIGC(name, text string) flightlog.Track {
	track,report := igc.Decode(text)
	for _,skipped := range report.Skipped {
		t.l.Debug("skipped IGC line", "file", name, "line", skipped.Line, "reason", skipped.Reason)
	}
	if len(report.Skipped) > 0 {
		t.l.Warnf("%s: %s", name, report)
	}
	return track.DeriveRates(t.cfg.SmoothingWindow)
}

// loadTrack reads any of the formats we know. IGC, GPX and KML carry no speed or vario,
// so those get derived.
func (t tool)loadTrack(name string) (flightlog.Track, error) {
	b,err := t.readAll(name)
	if err != nil { return nil, err }

	switch format(name) {
	case "igc":
		return t.decodeIGC(name, string(b)), nil
	case "json":
		track := flightlog.Track{}
		if err := json.Unmarshal(b, &track); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		track.Sort()
		return track, nil
	case "snapshot":
		return flightlog.ReadSnapshot(bytes.NewReader(b))
	case "gpx", "kml":
		read := importer.ReadGPX
		if format(name) == "kml" { read = importer.ReadKML }
		track,err := read(bytes.NewReader(b), time.Now().UTC().Truncate(time.Second))
		if err != nil { return nil, fmt.Errorf("%s: %w", name, err) }
		return track.DeriveRates(t.cfg.SmoothingWindow), nil
	default:
		return nil, fmt.Errorf("%s: unknown file type", name)
	}
}

func (t tool)output(name string) (io.WriteCloser, error) {
	if name == "" { return nopCloser{os.Stdout}, nil }
	return os.Create(name)
}

type nopCloser struct{ io.Writer }
func (nopCloser)Close() error { return nil }

func (t tool)writeJSON(name string, v interface{}) error {
	w,err := t.output(name)
	if err != nil { return err }
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func (t tool)writeString(name, s string) error {
	w,err := t.output(name)
	if err != nil { return err }
	if _,err := io.WriteString(w, s); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// }}}
// {{{ commands

func (t tool)encode(in string) error {
	track,err := t.loadTrack(in)
	if err != nil { return err }

	str,err := igc.Encode(track, t.cfg.Metadata())
	if err != nil { return fmt.Errorf("%s: %w", in, err) }

	t.l.Info("encoded", "file", in, "points", len(track))
	return t.writeString(fOut, str)
}

func (t tool)decode(in string) error {
	b,err := t.readAll(in)
	if err != nil { return err }

	track := t.decodeIGC(in, string(b))
	fmt.Fprintf(os.Stderr, "%s: %d points\n", in, len(track))
	return t.writeJSON(fOut, track)
}

func (t tool)validate(in string) error {
	b,err := t.readAll(in)
	if err != nil { return err }

	issues := igc.Validate(string(b))
	for _,issue := range issues {
		fmt.Printf("%s: %s\n", in, issue)
	}
	if len(issues) > 0 {
		return fmt.Errorf("%s: %d issues", in, len(issues))
	}
	fmt.Printf("%s: OK\n", in)
	return nil
}

func varioHistogram(track flightlog.Track) histogram.Histogram {
	// In dm/s offset by +50, so bucket 0 starts at -5m/s and each is 0.5m/s wide
	h := histogram.Histogram{ValMin:0, ValMax:100, NumBuckets:20}
	for _,tp := range track[1:] {
		h.Add(histogram.ScalarVal(tp.VerticalRate * 10 + 50))
	}
	return h
}

func (t tool)analyse(in string) error {
	track,err := t.loadTrack(in)
	if err != nil { return err }

	fa,err := analysis.Analyse(track)
	if err != nil { return fmt.Errorf("%s: %w", in, err) }

	fmt.Fprintf(os.Stderr, "%s", fa)
	h := varioHistogram(track)
	if stats,valid := h.Stats(); valid {
		fmt.Fprintf(os.Stderr, "Vario: N=%d, mean %.2f m/s, stddev %.2f m/s\n", stats.N,
			(float64(stats.Mean)-50)/10, float64(stats.Stddev)/10)
	}
	fmt.Fprintf(os.Stderr, "%s\n", h)

	return t.writeJSON(fOut, fa)
}

func (t tool)convert(in, out string) error {
	track,err := t.loadTrack(in)
	if err != nil { return err }

	switch format(out) {
	case "igc":
		str,err := igc.Encode(track, t.cfg.Metadata())
		if err != nil { return fmt.Errorf("%s: %w", in, err) }
		return t.writeString(out, str)

	case "json":
		return t.writeJSON(out, track)

	case "snapshot":
		f,err := os.Create(out)
		if err != nil { return err }
		if err := flightlog.WriteSnapshot(f, track); err != nil {
			f.Close()
			return err
		}
		return f.Close()

	default:
		return fmt.Errorf("%s: unknown file type", out)
	}
}

func (t tool)publish(in string) error {
	if !t.cfg.CanPublish() { return fmt.Errorf("FLIGHTLOG_GCS_BUCKET not set") }

	track,err := t.loadTrack(in)
	if err != nil { return err }

	fa,err := analysis.Analyse(track)
	if err != nil { return fmt.Errorf("%s: %w", in, err) }

	// Always publish our own encoding, so every IGC in the bucket has the same headers
	text,err := igc.Encode(track, t.cfg.Metadata())
	if err != nil { return err }

	res,err := t.pub.Publish(ctx, text, fa.ForBigQuery(t.cfg.Pilot))
	if err != nil { return err }

	fmt.Printf("%s: %s\n", in, res)
	return nil
}

// }}}
