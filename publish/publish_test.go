package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"

	"github.com/skypies/flightlog/analysis"
	"github.com/skypies/flightlog/config"
)

func TestParseGCSPath(t *testing.T) {
	tests := []struct{
		In             string
		Bucket, Object string
		Ok             bool
	}{
		{"gs://tracks/2024/a.igc", "tracks", "2024/a.igc", true},
		{"gs://my-bucket.example/x.igc.gz", "my-bucket.example", "x.igc.gz", true},
		{"gs://tracks/", "", "", false},
		{"gs://tracks", "", "", false},
		{"/tmp/a.igc", "", "", false},
		{"s3://tracks/a.igc", "", "", false},
	}
	for _,test := range tests {
		b,o,ok := ParseGCSPath(test.In)
		if b != test.Bucket || o != test.Object || ok != test.Ok {
			t.Errorf("%q: got (%q,%q,%v), wanted (%q,%q,%v)", test.In, b, o, ok,
				test.Bucket, test.Object, test.Ok)
		}
	}
}

func TestObjectBase(t *testing.T) {
	abq := &analysis.AnalysisForBigQuery{
		Pilot: "Jo O'Pilot ",
		Date: "2024-07-14",
		Start: time.Date(2024, 7, 14, 10, 5, 9, 0, time.UTC),
	}
	if got := ObjectBase(abq); got != "2024-07-14/jo-o-pilot-100509" {
		t.Errorf("got %q", got)
	}

	abq.Pilot = "???"
	if got := ObjectBase(abq); got != "2024-07-14/unknown-100509" {
		t.Errorf("unnamed pilot: got %q", got)
	}
}

func TestWriteRows(t *testing.T) {
	rows := []*analysis.AnalysisForBigQuery{
		{Pilot: "a", Date: "2024-07-14", ThermalCount: 2},
		{Pilot: "b", Date: "2024-07-15"},
	}

	var buf bytes.Buffer
	n,err := WriteRows(&buf, rows...)
	if err != nil || n != 2 {
		t.Fatalf("WriteRows: got %d, %v", n, err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, wanted 2:\n%s", len(lines), buf.String())
	}

	var row analysis.AnalysisForBigQuery
	if err := json.Unmarshal([]byte(lines[0]), &row); err != nil {
		t.Fatalf("line 0 not JSON: %v", err)
	}
	if row.Pilot != "a" || row.ThermalCount != 2 {
		t.Errorf("line 0: got %+v", row)
	}
}

func TestOpenLocal(t *testing.T) {
	dir := t.TempDir()
	text := "AXSKYTRK001\r\nHFDTE140724\r\n"

	plain := filepath.Join(dir, "a.igc")
	if err := os.WriteFile(plain, []byte(text), 0o600); err != nil { t.Fatal(err) }

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	gz.Write([]byte(text))
	gz.Close()
	zipped := filepath.Join(dir, "a.igc.gz")
	if err := os.WriteFile(zipped, buf.Bytes(), 0o600); err != nil { t.Fatal(err) }

	var p *Publisher
	for _,name := range []string{plain, zipped} {
		rc,err := p.Open(context.Background(), name)
		if err != nil { t.Fatalf("Open(%s): %v", name, err) }
		b,err := io.ReadAll(rc)
		if err != nil { t.Errorf("read %s: %v", name, err) }
		if err := rc.Close(); err != nil { t.Errorf("close %s: %v", name, err) }
		if string(b) != text {
			t.Errorf("%s: got %q, wanted %q", name, b, text)
		}
	}

	if _,err := p.Open(context.Background(), filepath.Join(dir, "missing.igc")); err == nil {
		t.Errorf("missing file: wanted an error")
	}
}

func TestPublishNeedsBucket(t *testing.T) {
	p := New(config.Config{}, nil)
	if _,err := p.Publish(context.Background(), "", &analysis.AnalysisForBigQuery{}); err == nil {
		t.Errorf("no bucket: wanted an error")
	}
}

func TestNewCredentials(t *testing.T) {
	p := New(config.Config{GCSBucket: "b", GCPCredentials: "/etc/key.json"}, nil)
	if p.Bucket != "b" || len(p.Opts) != 1 {
		t.Errorf("got bucket %q with %d opts", p.Bucket, len(p.Opts))
	}
}
