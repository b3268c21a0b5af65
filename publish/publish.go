// Package publish moves flights into Google Cloud: the IGC file and a one-row JSON
// summary go into a GCS bucket, then BigQuery is asked to load the summary.
//
// The service account running this needs object write access on the bucket, and
// BigQuery job + table write access on the destination project.
package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"regexp"
	"strings"
	"time"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/storage"
	"github.com/klauspost/compress/gzip"
	"google.golang.org/api/option"

	"github.com/skypies/flightlog/analysis"
	"github.com/skypies/flightlog/config"
	"github.com/skypies/flightlog/log"
)

// Publisher knows where flights go. The zero value can read local files only.
type Publisher struct {
	Bucket  string
	Project string // BigQuery project; may differ from the bucket's
	Dataset string
	Table   string

	Log  *log.Logger
	Opts []option.ClientOption
}

func New(cfg config.Config, l *log.Logger) *Publisher {
	p := &Publisher{
		Bucket:  cfg.GCSBucket,
		Project: cfg.BQProject,
		Dataset: cfg.BQDataset,
		Table:   cfg.BQTable,
		Log:     l,
	}
	if cfg.GCPCredentials != "" {
		p.Opts = append(p.Opts, option.WithCredentialsFile(cfg.GCPCredentials))
	}
	return p
}

// {{{ paths

var gcsPathRegexp = regexp.MustCompile(`^gs://([a-z0-9][-_.a-z0-9]*)/(.+)$`)

// ParseGCSPath splits "gs://bucket/some/object" into its bucket and object name.
func ParseGCSPath(p string) (bucket, object string, ok bool) {
	m := gcsPathRegexp.FindStringSubmatch(p)
	if m == nil { return "", "", false }
	return m[1], m[2], true
}

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9]+`)

// ObjectBase is the name the flight's files share, without extension: the UTC date
// folder, then the pilot and start time, e.g. "2024-07-14/jo-pilot-100000".
func ObjectBase(abq *analysis.AnalysisForBigQuery) string {
	who := strings.Trim(unsafeNameChars.ReplaceAllString(strings.ToLower(abq.Pilot), "-"), "-")
	if who == "" { who = "unknown" }
	return fmt.Sprintf("%s/%s-%s", abq.Date, who, abq.Start.UTC().Format("150405"))
}

// }}}
// {{{ reading

type multiCloser struct {
	io.Reader
	closers []io.Closer
}

func (mc multiCloser)Close() error {
	var errs []error
	for i:=len(mc.closers)-1; i>=0; i-- {
		errs = append(errs, mc.closers[i].Close())
	}
	return errors.Join(errs...)
}

// Open reads a local file or a gs:// object. Anything ending in .gz is gunzipped.
func (p *Publisher)Open(ctx context.Context, name string) (io.ReadCloser, error) {
	mc := multiCloser{}

	if bucket,object,ok := ParseGCSPath(name); ok {
		client,err := storage.NewClient(ctx, p.opts()...)
		if err != nil { return nil, fmt.Errorf("GCS client: %w", err) }
		rdr,err := client.Bucket(bucket).Object(object).NewReader(ctx)
		if err != nil {
			client.Close()
			return nil, fmt.Errorf("GCS-Open %s|%s: %w", bucket, object, err)
		}
		mc.Reader = rdr
		mc.closers = append(mc.closers, client, rdr)
	} else {
		f,err := os.Open(name)
		if err != nil { return nil, err }
		mc.Reader = f
		mc.closers = append(mc.closers, f)
	}

	if strings.HasSuffix(name, ".gz") {
		gz,err := gzip.NewReader(mc.Reader)
		if err != nil {
			mc.Close()
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		mc.Reader = gz
		mc.closers = append(mc.closers, gz)
	}

	return mc, nil
}

func (p *Publisher)opts() []option.ClientOption {
	if p == nil { return nil }
	return p.Opts
}

// }}}
// {{{ writing

// WriteRows writes newline-delimited JSON, the format BigQuery loads from GCS.
func WriteRows(w io.Writer, rows ...*analysis.AnalysisForBigQuery) (int, error) {
	enc := json.NewEncoder(w)
	n := 0
	for _,row := range rows {
		if err := enc.Encode(row); err != nil { return n, err }
		n++
	}
	return n, nil
}

// Exists reports whether the object is already in the bucket.
func (p *Publisher)Exists(ctx context.Context, client *storage.Client, object string) (bool, error) {
	_,err := client.Bucket(p.Bucket).Object(object).Attrs(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return false, nil
	} else if err != nil {
		return false, err
	}
	return true, nil
}

func (p *Publisher)put(ctx context.Context, client *storage.Client, object, contentType string, body []byte) error {
	w := client.Bucket(p.Bucket).Object(object).NewWriter(ctx)
	w.ContentType = contentType
	if _,err := w.Write(body); err != nil {
		w.Close()
		return fmt.Errorf("GCS-Write gs://%s/%s: %w", p.Bucket, object, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("GCS-Close gs://%s/%s: %w", p.Bucket, object, err)
	}
	p.Log.Info("GCS object written", "bucket", p.Bucket, "object", object, "bytes", len(body))
	return nil
}

// }}}
// {{{ Publish

// Result says where things ended up.
type Result struct {
	IGCObject  string
	RowsObject string
	Skipped    bool // The flight was already published; nothing was written or loaded
	Loaded     bool
}

func (r Result)String() string {
	if r.Skipped { return fmt.Sprintf("%s already published, skipped", r.IGCObject) }
	return fmt.Sprintf("wrote %s, %s (loaded=%v)", r.IGCObject, r.RowsObject, r.Loaded)
}

// Publish uploads the IGC text and its summary row, then submits the load job if
// BigQuery is configured. A flight whose IGC object already exists is left alone, so
// re-running is safe.
func (p *Publisher)Publish(ctx context.Context, igcText string, abq *analysis.AnalysisForBigQuery) (Result, error) {
	if p.Bucket == "" { return Result{}, fmt.Errorf("publish: no GCS bucket configured") }

	base := ObjectBase(abq)
	res := Result{IGCObject: "igc/"+base+".igc", RowsObject: "bigquery/"+base+".json"}

	client,err := storage.NewClient(ctx, p.Opts...)
	if err != nil { return res, fmt.Errorf("GCS client: %w", err) }
	defer client.Close()

	if exists,err := p.Exists(ctx, client, res.IGCObject); err != nil {
		return res, err
	} else if exists {
		res.Skipped = true
		p.Log.Info("flight already published", "object", res.IGCObject)
		return res, nil
	}

	var buf bytes.Buffer
	if _,err := WriteRows(&buf, abq); err != nil { return res, err }

	if err := p.put(ctx, client, res.RowsObject, "application/json", buf.Bytes()); err != nil {
		return res, err
	}
	if err := p.put(ctx, client, res.IGCObject, "text/plain", []byte(igcText)); err != nil {
		return res, err
	}

	if p.Project == "" || p.Dataset == "" || p.Table == "" {
		p.Log.Warn("BigQuery not configured, not loading", "object", res.RowsObject)
		return res, nil
	}

	if err := p.SubmitLoadJob(ctx, res.RowsObject); err != nil {
		return res, err
	}
	res.Loaded = true

	return res, nil
}

// SubmitLoadJob asks BigQuery to append a JSON file from the bucket to the table, and
// waits for it. The table has to exist already.
func (p *Publisher)SubmitLoadJob(ctx context.Context, object string) error {
	tStart := time.Now()

	client,err := bigquery.NewClient(ctx, p.Project, p.Opts...)
	if err != nil {
		return fmt.Errorf("Creating bigquery client: %w", err)
	}
	defer client.Close()

	gcsSrc := bigquery.NewGCSReference(fmt.Sprintf("gs://%s/%s", p.Bucket, object))
	gcsSrc.SourceFormat = bigquery.JSON
	gcsSrc.IgnoreUnknownValues = true

	loader := client.Dataset(p.Dataset).Table(p.Table).LoaderFrom(gcsSrc)
	loader.CreateDisposition = bigquery.CreateNever
	loader.WriteDisposition = bigquery.WriteAppend

	job,err := loader.Run(ctx)
	if err != nil {
		return fmt.Errorf("Submission of load job: %w", err)
	}

	status,err := job.Wait(ctx)
	if err != nil {
		return fmt.Errorf("Failure determining status: %w", err)
	} else if err := status.Err(); err != nil {
		detailedErrStr := ""
		for i,innerErr := range status.Errors {
			detailedErrStr += fmt.Sprintf(" [%2d] %v\n", i, innerErr)
		}
		p.Log.Errorf("BigQuery LoadJob error: %v\n--\n%s", err, detailedErrStr)
		return fmt.Errorf("Job error: %w", err)
	}

	p.Log.Info("BigQuery LoadJob done", "job", job.ID(), "table", path.Join(p.Dataset, p.Table),
		"took", time.Since(tStart).String())
	return nil
}

// }}}
