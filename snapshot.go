package flightlog

import(
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
)

// Snapshots are the binary form of a track: msgpack, compressed with zstd. They are
// what we cache once an IGC file has been decoded and had its rates derived.

func WriteSnapshot(w io.Writer, t Track) error {
	zw,err := zstd.NewWriter(w)
	if err != nil { return err }

	if err := msgpack.NewEncoder(zw).Encode(t); err != nil {
		zw.Close()
		return fmt.Errorf("snapshot encode: %w", err)
	}
	return zw.Close()
}

func ReadSnapshot(r io.Reader) (Track, error) {
	zr,err := zstd.NewReader(r)
	if err != nil { return nil, err }
	defer zr.Close()

	t := Track{}
	if err := msgpack.NewDecoder(zr).Decode(&t); err != nil {
		return nil, fmt.Errorf("snapshot decode: %w", err)
	}

	// msgpack hands times back in the local zone
	for i := range t {
		t[i].TimestampUTC = t[i].TimestampUTC.UTC()
	}
	return t, nil
}
