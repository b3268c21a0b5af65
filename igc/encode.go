package igc

import(
	"strings"
	"time"

	"github.com/skypies/flightlog"
)

// Encode renders the track as an IGC document. The wall clock is read once, for the
// G record; use EncodeAt when the output needs to be reproducible.
func Encode(t flightlog.Track, md Metadata) (string, error) {
	return EncodeAt(t, md, time.Now())
}

func EncodeAt(t flightlog.Track, md Metadata, now time.Time) (string, error) {
	doc,err := Build(t, md, now)
	if err != nil { return "", err }
	return doc.String(), nil
}

// Build assembles the records for a track, in file order.
func Build(t flightlog.Track, md Metadata, now time.Time) (Document, error) {
	if len(t) == 0 { return nil, flightlog.ErrEmptyTrack }

	doc := Document{}
	add := func(k RecordKind, text string) { doc = append(doc, Record{Kind:k, Text:text}) }

	add(Manufacturer, ManufacturerRecord(md))
	for _,h := range HeaderRecords(t[0].TimestampUTC, md) {
		add(Header, h)
	}
	add(Extension, ExtensionRecord)
	for _,tp := range t {
		add(Fix, FixRecord(tp))
	}
	add(Security, "G" + securityDigest(now))

	return doc, nil
}

func ManufacturerRecord(md Metadata) string {
	maker := fitString(strings.ToUpper(orDefault(md.Manufacturer, DefaultManufacturer)), 3, 'X')
	id := fitString(strings.ToUpper(orDefault(md.DeviceID, DefaultDeviceID)), 3, 'X')
	typ := digitsOnly(orDefault(md.DeviceType, DefaultDeviceType), 3)
	return "A" + maker + id + typ
}

// HeaderRecords are the H lines. The flight date is the UTC date of the first fix.
func HeaderRecords(start time.Time, md Metadata) []string {
	return []string{
		"HFDTE" + formatDate(start),
		"HFPLT" + orDefault(md.PilotName, DefaultPilot),
		"HFGTY:GLIDER TYPE:" + orDefault(md.GliderType, DefaultGliderType),
		"HFGID:GLIDER ID:" + orDefault(md.GliderID, DefaultGliderID),
		"HFDTM100:DATUM:WGS-1984",
		"HFRFWFIRMWAREVERSION:" + orDefault(md.FirmwareVersion, DefaultVersion),
		"HFRHWHARDWAREVERSION:" + orDefault(md.HardwareVersion, DefaultVersion),
		"HFFTYFRTYPE:SkyTracker," + orDefault(md.RecorderType, DefaultRecorderType),
		"HFGPS:GPS",
		"HFPRS:PRESS ALT SENSOR:NONE",
		"HFCID:COMPETITION ID:" + oneLine(md.CompetitionID),
		"HFCCL:COMPETITION CLASS:" + oneLine(md.CompetitionClass),
	}
}

// FixRecord is the 39 character B line for a trackpoint. There is no barometer, so the
// pressure altitude column repeats the GPS altitude. Satellite count is not known.
func FixRecord(tp flightlog.Trackpoint) string {
	alt := formatAltitude(tp.Altitude)
	return "B" +
		formatTime(tp.TimestampUTC) +
		formatLatitude(tp.Lat) +
		formatLongitude(tp.Long) +
		"A" +
		alt + // pressure altitude
		alt + // GPS altitude
		formatAccuracy(tp.Accuracy) +
		"00"
}
