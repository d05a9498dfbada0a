// Package tcx builds, writes and validates Garmin Training Center XML
// session documents.
package tcx

import "encoding/xml"

// Namespace and schema constants of the TrainingCenterDatabase v2 format.
const (
	Namespace          = "http://www.garmin.com/xmlschemas/TrainingCenterDatabase/v2"
	SchemaLocation     = "http://www.garmin.com/xmlschemas/TrainingCenterDatabase/v2 http://www.garmin.com/xmlschemas/TrainingCenterDatabasev2.xsd"
	XSDNamespace       = "http://www.w3.org/2001/XMLSchema"
	XSINamespace       = "http://www.w3.org/2001/XMLSchema-instance"
	ExtensionNamespace = "http://www.garmin.com/xmlschemas/ActivityExtension/v2"
	SchemaURL          = "https://www8.garmin.com/xmlschemas/TrainingCenterDatabasev2.xsd"
)

// Static creator/device and author metadata. Downstream consumers expect
// these blocks byte-for-byte, so they never vary per session.
const (
	creatorName    = "Huawei Fitness Tracking Device"
	creatorUnitID  = "0000000000"
	creatorProduct = "0000"
	authorName     = "Huawei_TCX_Converter"
	authorLangID   = "en"
	authorPart     = "000-00000-00"
)

// TrainingCenterDatabase is the document root.
type TrainingCenterDatabase struct {
	XMLName        xml.Name   `xml:"TrainingCenterDatabase"`
	SchemaLocation string     `xml:"xsi:schemaLocation,attr"`
	Xmlns          string     `xml:"xmlns,attr"`
	XmlnsXSD       string     `xml:"xmlns:xsd,attr"`
	XmlnsXSI       string     `xml:"xmlns:xsi,attr"`
	XmlnsNS3       string     `xml:"xmlns:ns3,attr"`
	Activities     Activities `xml:"Activities"`
	Author         Author     `xml:"Author"`
}

// Activities wraps the single activity of a conversion.
type Activities struct {
	Activity Activity `xml:"Activity"`
}

// Activity is one exercise session.
type Activity struct {
	Sport   string  `xml:"Sport,attr"`
	ID      string  `xml:"Id"`
	Laps    []Lap   `xml:"Lap"`
	Creator Creator `xml:"Creator"`
}

// Lap is one active interval with its track of points.
type Lap struct {
	StartTime        string `xml:"StartTime,attr"`
	TotalTimeSeconds int    `xml:"TotalTimeSeconds"`
	DistanceMeters   int    `xml:"DistanceMeters"`
	Calories         int    `xml:"Calories"`
	Intensity        string `xml:"Intensity"`
	TriggerMethod    string `xml:"TriggerMethod"`
	Track            Track  `xml:"Track"`
}

// Track holds the ordered trackpoints of a lap.
type Track struct {
	Trackpoints []Trackpoint `xml:"Trackpoint"`
}

// Trackpoint is one merged sample. Optional children are omitted when the
// underlying record has no value for them; element order follows the schema.
type Trackpoint struct {
	Time           string        `xml:"Time"`
	Position       *Position     `xml:"Position,omitempty"`
	AltitudeMeters string        `xml:"AltitudeMeters,omitempty"`
	DistanceMeters string        `xml:"DistanceMeters,omitempty"`
	HeartRateBpm   *HeartRateBpm `xml:"HeartRateBpm,omitempty"`
	Cadence        string        `xml:"Cadence,omitempty"`
	Extensions     *Extensions   `xml:"Extensions,omitempty"`
}

// Position is a latitude/longitude pair in degrees.
type Position struct {
	LatitudeDegrees  string `xml:"LatitudeDegrees"`
	LongitudeDegrees string `xml:"LongitudeDegrees"`
}

// HeartRateBpm wraps a heart-rate value with its schema type.
type HeartRateBpm struct {
	XsiType string `xml:"xsi:type,attr"`
	Value   int    `xml:"Value"`
}

// Extensions carries the run-cadence activity extension.
type Extensions struct {
	TPX TPX `xml:"TPX"`
}

// TPX is the Garmin activity extension block.
type TPX struct {
	Xmlns      string `xml:"xmlns,attr"`
	RunCadence int    `xml:"RunCadence"`
}

// Creator identifies the recording device.
type Creator struct {
	XsiType   string  `xml:"xsi:type,attr"`
	Name      string  `xml:"Name"`
	UnitID    string  `xml:"UnitId"`
	ProductID string  `xml:"ProductID"`
	Version   Version `xml:"Version"`
}

// Author identifies the producing application.
type Author struct {
	XsiType    string    `xml:"xsi:type,attr"`
	Name       string    `xml:"Name"`
	Build      BuildInfo `xml:"Build"`
	LangID     string    `xml:"LangID"`
	PartNumber string    `xml:"PartNumber"`
}

// BuildInfo wraps the author version block.
type BuildInfo struct {
	Version Version `xml:"Version"`
}

// Version is a four-part version number.
type Version struct {
	VersionMajor int `xml:"VersionMajor"`
	VersionMinor int `xml:"VersionMinor"`
	BuildMajor   int `xml:"BuildMajor"`
	BuildMinor   int `xml:"BuildMinor"`
}
