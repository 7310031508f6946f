package transit

import "time"

// Coordinate is a WGS84 position. Either side may be missing.
type Coordinate struct {
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// LatLon builds a fully populated Coordinate.
func LatLon(lat, lon float64) Coordinate {
	return Coordinate{Latitude: &lat, Longitude: &lon}
}

// Valid reports whether both components are present.
func (c Coordinate) Valid() bool { return c.Latitude != nil && c.Longitude != nil }

// Location is one GPS fix as delivered by the device.
type Location struct {
	Coordinate
	Accuracy  *float64  `json:"accuracy,omitempty"` // metres
	Timestamp time.Time `json:"timestamp"`
}

type StopCondition string

const (
	StopAll         StopCondition = "ALL"
	StopNot         StopCondition = "NOT"
	StopPartial     StopCondition = "PARTIAL"
	StopWeekday     StopCondition = "WEEKDAY"
	StopHoliday     StopCondition = "HOLIDAY"
	StopPartialStop StopCondition = "PARTIAL_STOP"
)

type LineType string

const (
	LineTypeNormal        LineType = "NORMAL"
	LineTypeSubway        LineType = "SUBWAY"
	LineTypeTram          LineType = "TRAM"
	LineTypeMonorailOrAGT LineType = "MONORAIL_OR_AGT"
	LineTypeBulletTrain   LineType = "BULLET_TRAIN"
	LineTypeOther         LineType = "OTHER"
)

type TransportType string

const (
	TransportRail TransportType = "RAIL"
	TransportBus  TransportType = "BUS"
)

type TrainTypeKind string

const (
	KindDefault        TrainTypeKind = "DEFAULT"
	KindRapid          TrainTypeKind = "RAPID"
	KindExpress        TrainTypeKind = "EXPRESS"
	KindLimitedExpress TrainTypeKind = "LIMITED_EXPRESS"
	KindHighSpeedRapid TrainTypeKind = "HIGH_SPEED_RAPID"
	KindBranch         TrainTypeKind = "BRANCH"
)

type Company struct {
	ID               int    `json:"id"`
	NameShort        string `json:"nameShort"`
	NameEnglishShort string `json:"nameEnglishShort"`
}

type Line struct {
	ID            int           `json:"id"`
	NameShort     string        `json:"nameShort"`
	NameRoman     string        `json:"nameRoman"`
	NameKatakana  string        `json:"nameKatakana"`
	Color         string        `json:"color,omitempty"`
	LineType      LineType      `json:"lineType"`
	TransportType TransportType `json:"transportType"`
	Company       *Company      `json:"company,omitempty"`
	TrainType     *TrainType    `json:"trainType,omitempty"`
}

type TrainType struct {
	ID           int           `json:"id"`
	GroupID      int           `json:"groupId"`
	TypeID       int           `json:"typeId"`
	Name         string        `json:"name"`
	NameRoman    string        `json:"nameRoman"`
	NameKatakana string        `json:"nameKatakana"`
	Kind         TrainTypeKind `json:"kind"`
	Lines        []Line        `json:"lines,omitempty"` // lines this type runs on
}

// StationNumber is a raw numbering code such as "JY-05" or "K-01-2".
type StationNumber struct {
	LineSymbol string `json:"lineSymbol"`
	Code       string `json:"code"`
}

// Station is one platform record. Records of the same real-world stop
// share GroupID.
type Station struct {
	ID             int             `json:"id"`
	GroupID        int             `json:"groupId"`
	Name           string          `json:"name"`
	NameRoman      string          `json:"nameRoman"`
	NameKatakana   string          `json:"nameKatakana"`
	Coordinate     Coordinate      `json:"coordinate"`
	Distance       float64         `json:"distance"` // metres from the last location, per tick
	StopCondition  StopCondition   `json:"stopCondition"`
	Line           *Line           `json:"line,omitempty"` // line the record is listed under
	Lines          []Line          `json:"lines,omitempty"`
	TrainType      *TrainType      `json:"trainType,omitempty"`
	StationNumbers []StationNumber `json:"stationNumbers,omitempty"`
}

// WithDistance returns a copy carrying d. The receiver is left untouched.
func (s Station) WithDistance(d float64) Station {
	s.Distance = d
	return s
}

// SameStop compares logical stations.
func (s Station) SameStop(o Station) bool { return s.GroupID == o.GroupID }

// PrimaryNumber returns the first station number, if any.
func (s Station) PrimaryNumber() *StationNumber {
	if len(s.StationNumbers) == 0 {
		return nil
	}
	n := s.StationNumbers[0]
	return &n
}

// Route is the immutable graph produced once per route selection.
type Route struct {
	Line      Line       `json:"line"`
	TrainType *TrainType `json:"trainType,omitempty"`
	Stations  []Station  `json:"stations"`
}
