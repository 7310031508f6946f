package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/nats-io/nats.go"

	"virtual-conductor/internal/conductor"
	"virtual-conductor/internal/transit"
)

type NATSPublisher struct {
	nc          *nats.Conn
	prefix      string
	lineID      int
	logSubjects bool
	metrics     PublisherMetrics
}

type PublisherMetrics interface {
	NATSPublishedInc()
	NATSPublishErrInc()
	PublishObserve(d time.Duration)
	NATSSetConnected(connected bool)
}

func NewNATSPublisher(url, prefix string, lineID int, logSubjects bool, m PublisherMetrics) (*NATSPublisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("virtual-conductor"),
		nats.DisconnectHandler(func(_ *nats.Conn) {
			if m != nil {
				m.NATSSetConnected(false)
			}
			log.Printf("nats disconnected")
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			if m != nil {
				m.NATSSetConnected(true)
			}
			log.Printf("nats reconnected")
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			if m != nil {
				m.NATSSetConnected(false)
			}
			log.Printf("nats closed")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect %s: %w", url, err)
	}
	if m != nil {
		m.NATSSetConnected(true)
	}
	return &NATSPublisher{nc: nc, prefix: prefix, lineID: lineID, logSubjects: logSubjects, metrics: m}, nil
}

func (p *NATSPublisher) Close() {
	if p.nc != nil {
		p.nc.Drain()
		p.nc.Close()
	}
}

// StateMessage is published once per tick on <prefix>.<line>.state.
type StateMessage struct {
	LineID      int                 `json:"lineId"`
	Timestamp   time.Time           `json:"timestamp"`
	Lat         float64             `json:"lat"`
	Lon         float64             `json:"lon"`
	Accuracy    *float64            `json:"accuracy,omitempty"`
	Arrived     bool                `json:"arrived"`
	Approaching bool                `json:"approaching"`
	BadAccuracy bool                `json:"badAccuracy"`
	HeaderState transit.HeaderState `json:"headerState"`
	Current     *StationRef         `json:"current,omitempty"`
	Next        *StationRef         `json:"next,omitempty"`
	Bound       string              `json:"bound,omitempty"`
	BoundRoman  string              `json:"boundRoman,omitempty"`
	Upcoming    []StationRef        `json:"upcoming,omitempty"`
}

type StationRef struct {
	ID        int    `json:"id"`
	GroupID   int    `json:"groupId"`
	Name      string `json:"name"`
	NameRoman string `json:"nameRoman"`
}

func stationRef(s *transit.Station) *StationRef {
	if s == nil {
		return nil
	}
	return &StationRef{ID: s.ID, GroupID: s.GroupID, Name: s.Name, NameRoman: s.NameRoman}
}

func NewStateMessage(lineID int, loc transit.Location, res conductor.Result) StateMessage {
	msg := StateMessage{
		LineID:      lineID,
		Timestamp:   loc.Timestamp,
		Accuracy:    loc.Accuracy,
		Arrived:     res.Arrived,
		Approaching: res.Approaching,
		BadAccuracy: res.BadAccuracy,
		HeaderState: res.HeaderState,
		Current:     stationRef(res.Current),
		Next:        stationRef(res.Next),
		Bound:       res.Bound.Name,
		BoundRoman:  res.Bound.NameRoman,
	}
	if loc.Valid() {
		msg.Lat, msg.Lon = *loc.Latitude, *loc.Longitude
	}
	for i := range res.Window {
		msg.Upcoming = append(msg.Upcoming, *stationRef(&res.Window[i]))
	}
	return msg
}

func (p *NATSPublisher) PublishState(msg StateMessage) error {
	return p.publish(p.subject("state"), msg)
}

// Announce implements conductor.Sink.
func (p *NATSPublisher) Announce(_ context.Context, a conductor.Announcement) error {
	return p.publish(p.subject("announcement"), a)
}

func (p *NATSPublisher) subject(kind string) string {
	return Subject(p.prefix, p.lineID, kind)
}

// Subject builds <prefix>.<line>.<kind>; the prefix may itself be dotted.
func Subject(prefix string, lineID int, kind string) string {
	parts := strings.Split(prefix, ".")
	for i, s := range parts {
		parts[i] = subjectToken(s)
	}
	return fmt.Sprintf("%s.%s.%s", strings.Join(parts, "."), strconv.Itoa(lineID), subjectToken(kind))
}

func (p *NATSPublisher) publish(subject string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if p.logSubjects {
		log.Printf("nats publish subject=%s", subject)
	}
	start := time.Now()
	err = p.nc.Publish(subject, b)
	if p.metrics != nil {
		p.metrics.PublishObserve(time.Since(start))
		if err != nil {
			p.metrics.NATSPublishErrInc()
		} else {
			p.metrics.NATSPublishedInc()
		}
	}
	return err
}

func subjectToken(s string) string {
	s = strings.TrimSpace(s)
	// NATS token cannot contain spaces, '>', '*', or trailing '.'
	repl := strings.NewReplacer(" ", "_", ".", "_", ">", "_", "*", "_", "/", "_", "\t", "_")
	s = repl.Replace(s)
	if s == "" {
		s = "_"
	}
	return s
}
