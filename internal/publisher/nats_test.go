package publisher

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"virtual-conductor/internal/conductor"
	"virtual-conductor/internal/loop"
	"virtual-conductor/internal/transit"
)

func TestSubject(t *testing.T) {
	assert.Equal(t, "conductor.11302.state", Subject("conductor", 11302, "state"))
	assert.Equal(t, "fleet.tokyo.1.announcement", Subject("fleet.tokyo", 1, "announcement"))
	assert.Equal(t, "my_app.1.state", Subject("my app", 1, "state"))
	assert.Equal(t, "_.1.state", Subject("", 1, "state"))
}

func TestSubjectToken(t *testing.T) {
	assert.Equal(t, "a_b_c_d", subjectToken(" a b>c*d "))
	assert.Equal(t, "_", subjectToken("  "))
}

func TestNewStateMessage(t *testing.T) {
	acc := 8.0
	loc := transit.Location{Coordinate: transit.LatLon(35.68, 139.76), Accuracy: &acc, Timestamp: time.Unix(1700000000, 0).UTC()}
	cur := transit.Station{ID: 1, GroupID: 10, Name: "東京", NameRoman: "Tokyo"}
	next := transit.Station{ID: 2, GroupID: 20, Name: "神田", NameRoman: "Kanda"}
	res := conductor.Result{
		Arrived:     true,
		HeaderState: transit.HeaderCurrentEN,
		Current:     &cur,
		Next:        &next,
		Window:      []transit.Station{cur, next},
		Bound:       loop.Bound{Name: "外回り", NameRoman: "Clockwise"},
	}

	msg := NewStateMessage(11302, loc, res)
	assert.Equal(t, 35.68, msg.Lat)
	assert.Equal(t, 139.76, msg.Lon)
	assert.Equal(t, "Tokyo", msg.Current.NameRoman)
	assert.Equal(t, 20, msg.Next.GroupID)
	assert.Len(t, msg.Upcoming, 2)

	b, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"lineId": 11302,
		"timestamp": "2023-11-14T22:13:20Z",
		"lat": 35.68, "lon": 139.76, "accuracy": 8,
		"arrived": true, "approaching": false, "badAccuracy": false,
		"headerState": "CURRENT_EN",
		"current": {"id": 1, "groupId": 10, "name": "東京", "nameRoman": "Tokyo"},
		"next": {"id": 2, "groupId": 20, "name": "神田", "nameRoman": "Kanda"},
		"bound": "外回り", "boundRoman": "Clockwise",
		"upcoming": [
			{"id": 1, "groupId": 10, "name": "東京", "nameRoman": "Tokyo"},
			{"id": 2, "groupId": 20, "name": "神田", "nameRoman": "Kanda"}
		]
	}`, string(b))
}

func TestNewStateMessageWithoutFix(t *testing.T) {
	msg := NewStateMessage(1, transit.Location{}, conductor.Result{})
	assert.Zero(t, msg.Lat)
	assert.Nil(t, msg.Current)
	assert.Empty(t, msg.Upcoming)
}

var _ conductor.Sink = (*NATSPublisher)(nil)
