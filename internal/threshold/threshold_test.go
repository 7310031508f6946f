package threshold

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"virtual-conductor/internal/transit"
)

var allTypes = []transit.LineType{
	transit.LineTypeNormal,
	transit.LineTypeSubway,
	transit.LineTypeTram,
	transit.LineTypeMonorailOrAGT,
	transit.LineTypeBulletTrain,
	transit.LineTypeOther,
	transit.LineType("UNKNOWN"),
}

func TestApproachAboveArrive(t *testing.T) {
	for _, lt := range allTypes {
		th := For(lt)
		assert.Greater(t, th.Approach, th.Arrive, string(lt))
		assert.GreaterOrEqual(t, th.Arrive, 0.0, string(lt))
	}
}

func TestOrdering(t *testing.T) {
	bullet := For(transit.LineTypeBulletTrain)
	tram := For(transit.LineTypeTram)
	for _, lt := range allTypes {
		th := For(lt)
		assert.GreaterOrEqual(t, bullet.Approach, th.Approach)
		assert.GreaterOrEqual(t, bullet.Arrive, th.Arrive)
		assert.LessOrEqual(t, tram.Approach, th.Approach)
		assert.LessOrEqual(t, tram.Arrive, th.Arrive)
	}
}

func TestValues(t *testing.T) {
	cases := []struct {
		lt   transit.LineType
		want Thresholds
	}{
		{transit.LineTypeNormal, Thresholds{1000, 200}},
		{transit.LineTypeBulletTrain, Thresholds{10000, 400}},
		{transit.LineTypeSubway, Thresholds{2000, 400}},
		{transit.LineTypeTram, Thresholds{500, 100}},
		{transit.LineTypeMonorailOrAGT, Thresholds{500, 100}},
		{transit.LineTypeOther, Thresholds{1000, 200}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, For(tc.lt), string(tc.lt))
	}
}

func TestBadAccuracy(t *testing.T) {
	coarse, fine := 350.0, 20.0
	assert.True(t, BadAccuracy(&coarse, transit.LineTypeNormal))
	assert.False(t, BadAccuracy(&coarse, transit.LineTypeBulletTrain))
	assert.False(t, BadAccuracy(&fine, transit.LineTypeTram))
	assert.False(t, BadAccuracy(nil, transit.LineTypeNormal))
}
