package announce

import (
	"fmt"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"virtual-conductor/internal/loop"
	"virtual-conductor/internal/transit"
)

var (
	ginza     = transit.Line{ID: 28001, NameShort: "銀座線", NameRoman: "Ginza Line", NameKatakana: "ギンザセン"}
	hanzomon  = transit.Line{ID: 28003, NameShort: "半蔵門線", NameRoman: "Hanzomon Line", NameKatakana: "ハンゾウモンセン"}
	fukutoshi = transit.Line{ID: 28010, NameShort: "副都心線", NameRoman: "Fukutoshin Line", NameKatakana: "フクトシンセン"}
	yamanote  = transit.Line{ID: 11302, NameShort: "山手線", NameRoman: "Yamanote Line", NameKatakana: "ヤマノテセン"}

	omotesando = transit.Station{ID: 1, GroupID: 1, Name: "表参道", NameRoman: "Omote-sando", NameKatakana: "オモテサンドウ", StopCondition: transit.StopAll}
	gaienmae   = transit.Station{ID: 2, GroupID: 2, Name: "外苑前", NameRoman: "Gaiemmae", NameKatakana: "ガイエンマエ", StopCondition: transit.StopNot}
	shibuya    = transit.Station{ID: 3, GroupID: 3, Name: "渋谷", NameRoman: "Shibuya", NameKatakana: "シブヤ", StopCondition: transit.StopAll}
	asakusa    = transit.Station{ID: 4, GroupID: 4, Name: "浅草", NameRoman: "Asakusa", NameKatakana: "アサクサ", StopCondition: transit.StopAll}
)

var (
	sslPeriod   = regexp.MustCompile(`\s\.\s`)
	doubleSpace = regexp.MustCompile(`\s{2,}`)
)

func baseContext() Context {
	cur, next, after := omotesando, shibuya, asakusa
	return Context{
		Theme:         transit.ThemeTokyoMetro,
		StoppingState: transit.HeaderNext,
		Current:       &cur,
		Next:          &next,
		AfterNext:     &after,
		Line:          &ginza,
		Bound:         loop.Bound{Name: "浅草", NameRoman: "Asakusa", Terminal: &after},
		TransferLines: []transit.Line{hanzomon},
		Window:        []transit.Station{omotesando, gaienmae, shibuya, asakusa},
	}
}

func TestCurrentYieldsNothing(t *testing.T) {
	for _, theme := range transit.Themes {
		for _, state := range []transit.HeaderState{transit.HeaderCurrent, transit.HeaderCurrentEN, transit.HeaderCurrentKO} {
			c := baseContext()
			c.Theme, c.StoppingState, c.FirstSpeech = theme, state, true
			ja, en := Generate(c)
			assert.Empty(t, ja, "%s %s", theme, state)
			assert.Empty(t, en, "%s %s", theme, state)
		}
	}
}

func TestMissingNextStationYieldsNothing(t *testing.T) {
	c := baseContext()
	c.Next = nil
	ja, en := Generate(c)
	assert.Empty(t, ja)
	assert.Empty(t, en)
}

// TestNoDanglingPunctuationWithoutNumber walks every theme, state and
// optional clause combination with the station number missing.
func TestNoDanglingPunctuationWithoutNumber(t *testing.T) {
	for _, theme := range transit.Themes {
		for _, state := range []transit.HeaderState{transit.HeaderNext, transit.HeaderArriving} {
			for _, first := range []bool{true, false} {
				for _, term := range []bool{true, false} {
					name := fmt.Sprintf("%s/%s/first=%v/term=%v", theme, state, first, term)
					t.Run(name, func(t *testing.T) {
						c := baseContext()
						c.Theme, c.StoppingState, c.FirstSpeech = theme, state, first
						c.NextIsTerminus = term
						c.NextStationNumber = nil
						ja, en := Generate(c)
						require.NotEmpty(t, ja)
						require.NotEmpty(t, en)
						assert.False(t, sslPeriod.MatchString(en), en)
						assert.False(t, doubleSpace.MatchString(en), en)
						assert.NotContains(t, en, " ,")
						assert.NotContains(t, en, ",.")
					})
				}
			}
		}
	}
}

func TestNoArtifactsWithEmptyOptionalData(t *testing.T) {
	for _, theme := range transit.Themes {
		c := baseContext()
		c.Theme, c.FirstSpeech = theme, true
		c.Line, c.TrainType, c.Bound = nil, nil, loop.Bound{}
		c.TransferLines, c.ConnectedLines, c.Window = nil, nil, nil
		c.NextStationNumber = &transit.StationNumber{Code: ""}
		_, en := Generate(c)
		assert.False(t, sslPeriod.MatchString(en), en)
		assert.False(t, doubleSpace.MatchString(en), en)
	}
}

func TestStationNumberRendered(t *testing.T) {
	c := baseContext()
	c.NextStationNumber = &transit.StationNumber{LineSymbol: "G", Code: "G-01"}
	_, en := Generate(c)
	assert.Contains(t, en, "The next station is Shibuya, G 01.")

	c.Theme = transit.ThemeTY
	_, en = Generate(c)
	assert.Contains(t, en, "Shibuya (G 01)")
}

func TestThemeAliases(t *testing.T) {
	c := baseContext()
	c.FirstSpeech = true
	metroJA, metroEN := Generate(c)
	c.Theme = transit.ThemeLED
	ledJA, ledEN := Generate(c)
	assert.Equal(t, metroJA, ledJA)
	assert.Equal(t, metroEN, ledEN)

	c.Theme = transit.ThemeYamanote
	yJA, yEN := Generate(c)
	for _, alias := range []transit.Theme{transit.ThemeJO, transit.ThemeJL} {
		c.Theme = alias
		ja, en := Generate(c)
		assert.Equal(t, yJA, ja)
		assert.Equal(t, yEN, en)
	}
	assert.NotEqual(t, metroEN, yEN)
}

func TestFirstSpeechBoilerplate(t *testing.T) {
	c := baseContext()
	c.FirstSpeech = true
	ja, en := Generate(c)
	assert.Contains(t, ja, "東京メトロをご利用いただきまして")
	assert.Contains(t, ja, `<sub alias="ギンザセン">銀座線</sub>`)
	assert.Contains(t, en, "This is the Ginza Line train bound for Asakusa.")

	c.FirstSpeech = false
	ja, en = Generate(c)
	assert.NotContains(t, ja, "ご利用いただきまして")
	assert.NotContains(t, en, "This is the")
}

func TestPronunciationWrapping(t *testing.T) {
	ja, _ := Generate(baseContext())
	assert.Contains(t, ja, `次は、<sub alias="シブヤ">渋谷</sub>です。`)
}

func TestTerminusPhrasing(t *testing.T) {
	c := baseContext()
	c.StoppingState = transit.HeaderArriving
	c.NextIsTerminus = true
	ja, en := Generate(c)
	assert.Contains(t, ja, "終点")
	assert.Contains(t, ja, "ありがとうございました")
	assert.Contains(t, en, "the last stop")
	assert.Contains(t, en, "Thank you for using Tokyo Metro.")
}

func TestAfterNextOnJREast(t *testing.T) {
	c := baseContext()
	c.Theme = transit.ThemeYamanote
	c.StoppingState = transit.HeaderArriving
	c.AfterNextIsTerminus = true
	ja, en := Generate(c)
	assert.Contains(t, ja, "の次は、終点、")
	assert.Contains(t, en, "The stop after Shibuya is Asakusa, the last stop.")
}

func TestTransferListJoins(t *testing.T) {
	c := baseContext()
	ja, en := Generate(c)
	assert.Contains(t, ja, `<sub alias="ハンゾウモンセン">半蔵門線</sub>は、お乗り換えです。`)
	assert.Contains(t, en, "Please change here for the Hanzomon Line.")

	c.TransferLines = []transit.Line{hanzomon, fukutoshi, yamanote}
	ja, en = Generate(c)
	assert.Contains(t, ja, "半蔵門線</sub>、<sub")
	assert.Contains(t, en, "Hanzomon Line, Fukutoshin Line and Yamanote Line.")
}

func TestJRWestMentionsPassedStations(t *testing.T) {
	c := baseContext()
	c.Theme = transit.ThemeJRWest
	ja, en := Generate(c)
	assert.Contains(t, ja, "外苑前")
	assert.Contains(t, en, "This train will not stop at Gaiemmae.")

	// current station not in the window: nothing passed, no crash
	c.Window = []transit.Station{shibuya, asakusa}
	_, en = Generate(c)
	assert.NotContains(t, en, "will not stop")
}

func TestNamedLoopBound(t *testing.T) {
	c := baseContext()
	c.Theme = transit.ThemeYamanote
	c.Line = &yamanote
	c.FirstSpeech = true
	via := shibuya
	c.Bound = loop.Bound{Name: "外回り", NameRoman: "Clockwise", Via: &via}
	ja, en := Generate(c)
	assert.Contains(t, ja, "外回り")
	assert.Contains(t, en, "going clockwise, for Shibuya")
}

func TestPhonemeFixesApplied(t *testing.T) {
	c := baseContext()
	c.Theme = transit.ThemeJRKyushu
	c.FirstSpeech = true
	_, en := Generate(c)
	assert.Contains(t, en, `<say-as interpret-as="characters">JR</say-as> Kyushu`)
}
