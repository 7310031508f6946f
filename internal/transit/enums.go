package transit

import "strings"

type Direction string

const (
	// Inbound travels toward the end of the station list.
	Inbound Direction = "INBOUND"
	// Outbound travels toward the start of the station list.
	Outbound Direction = "OUTBOUND"
)

// ParseDirection falls back to Inbound on unknown input.
func ParseDirection(s string) Direction {
	if strings.EqualFold(strings.TrimSpace(s), string(Outbound)) {
		return Outbound
	}
	return Inbound
}

type HeaderState string

const (
	HeaderCurrent    HeaderState = "CURRENT"
	HeaderCurrentEN  HeaderState = "CURRENT_EN"
	HeaderCurrentZH  HeaderState = "CURRENT_ZH"
	HeaderCurrentKO  HeaderState = "CURRENT_KO"
	HeaderNext       HeaderState = "NEXT"
	HeaderNextEN     HeaderState = "NEXT_EN"
	HeaderNextZH     HeaderState = "NEXT_ZH"
	HeaderNextKO     HeaderState = "NEXT_KO"
	HeaderArriving   HeaderState = "ARRIVING"
	HeaderArrivingEN HeaderState = "ARRIVING_EN"
	HeaderArrivingZH HeaderState = "ARRIVING_ZH"
	HeaderArrivingKO HeaderState = "ARRIVING_KO"
)

// StoppingState drops the language suffix: NEXT_EN -> NEXT.
func (h HeaderState) StoppingState() HeaderState {
	s := string(h)
	if i := strings.IndexByte(s, '_'); i >= 0 {
		s = s[:i]
	}
	return HeaderState(s)
}

// Language returns the suffix language, or LangJA for the base state.
func (h HeaderState) Language() Language {
	s := string(h)
	i := strings.IndexByte(s, '_')
	if i < 0 {
		return LangJA
	}
	return Language(s[i+1:])
}

// WithLanguage re-attaches a language suffix to a stopping state.
func (h HeaderState) WithLanguage(l Language) HeaderState {
	base := h.StoppingState()
	if l == LangJA || l == "" {
		return base
	}
	return HeaderState(string(base) + "_" + string(l))
}

type Language string

const (
	LangJA Language = "JA"
	LangEN Language = "EN"
	LangZH Language = "ZH"
	LangKO Language = "KO"
)

// ParseLanguages reads a comma separated list, keeping known languages in
// order. JA is always first.
func ParseLanguages(s string) []Language {
	out := []Language{LangJA}
	for _, part := range strings.Split(s, ",") {
		l := Language(strings.ToUpper(strings.TrimSpace(part)))
		switch l {
		case LangEN, LangZH, LangKO:
			dup := false
			for _, have := range out {
				if have == l {
					dup = true
				}
			}
			if !dup {
				out = append(out, l)
			}
		}
	}
	return out
}

type Theme string

const (
	ThemeTokyoMetro Theme = "TOKYO_METRO"
	ThemeTY         Theme = "TY"
	ThemeYamanote   Theme = "YAMANOTE"
	ThemeJRWest     Theme = "JR_WEST"
	ThemeSaikyo     Theme = "SAIKYO"
	ThemeToei       Theme = "TOEI"
	ThemeLED        Theme = "LED"
	ThemeJO         Theme = "JO"
	ThemeJL         Theme = "JL"
	ThemeJRKyushu   Theme = "JR_KYUSHU"
)

// Themes lists every theme.
var Themes = []Theme{
	ThemeTokyoMetro, ThemeTY, ThemeYamanote, ThemeJRWest, ThemeSaikyo,
	ThemeToei, ThemeLED, ThemeJO, ThemeJL, ThemeJRKyushu,
}

// ParseTheme falls back to TokyoMetro on unknown input.
func ParseTheme(s string) Theme {
	t := Theme(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Themes {
		if known == t {
			return t
		}
	}
	return ThemeTokyoMetro
}

// TextTheme maps display-only themes onto the theme whose announcement
// wording they share.
func (t Theme) TextTheme() Theme {
	switch t {
	case ThemeLED:
		return ThemeTokyoMetro
	case ThemeJO, ThemeJL:
		return ThemeYamanote
	case ThemeTokyoMetro, ThemeTY, ThemeYamanote, ThemeJRWest, ThemeSaikyo, ThemeToei, ThemeJRKyushu:
		return t
	default:
		return ThemeTokyoMetro
	}
}
