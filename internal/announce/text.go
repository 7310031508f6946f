package announce

import (
	"fmt"
	"regexp"
	"strings"
)

// phonemeFixes rewrites romanized words speech engines tend to mispronounce.
var phonemeFixes = []struct {
	pattern     *regexp.Regexp
	replacement string
}{
	{regexp.MustCompile(`\bJR\b`), `<say-as interpret-as="characters">JR</say-as>`},
	{regexp.MustCompile(`\bKeio\b`), `<phoneme alphabet="ipa" ph="keːoː">Keio</phoneme>`},
	{regexp.MustCompile(`\bToei\b`), `<phoneme alphabet="ipa" ph="toːei">Toei</phoneme>`},
	{regexp.MustCompile(`\bOme\b`), `<phoneme alphabet="ipa" ph="oːme">Ome</phoneme>`},
	{regexp.MustCompile(`\bChuo\b`), `<phoneme alphabet="ipa" ph="tʃɯːoː">Chuo</phoneme>`},
	{regexp.MustCompile(`\bRyogoku\b`), `<phoneme alphabet="ipa" ph="ɾʲoːɡokɯ">Ryogoku</phoneme>`},
	{regexp.MustCompile(`\bYoyogi\b`), `<phoneme alphabet="ipa" ph="jojoɡi">Yoyogi</phoneme>`},
}

// FixPhonemes applies the correction table to romanized text.
func FixPhonemes(s string) string {
	for _, f := range phonemeFixes {
		s = f.pattern.ReplaceAllString(s, f.replacement)
	}
	return s
}

// ruby wraps a Japanese proper noun with its reading.
func ruby(name, kana string) string {
	if name == "" {
		return ""
	}
	if kana == "" || kana == name {
		return name
	}
	return fmt.Sprintf(`<sub alias="%s">%s</sub>`, kana, name)
}

func nonEmpty(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if strings.TrimSpace(it) != "" {
			out = append(out, it)
		}
	}
	return out
}

// joinJA joins with the Japanese enumeration comma.
func joinJA(items ...string) string {
	return strings.Join(nonEmpty(items), "、")
}

// joinEN joins as "a, b and c".
func joinEN(items ...string) string {
	items = nonEmpty(items)
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
	}
}

// listEN joins with plain commas, for clauses that are not enumerations.
func listEN(items ...string) string {
	return strings.Join(nonEmpty(items), ", ")
}

// wrap returns prefix+body+suffix, or "" when body is empty.
func wrap(prefix, body, suffix string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return prefix + body + suffix
}

var (
	spaceRun         = regexp.MustCompile(`\s+`)
	spaceBeforePunct = regexp.MustCompile(`\s+([.,!?、。])`)
	commaBeforeStop  = regexp.MustCompile(`[,、]+([.。])`)
	repeatedStop     = regexp.MustCompile(`([.。])[.。]+`)
)

// tidy removes the artifacts optional clauses can leave behind.
func tidy(s string) string {
	s = spaceRun.ReplaceAllString(s, " ")
	s = spaceBeforePunct.ReplaceAllString(s, "$1")
	s = commaBeforeStop.ReplaceAllString(s, "$1")
	s = repeatedStop.ReplaceAllString(s, "$1")
	return strings.TrimSpace(s)
}

// speech collects sentences, skipping empty ones.
type speech struct {
	parts []string
	sep   string
}

func newJA() *speech { return &speech{} }
func newEN() *speech { return &speech{sep: " "} }

func (s *speech) add(sentences ...string) {
	for _, p := range sentences {
		if strings.TrimSpace(p) != "" {
			s.parts = append(s.parts, p)
		}
	}
}

func (s *speech) when(ok bool, sentences ...string) {
	if ok {
		s.add(sentences...)
	}
}

func (s *speech) String() string { return tidy(strings.Join(s.parts, s.sep)) }

// spaced joins words with single spaces.
func spaced(items ...string) string {
	return strings.Join(nonEmpty(items), " ")
}
