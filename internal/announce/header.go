package announce

import "virtual-conductor/internal/transit"

// StoppingStateFor derives the announcement phase from the proximity flags.
func StoppingStateFor(arrived, approaching bool) transit.HeaderState {
	switch {
	case arrived:
		return transit.HeaderCurrent
	case approaching:
		return transit.HeaderArriving
	default:
		return transit.HeaderNext
	}
}

// NextHeaderState advances the header one step. A change of stopping
// state restarts at the base language; otherwise the header rotates
// through the enabled languages.
func NextHeaderState(current, stopping transit.HeaderState, langs []transit.Language) transit.HeaderState {
	stopping = stopping.StoppingState()
	if current.StoppingState() != stopping || len(langs) == 0 {
		return stopping
	}
	idx := -1
	for i, l := range langs {
		if l == current.Language() {
			idx = i
			break
		}
	}
	return stopping.WithLanguage(langs[(idx+1)%len(langs)])
}
