package canvas

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
)

// ansiState writes a foreground color sequence only when the color changes.
type ansiState struct {
	profile termenv.Profile
	current string
}

func newANSIState(profile termenv.Profile) ansiState {
	return ansiState{profile: profile}
}

func (s *ansiState) set(sb *strings.Builder, c colorful.Color) {
	if s.profile == termenv.Ascii {
		return
	}
	hex := c.Hex()
	if hex == s.current {
		return
	}
	seq := s.profile.Color(hex).Sequence(false)
	if seq == "" {
		return
	}
	sb.WriteString(termenv.CSI + seq + "m")
	s.current = hex
}

func (s *ansiState) reset(sb *strings.Builder) {
	if s.current == "" {
		return
	}
	sb.WriteString(termenv.CSI + termenv.ResetSeq + "m")
	s.current = ""
}
