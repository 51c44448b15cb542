package render

import (
	"os"
	"path/filepath"

	"github.com/olivier-w/climpviz/internal/audio"
	"github.com/olivier-w/climpviz/internal/media"
)

// Track is a decoded file ready to load into a Session.
type Track struct {
	Path   string
	Buffer *audio.SampleBuffer
	Meta   audio.Metadata
}

// LoadTrack checks the file kind, reads and decodes path. It touches no
// session state, so it may run off the UI goroutine. Non-audio files fail
// with media.ErrInvalidFileKind before anything is read; read and decode
// failures come back as *audio.DecodeError.
func LoadTrack(path string) (Track, error) {
	if err := media.CheckKind(path); err != nil {
		return Track{}, err
	}
	name := filepath.Base(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return Track{}, &audio.DecodeError{Name: name, Reason: "cannot read file", Err: err}
	}
	buf, err := audio.Decode(name, data)
	if err != nil {
		return Track{}, err
	}
	return Track{
		Path:   path,
		Buffer: buf,
		Meta:   audio.ReadMetadata(name, data),
	}, nil
}
