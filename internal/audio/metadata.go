package audio

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2/v2"
	"github.com/dhowden/tag"
)

// Metadata holds song information.
type Metadata struct {
	Title  string
	Artist string
	Album  string
}

// ReadMetadata reads tags from an encoded file, falling back to the file
// name for the title. ID3v2 is read directly for MP3; other containers go
// through dhowden/tag.
func ReadMetadata(name string, data []byte) Metadata {
	var m Metadata
	if strings.EqualFold(filepath.Ext(name), ".mp3") {
		if t, err := id3v2.ParseReader(bytes.NewReader(data), id3v2.Options{Parse: true}); err == nil {
			m = Metadata{
				Title:  strings.TrimSpace(t.Title()),
				Artist: strings.TrimSpace(t.Artist()),
				Album:  strings.TrimSpace(t.Album()),
			}
		}
	} else if t, err := tag.ReadFrom(bytes.NewReader(data)); err == nil {
		m = Metadata{
			Title:  strings.TrimSpace(t.Title()),
			Artist: strings.TrimSpace(t.Artist()),
			Album:  strings.TrimSpace(t.Album()),
		}
	}

	if m.Title == "" {
		base := filepath.Base(name)
		m.Title = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return m
}
