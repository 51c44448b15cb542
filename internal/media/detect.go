package media

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrInvalidFileKind is returned for selections that are not audio files.
var ErrInvalidFileKind = errors.New("not an audio file")

var audioExts = map[string]bool{
	".mp3":  true,
	".wav":  true,
	".flac": true,
	".ogg":  true,
	".oga":  true,
}

// IsSupportedExt returns true if the extension is a supported audio format.
func IsSupportedExt(ext string) bool {
	return audioExts[strings.ToLower(ext)]
}

// SupportedExtsList returns a human-readable list of supported audio formats.
func SupportedExtsList() string {
	return ".mp3, .wav, .flac, .ogg"
}

// CheckKind rejects paths that do not name a supported audio file.
// It only looks at the name; content problems surface later as decode errors.
func CheckKind(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return fmt.Errorf("%s: %w", filepath.Base(path), ErrInvalidFileKind)
	}
	if !IsSupportedExt(ext) {
		return fmt.Errorf("%s: %w (supported: %s)", filepath.Base(path), ErrInvalidFileKind, SupportedExtsList())
	}
	return nil
}
