package render

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/olivier-w/climpviz/internal/audio"
	"github.com/olivier-w/climpviz/internal/media"
	"github.com/olivier-w/climpviz/internal/playback"
)

func writeTestWAV(t *testing.T, dir string, frames int) string {
	t.Helper()
	path := filepath.Join(dir, "tone.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create error = %v", err)
	}
	data := make([]int, frames)
	for i := range data {
		data[i] = 8192
	}
	enc := wav.NewEncoder(f, 8000, 16, 1, 1)
	if err := enc.Write(&goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: 8000},
		Data:           data,
		SourceBitDepth: 16,
	}); err != nil {
		t.Fatalf("wav Write error = %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("wav Close error = %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close error = %v", err)
	}
	return path
}

func TestLoadTrackWAV(t *testing.T) {
	path := writeTestWAV(t, t.TempDir(), 8000)

	tr, err := LoadTrack(path)
	if err != nil {
		t.Fatalf("LoadTrack error = %v", err)
	}
	if tr.Buffer.Duration() != 1 {
		t.Fatalf("Duration = %v, want 1", tr.Buffer.Duration())
	}
	if tr.Meta.Title != "tone" {
		t.Fatalf("Title = %q, want file name fallback", tr.Meta.Title)
	}
	if tr.Path != path {
		t.Fatalf("Path = %q", tr.Path)
	}
}

func TestLoadTrackRejectsKindBeforeReading(t *testing.T) {
	// the file does not exist; the kind check must fail first
	_, err := LoadTrack(filepath.Join(t.TempDir(), "notes.txt"))
	if !errors.Is(err, media.ErrInvalidFileKind) {
		t.Fatalf("err = %v, want ErrInvalidFileKind", err)
	}
}

func TestLoadTrackMissingFile(t *testing.T) {
	_, err := LoadTrack(filepath.Join(t.TempDir(), "gone.mp3"))
	var de *audio.DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("err = %v, want *audio.DecodeError", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want to wrap os.ErrNotExist", err)
	}
}

func TestDecodeFailureLeavesSessionUnchanged(t *testing.T) {
	h := newHarness(t)
	path := filepath.Join(t.TempDir(), "broken.flac")
	if err := os.WriteFile(path, []byte("definitely not flac"), 0o644); err != nil {
		t.Fatalf("WriteFile error = %v", err)
	}

	h.s.Prepare()
	if _, err := LoadTrack(path); err == nil {
		t.Fatal("expected decode failure")
	}
	if h.s.State() != playback.Idle || h.s.Loaded() {
		t.Fatalf("state = %v loaded = %v after failed decode", h.s.State(), h.s.Loaded())
	}

	// a loaded, idle session keeps its previous track too
	h.loaded(t)
	before := h.s.Track()
	if _, err := LoadTrack(path); err == nil {
		t.Fatal("expected decode failure")
	}
	if h.s.State() != playback.Idle || h.s.Track().Buffer != before.Buffer {
		t.Fatal("failed decode replaced the loaded track")
	}
}
