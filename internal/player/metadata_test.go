package player

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2/v2"
)

func TestReadMetadataFallsBackToFilename(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Night Drive.wav")
	if err := os.WriteFile(path, []byte("RIFF"), 0o644); err != nil {
		t.Fatal(err)
	}

	m := ReadMetadata(path)
	if m.Title != "Night Drive" {
		t.Fatalf("Title = %q, want %q", m.Title, "Night Drive")
	}
	if m.Artist != "" {
		t.Fatalf("Artist = %q, want empty", m.Artist)
	}
}

func TestReadMetadataReadsTags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tagged.mp3")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatal(err)
	}
	tag.SetTitle("Aurora")
	tag.SetArtist("Borealis")
	if err := tag.Save(); err != nil {
		t.Fatal(err)
	}
	tag.Close()

	m := ReadMetadata(path)
	if m.Title != "Aurora" || m.Artist != "Borealis" {
		t.Fatalf("ReadMetadata() = %+v, want Aurora/Borealis", m)
	}
}
