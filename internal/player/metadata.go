package player

import (
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2/v2"
)

// Metadata identifies what is playing.
type Metadata struct {
	Title  string
	Artist string
}

// ReadMetadata reads ID3v2 tags where present, falling back to the filename.
func ReadMetadata(path string) Metadata {
	if tag, err := id3v2.Open(path, id3v2.Options{Parse: true}); err == nil {
		defer tag.Close()
		m := Metadata{
			Title:  strings.TrimSpace(tag.Title()),
			Artist: strings.TrimSpace(tag.Artist()),
		}
		if m.Title != "" {
			return m
		}
	}

	base := filepath.Base(path)
	return Metadata{Title: strings.TrimSuffix(base, filepath.Ext(base))}
}
