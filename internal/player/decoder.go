package player

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	mp3 "github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
	"github.com/mewkiz/flac"
)

// pcmStream decodes a source file into interleaved signed 16-bit
// little-endian PCM. Streams are forward-only; the player never seeks.
type pcmStream interface {
	io.Reader
	SampleRate() int
	Channels() int
}

// SupportedExts lists the file extensions openStream accepts.
var SupportedExts = []string{".wav", ".mp3", ".flac", ".ogg"}

// IsSupportedExt reports whether ext (lowercase, with dot) is playable.
func IsSupportedExt(ext string) bool {
	for _, e := range SupportedExts {
		if e == ext {
			return true
		}
	}
	return false
}

// openStream picks a decoder by file extension.
func openStream(f *os.File) (pcmStream, error) {
	ext := strings.ToLower(filepath.Ext(f.Name()))
	switch ext {
	case ".mp3":
		return newMP3Stream(f)
	case ".wav":
		return newWAVStream(f)
	case ".flac":
		return newFLACStream(f)
	case ".ogg":
		return newOGGStream(f)
	default:
		return nil, fmt.Errorf("unsupported format %s (supported: %s)", ext, strings.Join(SupportedExts, " "))
	}
}

func clampS16(v int) int16 {
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return int16(v)
}

// --- MP3 ---

// go-mp3 already emits 16-bit stereo PCM at the stream rate.
type mp3Stream struct {
	dec *mp3.Decoder
}

func newMP3Stream(f *os.File) (*mp3Stream, error) {
	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, fmt.Errorf("decoding mp3: %w", err)
	}
	return &mp3Stream{dec: dec}, nil
}

func (s *mp3Stream) Read(p []byte) (int, error) { return s.dec.Read(p) }
func (s *mp3Stream) SampleRate() int            { return s.dec.SampleRate() }
func (s *mp3Stream) Channels() int              { return 2 }

// --- WAV ---

type wavStream struct {
	dec  *wav.Decoder
	buf  *audio.IntBuffer
	pend []byte
	bits int
}

func newWAVStream(f *os.File) (*wavStream, error) {
	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("invalid WAV file")
	}
	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("reading WAV PCM data: %w", err)
	}
	return &wavStream{
		dec:  dec,
		buf:  &audio.IntBuffer{Data: make([]int, 4096)},
		bits: int(dec.BitDepth),
	}, nil
}

func (s *wavStream) Read(p []byte) (int, error) {
	if len(s.pend) == 0 {
		n, err := s.dec.PCMBuffer(s.buf)
		if n == 0 {
			if err != nil {
				return 0, err
			}
			return 0, io.EOF
		}
		s.pend = make([]byte, n*2)
		for i, v := range s.buf.Data[:n] {
			var sample int
			switch s.bits {
			case 8:
				// 8-bit WAV is unsigned
				sample = (v - 128) << 8
			case 16:
				sample = v
			case 24:
				sample = v >> 8
			case 32:
				sample = v >> 16
			}
			binary.LittleEndian.PutUint16(s.pend[i*2:], uint16(clampS16(sample)))
		}
	}
	n := copy(p, s.pend)
	s.pend = s.pend[n:]
	return n, nil
}

func (s *wavStream) SampleRate() int { return int(s.dec.SampleRate) }
func (s *wavStream) Channels() int   { return int(s.dec.NumChans) }

// --- FLAC ---

type flacStream struct {
	stream *flac.Stream
	pend   []byte
}

func newFLACStream(f *os.File) (*flacStream, error) {
	stream, err := flac.New(f)
	if err != nil {
		return nil, fmt.Errorf("decoding FLAC: %w", err)
	}
	return &flacStream{stream: stream}, nil
}

func (s *flacStream) Read(p []byte) (int, error) {
	if len(s.pend) == 0 {
		frame, err := s.stream.ParseNext()
		if err != nil {
			return 0, err
		}
		channels := len(frame.Subframes)
		nSamples := int(frame.Subframes[0].NSamples)
		bps := int(frame.BitsPerSample)
		s.pend = make([]byte, nSamples*channels*2)
		for i := 0; i < nSamples; i++ {
			for ch := 0; ch < channels; ch++ {
				sample := int(frame.Subframes[ch].Samples[i])
				switch {
				case bps > 16:
					sample >>= bps - 16
				case bps < 16:
					sample <<= 16 - bps
				}
				binary.LittleEndian.PutUint16(s.pend[(i*channels+ch)*2:], uint16(clampS16(sample)))
			}
		}
	}
	n := copy(p, s.pend)
	s.pend = s.pend[n:]
	return n, nil
}

func (s *flacStream) SampleRate() int { return int(s.stream.Info.SampleRate) }
func (s *flacStream) Channels() int   { return int(s.stream.Info.NChannels) }

// --- OGG Vorbis ---

type oggStream struct {
	reader *oggvorbis.Reader
	pend   []byte
	f32    []float32
}

func newOGGStream(f *os.File) (*oggStream, error) {
	reader, err := oggvorbis.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("decoding OGG: %w", err)
	}
	return &oggStream{reader: reader, f32: make([]float32, 4096)}, nil
}

func (s *oggStream) Read(p []byte) (int, error) {
	if len(s.pend) == 0 {
		n, err := s.reader.Read(s.f32)
		if n == 0 {
			if err != nil {
				return 0, err
			}
			return 0, io.EOF
		}
		s.pend = make([]byte, n*2)
		for i, v := range s.f32[:n] {
			if v > 1 {
				v = 1
			} else if v < -1 {
				v = -1
			}
			binary.LittleEndian.PutUint16(s.pend[i*2:], uint16(int16(v*32767)))
		}
	}
	n := copy(p, s.pend)
	s.pend = s.pend[n:]
	return n, nil
}

func (s *oggStream) SampleRate() int { return s.reader.SampleRate() }
func (s *oggStream) Channels() int   { return s.reader.Channels() }
