package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/wav"
)

const sfxRate = beep.SampleRate(22050)

// note is one tone of a sound effect
type note struct {
	freq float64
	dur  time.Duration
}

// SoundBank holds the rendered WAV clip for every state event
type SoundBank struct {
	clips map[string][]byte
}

// NewSoundBank synthesizes the event clips once at startup
func NewSoundBank() (*SoundBank, error) {
	melodies := map[string][]note{
		EventEat: {
			{660, 50 * time.Millisecond},
			{990, 70 * time.Millisecond},
		},
		EventOver: {
			{330, 120 * time.Millisecond},
			{247, 120 * time.Millisecond},
			{165, 260 * time.Millisecond},
		},
		EventFull: {
			{523, 90 * time.Millisecond},
			{659, 90 * time.Millisecond},
			{784, 90 * time.Millisecond},
			{1047, 300 * time.Millisecond},
		},
	}

	bank := &SoundBank{clips: make(map[string][]byte, len(melodies))}
	for event, notes := range melodies {
		s, err := melody(notes)
		if err != nil {
			return nil, fmt.Errorf("sound %s: %w", event, err)
		}
		if event == EventFull {
			// hold a low fifth under the arpeggio
			drone, err := tone(note{262, 570 * time.Millisecond}, 0.35)
			if err != nil {
				return nil, fmt.Errorf("sound %s: %w", event, err)
			}
			s = beep.Mix(s, drone)
		}
		data, err := encodeWAV(s)
		if err != nil {
			return nil, fmt.Errorf("sound %s: %w", event, err)
		}
		bank.clips[event] = data
	}
	return bank, nil
}

// Clip returns the WAV bytes for an event
func (b *SoundBank) Clip(event string) ([]byte, bool) {
	data, ok := b.clips[event]
	return data, ok
}

// ServeHTTP serves /sfx/<event>.wav
func (b *SoundBank) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, SoundPath), ".wav")
	data, ok := b.Clip(name)
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "audio/wav")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	if _, err := w.Write(data); err != nil {
		log.Printf("sfx %s: %v", name, err)
	}
}

func melody(notes []note) (beep.Streamer, error) {
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		s, err := tone(n, 0.6)
		if err != nil {
			return nil, err
		}
		parts = append(parts, s)
	}
	return beep.Seq(parts...), nil
}

// tone is a sine note with short fades at both ends so clips don't click
func tone(n note, vol float64) (beep.Streamer, error) {
	sine, err := generators.SineTone(sfxRate, n.freq)
	if err != nil {
		return nil, err
	}
	total := sfxRate.N(n.dur)
	shaped := &fade{
		streamer: beep.Take(total, sine),
		total:    total,
		edge:     sfxRate.N(8 * time.Millisecond),
	}
	return &effects.Volume{Streamer: shaped, Base: 2, Volume: math.Log2(vol)}, nil
}

// fade ramps the first and last edge samples linearly
type fade struct {
	streamer beep.Streamer
	pos      int
	total    int
	edge     int
}

func (f *fade) Stream(samples [][2]float64) (int, bool) {
	n, ok := f.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		gain := 1.0
		if f.edge > 0 {
			if f.pos < f.edge {
				gain = float64(f.pos) / float64(f.edge)
			} else if rest := f.total - f.pos; rest < f.edge {
				gain = float64(rest) / float64(f.edge)
			}
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		f.pos++
	}
	return n, ok
}

func (f *fade) Err() error { return f.streamer.Err() }

func encodeWAV(s beep.Streamer) ([]byte, error) {
	var out memFile
	format := beep.Format{SampleRate: sfxRate, NumChannels: 1, Precision: 2}
	if err := wav.Encode(&out, s, format); err != nil {
		return nil, err
	}
	return out.buf.Bytes(), nil
}

// memFile is the io.WriteSeeker wav.Encode needs to patch its header
type memFile struct {
	buf bytes.Buffer
	pos int64
}

func (m *memFile) Write(p []byte) (int, error) {
	end := m.pos + int64(len(p))
	if grow := end - int64(m.buf.Len()); grow > 0 {
		m.buf.Write(make([]byte, grow))
	}
	copy(m.buf.Bytes()[m.pos:end], p)
	m.pos = end
	return len(p), nil
}

func (m *memFile) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = m.pos + offset
	case io.SeekEnd:
		abs = int64(m.buf.Len()) + offset
	default:
		return 0, errors.New("memFile: bad whence")
	}
	if abs < 0 {
		return 0, errors.New("memFile: negative position")
	}
	m.pos = abs
	return abs, nil
}
