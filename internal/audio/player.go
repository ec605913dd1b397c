// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/audio/player.go
// Summary: Plays short wav cues, such as the window-closed sound.
// Usage: Initialize once; Play may be called from the event loop.
// Notes: Decoded cues are cached so replaying one does not touch the disk.

package audio

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
)

const sampleRate = beep.SampleRate(48000)

var bufferFormat = beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2}

// Player mixes cues onto the speaker.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	cache       map[string]*beep.Buffer
	initialized bool
	enabled     bool
}

// NewPlayer returns an enabled player. Until Initialize succeeds, Play only
// decodes and caches cues.
func NewPlayer() *Player {
	return &Player{
		mixer:   &beep.Mixer{},
		cache:   make(map[string]*beep.Buffer),
		enabled: true,
	}
}

// Initialize opens the audio device.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("audio init: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Close silences every cue and releases the device.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.initialized = false
}

// SetEnabled mutes or unmutes the player.
func (p *Player) SetEnabled(enabled bool) {
	p.mu.Lock()
	p.enabled = enabled
	p.mu.Unlock()
}

// Play starts the wav file at path.
func (p *Player) Play(path string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.enabled {
		return nil
	}
	buf, err := p.loadLocked(path)
	if err != nil {
		return err
	}
	if !p.initialized {
		return nil
	}
	speaker.Lock()
	p.mixer.Add(buf.Streamer(0, buf.Len()))
	speaker.Unlock()
	return nil
}

// Preload decodes path into the cache and returns the cue's length.
func (p *Player) Preload(path string) (time.Duration, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	buf, err := p.loadLocked(path)
	if err != nil {
		return 0, err
	}
	return sampleRate.D(buf.Len()), nil
}

func (p *Player) loadLocked(path string) (*beep.Buffer, error) {
	if buf, ok := p.cache[path]; ok {
		return buf, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open cue: %w", err)
	}
	streamer, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	defer streamer.Close()

	var s beep.Streamer = streamer
	if format.SampleRate != sampleRate {
		s = beep.Resample(4, format.SampleRate, sampleRate, streamer)
	}
	buf := beep.NewBuffer(bufferFormat)
	buf.Append(s)
	p.cache[path] = buf
	return buf, nil
}
