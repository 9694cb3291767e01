// SPDX-License-Identifier: EPL-2.0

// Package config holds the defaults of the command line tools. Every value
// can be overridden from the environment, and flags override both.
package config

import (
	"os"
	"strconv"
	"time"
)

// Transcribe configures audiotranscribe.
type Transcribe struct {
	Output string
	Window int // samples
	Hop    int // samples
	BPM    int // 0 detects the tempo
	PPQ    int // MIDI ticks per quarter note
}

// Record configures wavrecord.
type Record struct {
	SampleRate int
	BitDepth   int
	Channels   int
	Duration   time.Duration // 0 records until the input ends
}

// Config is everything Load reads.
type Config struct {
	Transcribe Transcribe
	Record     Record
}

// Load reads configuration from environment variables with sane defaults.
func Load() Config {
	return Config{
		Transcribe: Transcribe{
			Output: envStr("AUDSCRIBE_OUTPUT", "out.mid"),
			Window: envInt("AUDSCRIBE_WINDOW", 512),
			Hop:    envInt("AUDSCRIBE_HOP", 256),
			BPM:    envInt("AUDSCRIBE_BPM", 0),
			PPQ:    envInt("AUDSCRIBE_PPQ", 96),
		},
		Record: Record{
			SampleRate: envInt("WAVRECORD_RATE", 44100),
			BitDepth:   envInt("WAVRECORD_BITS", 16),
			Channels:   envInt("WAVRECORD_CHANNELS", 1),
			Duration:   time.Duration(envInt("WAVRECORD_DURATION", 7)) * time.Second,
		},
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
