// SPDX-License-Identifier: EPL-2.0

package extract

import (
	"fmt"
	"math"
	"slices"

	"github.com/ik5/audscribe/utils"
)

// Frame is what an Analyzer reports for one block.
type Frame struct {
	Onset    bool    // a note starts in this block
	Pitch    float64 // MIDI note number of the new note
	Velocity float64 // 0-127
	Offset   bool    // the sounding note ends in this block
	Tempo    float64 // running tempo estimate in bpm, zero when unknown
}

// Analyzer consumes one hop sized block of mono samples at a time.
type Analyzer interface {
	Analyze(block []float32) Frame
}

const (
	// voicedThreshold is the minimum normalised autocorrelation for a
	// block to be given a pitch.
	voicedThreshold = 0.5
	// peakRatio picks the first autocorrelation peak within this ratio of
	// the best one, which keeps the tracker off sub-octaves.
	peakRatio = 0.9
	// stableBlocks is how many consecutive blocks a new pitch must hold
	// before it replaces the sounding note.
	stableBlocks = 2
	// tempoHistory is the number of onset intervals kept for the tempo.
	tempoHistory = 8

	velocityFloorDB = -60.0
)

// PitchTracker is an Analyzer built on a level gate and normalised
// autocorrelation over a sliding window.
type PitchTracker struct {
	sampleRate int
	hop        int
	window     []float32
	corr       []float64

	silenceDB   float64
	releaseDrop float64
	minLag      int
	maxLag      int

	block   int
	active  bool
	pitch   float64
	peakDB  float64
	pending float64
	seen    int

	onsets []int
}

// NewPitchTracker returns a tracker for a mono stream at sampleRate.
func NewPitchTracker(sampleRate int, opts Options) (*PitchTracker, error) {
	opts = opts.withDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate %d", ErrInvalidOptions, sampleRate)
	}

	minLag := max(1, int(float64(sampleRate)/opts.MaxHz))
	maxLag := min(opts.Window/2, int(math.Ceil(float64(sampleRate)/max(opts.MinHz, 1))))
	if maxLag <= minLag+1 {
		return nil, fmt.Errorf("%w: window %d too short for %v Hz at %d Hz",
			ErrInvalidOptions, opts.Window, opts.MinHz, sampleRate)
	}

	return &PitchTracker{
		sampleRate:  sampleRate,
		hop:         opts.Hop,
		window:      make([]float32, opts.Window),
		corr:        make([]float64, maxLag+2),
		silenceDB:   opts.SilenceDB,
		releaseDrop: opts.ReleaseDropDB,
		minLag:      minLag,
		maxLag:      maxLag,
		pending:     -1,
	}, nil
}

// Analyze slides block into the window and reports what changed.
func (p *PitchTracker) Analyze(block []float32) Frame {
	defer func() { p.block++ }()

	p.slide(block)

	level := utils.DBFS(rms(block))
	var f Frame

	if level < p.silenceDB {
		if p.active {
			f.Offset = true
			p.active = false
		}
		f.Tempo = p.tempo()
		return f
	}

	hz, voiced := p.detect()
	if !voiced {
		if p.active && level < p.peakDB-p.releaseDrop {
			f.Offset = true
			p.active = false
		}
		f.Tempo = p.tempo()
		return f
	}

	note := math.Round(utils.FrequencyToMIDI(hz))
	note = max(0, min(127, note))

	switch {
	case !p.active:
		p.start(&f, note, level)
	case note != p.pitch:
		if note == p.pending {
			p.seen++
		} else {
			p.pending, p.seen = note, 1
		}
		if p.seen >= stableBlocks {
			p.start(&f, note, level)
		}
	case level < p.peakDB-p.releaseDrop:
		f.Offset = true
		p.active = false
	default:
		p.seen = 0
		p.peakDB = max(p.peakDB, level)
	}

	f.Tempo = p.tempo()
	return f
}

func (p *PitchTracker) start(f *Frame, note, level float64) {
	f.Onset = true
	f.Pitch = note
	f.Velocity = velocity(level)

	p.active = true
	p.pitch = note
	p.peakDB = level
	p.pending, p.seen = -1, 0

	p.onsets = append(p.onsets, p.block)
	if len(p.onsets) > tempoHistory+1 {
		p.onsets = p.onsets[1:]
	}
}

func (p *PitchTracker) slide(block []float32) {
	w := len(p.window)
	if len(block) >= w {
		copy(p.window, block[len(block)-w:])
		return
	}
	copy(p.window, p.window[len(block):])
	copy(p.window[w-len(block):], block)
}

// detect returns the fundamental of the window in Hz.
func (p *PitchTracker) detect() (float64, bool) {
	x := p.window
	n := len(x)

	best := 0.0
	for lag := p.minLag; lag <= p.maxLag+1 && lag < n; lag++ {
		var num, e0, e1 float64
		for i := 0; i+lag < n; i++ {
			a, b := float64(x[i]), float64(x[i+lag])
			num += a * b
			e0 += a * a
			e1 += b * b
		}

		r := 0.0
		if e0 > 0 && e1 > 0 {
			r = num / math.Sqrt(e0*e1)
		}
		p.corr[lag] = r

		if lag <= p.maxLag {
			best = max(best, r)
		}
	}

	if best < voicedThreshold {
		return 0, false
	}

	for lag := p.minLag + 1; lag <= p.maxLag; lag++ {
		r := p.corr[lag]
		if r < best*peakRatio || r < p.corr[lag-1] || r < p.corr[lag+1] {
			continue
		}

		shift := utils.ParabolicPeak(p.corr[lag-1], r, p.corr[lag+1])
		return float64(p.sampleRate) / (float64(lag) + shift), true
	}

	return 0, false
}

// tempo is derived from the median interval between recent onsets and
// folded into 60-200 bpm.
func (p *PitchTracker) tempo() float64 {
	if len(p.onsets) < 2 {
		return 0
	}

	intervals := make([]int, 0, len(p.onsets)-1)
	for i := 1; i < len(p.onsets); i++ {
		intervals = append(intervals, p.onsets[i]-p.onsets[i-1])
	}
	slices.Sort(intervals)

	mid := len(intervals) / 2
	blocks := float64(intervals[mid])
	if len(intervals)%2 == 0 {
		blocks = float64(intervals[mid-1]+intervals[mid]) / 2
	}
	if blocks <= 0 {
		return 0
	}

	bpm := 60 * float64(p.sampleRate) / (blocks * float64(p.hop))
	for bpm < 60 {
		bpm *= 2
	}
	for bpm >= 200 {
		bpm /= 2
	}

	return bpm
}

func rms(block []float32) float64 {
	if len(block) == 0 {
		return 0
	}

	var sum float64
	for _, s := range block {
		sum += float64(s) * float64(s)
	}

	return math.Sqrt(sum / float64(len(block)))
}

func velocity(levelDB float64) float64 {
	v := math.Round(127 * (1 - levelDB/velocityFloorDB))
	return max(1, min(127, v))
}
