// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

func clampUnit(x float32) float32 {
	return max(-1, min(1, x))
}

// Float32ToInt16 scales a sample in [-1,1] to signed 16-bit PCM.
func Float32ToInt16(x float32) int16 {
	return int16(clampUnit(x) * math.MaxInt16)
}

// Float32ToUint8 scales a sample in [-1,1] to unsigned 8-bit PCM, where 128
// is silence.
func Float32ToUint8(x float32) uint8 {
	return uint8(int(math.Round(float64(clampUnit(x))*127)) + 128)
}

// Int16ToFloat32 is the inverse of Float32ToInt16 for whole PCM values.
func Int16ToFloat32(v int16) float32 {
	return float32(v) / 32768
}

// FullScale returns the largest magnitude of a signed integer sample of the
// given bit depth, used to normalise decoded PCM. 8-bit PCM is unsigned and
// centred on 128 so the caller must remove the bias first.
func FullScale(bitDepth int) float32 {
	switch bitDepth {
	case 8:
		return 128
	case 24:
		return 1 << 23
	case 32:
		return 1 << 31
	default:
		return 1 << 15
	}
}

// FrequencyToMIDI converts a frequency in Hz to a fractional MIDI note
// number, A4 = 440 Hz = 69.
func FrequencyToMIDI(hz float64) float64 {
	if hz <= 0 {
		return 0
	}
	return 69 + 12*math.Log2(hz/440)
}

// MIDIToFrequency converts a MIDI note number to Hz.
func MIDIToFrequency(note float64) float64 {
	return 440 * math.Pow(2, (note-69)/12)
}

// DBFS converts a linear RMS level to decibels relative to full scale.
// Silence maps to -Inf.
func DBFS(rms float64) float64 {
	if rms <= 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(rms)
}
