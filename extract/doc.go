// SPDX-License-Identifier: EPL-2.0

// Package extract turns a mono audio stream into a list of notes.
//
// Audio is consumed in hop sized blocks. An Analyzer looks at each block and
// reports note starts, note ends and a running tempo estimate; a Collector
// turns those reports into transcribe.Note values.
//
//	notes, err := extract.Extract(ctx, src, extract.DefaultOptions())
package extract
