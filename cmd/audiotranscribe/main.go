// SPDX-License-Identifier: EPL-2.0

// Command audiotranscribe detects the notes in an audio file and writes them
// to a Standard MIDI File.
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/ik5/audscribe"
	"github.com/ik5/audscribe/extract"
	"github.com/ik5/audscribe/internal/config"
	"github.com/ik5/audscribe/midi"
	"github.com/ik5/audscribe/transcribe"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("audiotranscribe: ")

	cfg := config.Load().Transcribe

	output := flag.String("o", cfg.Output, "output MIDI file")
	window := flag.Int("w", cfg.Window, "analysis window size in samples")
	hop := flag.Int("H", cfg.Hop, "hop size in samples")
	bpm := flag.Int("b", cfg.BPM, "tempo in bpm, 0 to detect it")
	ppq := flag.Int("p", cfg.PPQ, "MIDI clock rate in pulses per quarter note")
	verbose := flag.Bool("v", false, "print the notes and the file layout")
	verify := flag.Bool("verify", false, "read the written file back and print a summary")
	name := flag.String("name", "", "track name")
	latin1 := flag.Bool("latin1", false, "store the track name as ISO-8859-1")
	noteList := flag.Bool("notes", false, "input is an aubionotes note list instead of audio")
	anchor := flag.Bool("anchor", false, "measure note times from the last tempo change")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: audiotranscribe [flags] <input>\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	if *bpm < 0 || (*bpm > 0 && *bpm < 4) || *ppq <= 0 || *ppq > 0x7FFF {
		log.Fatalf("bpm must be 0 or at least 4 and ppq within 1-32767")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var midiOpts []transcribe.Option
	if *name != "" {
		var enc transform.Transformer
		if *latin1 {
			enc = charmap.ISO8859_1.NewEncoder()
		}
		midiOpts = append(midiOpts, transcribe.WithTrackName(*name, enc))
	}
	if *anchor {
		midiOpts = append(midiOpts, transcribe.WithAnchoredTempo())
	}

	notes, err := readNotes(ctx, flag.Arg(0), *noteList, extract.Options{
		Window: *window,
		Hop:    *hop,
		BPM:    uint(*bpm),
	})
	if err != nil {
		log.Fatalf("%v", err)
	}

	var buf bytes.Buffer
	f, err := audscribe.WriteMIDI(&buf, notes, uint16(*ppq), midiOpts...)
	if err != nil {
		log.Fatalf("build MIDI: %v", err)
	}
	if err := os.WriteFile(*output, buf.Bytes(), 0o644); err != nil {
		log.Fatalf("write %s: %v", *output, err)
	}

	if *verbose {
		printNotes(notes)
		if err := f.Describe(os.Stdout); err != nil {
			log.Fatalf("%v", err)
		}
	}

	if *verify {
		sum, err := audscribe.Inspect(bytes.NewReader(buf.Bytes()))
		if err != nil {
			log.Fatalf("verify: %v", err)
		}
		fmt.Println(sum)
	}

	log.Printf("wrote %d notes to %s", len(notes), *output)
}

func readNotes(ctx context.Context, path string, isList bool, opts extract.Options) ([]transcribe.Note, error) {
	if isList {
		in, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer in.Close()

		return transcribe.ParseNoteList(in, 100, opts.BPM)
	}

	src, err := audscribe.Open(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	notes, err := extract.Extract(ctx, src, opts)
	if err != nil {
		return nil, fmt.Errorf("extract notes: %w", err)
	}

	return notes, nil
}

func printNotes(notes []transcribe.Note) {
	for i, n := range notes {
		fmt.Printf("%4d  %s  %s\n", i, noteName(n.Pitch), n)
	}
}

var pitchClasses = [...]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

func noteName(pitch uint8) string {
	if pitch > midi.MaxPitch {
		return "?"
	}
	return fmt.Sprintf("%-2s%d", pitchClasses[pitch%12], int(pitch)/12-1)
}
