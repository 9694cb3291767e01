// SPDX-License-Identifier: EPL-2.0

// Command wavrecord records an audio file, or a test tone, into a PCM WAV
// file. Recording stops at the end of the input, at the time limit or on
// SIGINT/SIGTERM; the WAV header is completed in every case.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ik5/audscribe"
	"github.com/ik5/audscribe/audio"
	"github.com/ik5/audscribe/internal/audiotest"
	"github.com/ik5/audscribe/internal/config"
	"github.com/ik5/audscribe/record"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("wavrecord: ")

	cfg := config.Load().Record

	limit := flag.Float64("t", cfg.Duration.Seconds(), "time limit in seconds, 0 for none")
	rate := flag.Int("s", cfg.SampleRate, "sample rate in Hz")
	bits := flag.Int("b", cfg.BitDepth, "bits per sample: 8, 16 or 32")
	channels := flag.Int("c", cfg.Channels, "channels: 1 or 2")
	quiet := flag.Bool("q", false, "do not print progress")
	tone := flag.Float64("tone", 0, "record a sine tone of this frequency instead of an input file")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: wavrecord [flags] <input> <output.wav>\n       wavrecord [flags] -tone HZ <output.wav>\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	want := 2
	if *tone > 0 {
		want = 1
	}
	if flag.NArg() != want {
		flag.Usage()
		os.Exit(2)
	}
	outPath := flag.Arg(want - 1)

	if *limit < 0 || *bits < 0 || *channels < 0 || *rate < 0 {
		log.Fatalf("negative values are not allowed")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var src audio.Source
	if *tone > 0 {
		src = audiotest.NewSine(*rate, 1, -1, *tone)
	} else {
		in, err := audscribe.Open(flag.Arg(0))
		if err != nil {
			log.Fatalf("open input: %v", err)
		}
		src = in
	}
	defer src.Close()

	out, err := os.Create(outPath)
	if err != nil {
		log.Fatalf("create output: %v", err)
	}

	r := record.Recorder{
		BitDepth:    uint16(*bits),
		Channels:    uint16(*channels),
		SampleRate:  *rate,
		MaxDuration: time.Duration(*limit * float64(time.Second)),
	}
	if !*quiet {
		r.Progress = func(s record.Stats) {
			fmt.Fprintf(os.Stderr, "\rrecorded %6.1fs", s.Duration.Seconds())
		}
	}

	stats, err := r.Run(ctx, src, out)
	if !*quiet {
		fmt.Fprintln(os.Stderr)
	}
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		log.Fatalf("record: %v", err)
	}

	if !*quiet {
		log.Printf("wrote %s: %.2fs, %d bytes of samples (%s)",
			outPath, stats.Duration.Seconds(), stats.Bytes, stats.Reason)
	}
}
