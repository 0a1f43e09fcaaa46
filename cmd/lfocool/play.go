package main

import (
	"context"
	"encoding/binary"
	"errors"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"os/signal"
	"syscall"

	"github.com/ebitengine/oto/v3"
	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/lfocool/dsp/buffer"
	"github.com/cwbudde/lfocool/dsp/signal"
	"github.com/cwbudde/lfocool/internal/preset"
	"github.com/cwbudde/lfocool/plugin"
)

func playCmd(args []string) error {
	fs := flag.NewFlagSet("play", flag.ContinueOnError)
	cfg := addRenderFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if cfg.presetPath == "" {
		fs.Usage()
		return errors.New("play: -preset is required")
	}
	cfg.seconds = 1
	if err := cfg.validate(); err != nil {
		return fmt.Errorf("play: %w", err)
	}

	p, err := cfg.newProcessor()
	if err != nil {
		return fmt.Errorf("play: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(signalCh)
	go func() {
		select {
		case sig := <-signalCh:
			log.Printf("Caught signal %s: shutting down...", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return playTone(ctx, p, cfg)
	})
	g.Go(func() error {
		return preset.NewWatcher(cfg.presetPath, p.Params(), log.Default()).Run(ctx)
	})
	return g.Wait()
}

// playTone streams the processed tone to the default output device until
// ctx is cancelled.
func playTone(ctx context.Context, p *plugin.LfoCool, cfg *renderConfig) error {
	otoCtx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   int(cfg.sampleRate),
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return fmt.Errorf("play: audio output: %w", err)
	}
	<-ready

	s, err := newStream(p, cfg)
	if err != nil {
		return err
	}
	player := otoCtx.NewPlayer(s)
	player.Play()
	log.Printf("playing %.0f Hz tone, edit %s to change parameters", cfg.toneHz, cfg.presetPath)

	<-ctx.Done()
	return player.Close()
}

// stream renders processed stereo float32 frames on demand. Read is called
// from the audio goroutine only.
type stream struct {
	proc *plugin.LfoCool
	tone *signal.Tone
	ctx  plugin.ProcessContext

	block   buffer.Block
	frames  []float32
	raw     []byte
	pending []byte
}

func newStream(p *plugin.LfoCool, cfg *renderConfig) (*stream, error) {
	tone, err := signal.NewTone(cfg.toneHz, cfg.sampleRate, cfg.amplitude)
	if err != nil {
		return nil, fmt.Errorf("play: %w", err)
	}
	return &stream{
		proc:   p,
		tone:   tone,
		ctx:    plugin.ProcessContext{SampleRate: cfg.sampleRate},
		block:  buffer.New(2, cfg.blockSize),
		frames: make([]float32, 2*cfg.blockSize),
		raw:    make([]byte, 8*cfg.blockSize),
	}, nil
}

// Read implements io.Reader for oto.
func (s *stream) Read(b []byte) (int, error) {
	n := 0
	for n < len(b) {
		if len(s.pending) == 0 {
			s.fill()
		}
		c := copy(b[n:], s.pending)
		s.pending = s.pending[c:]
		n += c
	}
	return n, nil
}

func (s *stream) fill() {
	left, right := s.block.Channel(0), s.block.Channel(1)
	s.tone.Fill(left)
	copy(right, left)
	s.proc.Process(s.block, &s.ctx)

	n := s.block.Interleave(s.frames)
	for i, v := range s.frames[:n] {
		binary.LittleEndian.PutUint32(s.raw[4*i:], math.Float32bits(v))
	}
	s.pending = s.raw[:4*n]
}
