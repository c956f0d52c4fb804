package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/chzyer/readline"
	"github.com/faiface/beep"

	"github.com/nduc/bgm-player/internal/config"
	"github.com/nduc/bgm-player/internal/engine"
	"github.com/nduc/bgm-player/internal/library"
	"github.com/nduc/bgm-player/internal/model"
	"github.com/nduc/bgm-player/internal/platform"
	"github.com/nduc/bgm-player/internal/sequencer"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const helpText = `commands:
  intro <path>   set the intro file
  loop <path>    set the loop file
  play           start or resume playback
  pause          pause playback
  stop           stop playback, keep the playlist
  clear          stop and clear the playlist
  status         show slots and playback state
  quit           exit`

// player serializes every sequencer call, including engine events, behind one mutex
type player struct {
	mu  sync.Mutex
	out io.Writer

	library   *library.Library
	engine    *engine.Service
	sequencer *sequencer.Sequencer
	lastIndex int
}

func (p *player) dispatch(f func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	f()
}

func main() {
	dataDir := flag.String("data", "", "data directory (default: "+config.EnvDataDir+" or the user config dir)")
	bufferMs := flag.Int("buffer", config.DefaultBufferMs, "output buffer in milliseconds")
	volume := flag.Float64("volume", config.DefaultVolume, "output volume 0..1")
	rate := flag.Int("rate", int(engine.DefaultSampleRate), "output sample rate")
	flag.Parse()

	overrides, err := config.LoadOverrides()
	if err != nil {
		log.Printf("Failed to load .env overrides: %v", err)
	}

	dir := *dataDir
	if dir == "" {
		dir = overrides.DataDir
	}
	if dir == "" {
		if dir, err = platform.GetAppDataDir(); err != nil {
			log.Fatalf("Failed to resolve data directory: %v", err)
		}
	}
	if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	if *bufferMs < config.MinBufferMs || *bufferMs > config.MaxBufferMs {
		log.Fatalf("Buffer must be within %d-%d ms", config.MinBufferMs, config.MaxBufferMs)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "bgm> ",
		HistoryFile:     filepath.Join(dir, ".cli_history"),
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
		AutoComplete: readline.NewPrefixCompleter(
			readline.PcItem("intro", readline.PcItemDynamic(listFiles)),
			readline.PcItem("loop", readline.PcItemDynamic(listFiles)),
			readline.PcItem("play"),
			readline.PcItem("pause"),
			readline.PcItem("stop"),
			readline.PcItem("clear"),
			readline.PcItem("status"),
			readline.PcItem("help"),
			readline.PcItem("quit"),
		),
	})
	if err != nil {
		log.Fatalf("Failed to start prompt: %v", err)
	}
	defer rl.Close()
	log.SetOutput(rl.Stderr())

	p := &player{out: rl.Stdout(), library: library.NewLibrary(dir), lastIndex: -1}
	if err := p.library.LoadDisplayNames(); err != nil {
		log.Printf("Failed to load display names: %v", err)
	}

	p.engine = engine.NewService(engine.Options{
		SampleRate: beep.SampleRate(*rate),
		BufferSize: time.Duration(*bufferMs) * time.Millisecond,
		Volume:     *volume,
		Dispatch:   p.dispatch,
	})
	p.engine.SetUpdateCallback(p.onEngineUpdate)
	p.sequencer = sequencer.NewSequencer(p.engine, p.library)

	fmt.Fprintf(p.out, "BGM Player CLI v%s (data: %s)\n%s\n", version, dir, helpText)
	p.dispatch(p.printStatus)

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if line == "" {
				break
			}
			continue
		}
		if err != nil {
			break
		}

		quit := false
		p.dispatch(func() { quit = p.exec(strings.TrimSpace(line)) })
		if quit {
			break
		}
	}

	p.dispatch(func() {
		p.sequencer.Clear()
		p.engine.Release()
	})
}

// exec runs one command line and reports whether the prompt should exit
func (p *player) exec(line string) bool {
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(cmd) {
	case "":
	case "intro":
		p.importSlot(model.SlotIntro, arg)
	case "loop":
		p.importSlot(model.SlotLoop, arg)
	case "play":
		if err := p.sequencer.Play(); err != nil {
			if errors.Is(err, sequencer.ErrNoSourceSelected) {
				fmt.Fprintln(p.out, " [!] No intro or loop file selected.")
			} else {
				fmt.Fprintf(p.out, " [!] %v\n", err)
			}
			return false
		}
		p.printStatus()
	case "pause":
		p.sequencer.Pause()
		p.printStatus()
	case "stop":
		p.sequencer.Stop()
		p.printStatus()
	case "clear":
		p.sequencer.Clear()
		p.printStatus()
	case "status":
		p.printStatus()
	case "help", "?":
		fmt.Fprintln(p.out, helpText)
	case "quit", "exit":
		return true
	default:
		fmt.Fprintf(p.out, " [!] Unknown command %q, type help\n", cmd)
	}
	return false
}

func (p *player) importSlot(slot model.Slot, path string) {
	if path == "" {
		fmt.Fprintf(p.out, " [!] Usage: %s <path>\n", slot)
		return
	}

	if p.sequencer.StopUsing(slot) {
		fmt.Fprintf(p.out, " playback stopped to replace %s\n", slot)
	}

	err := p.library.ImportFile(slot, path)
	switch {
	case err == nil:
		fmt.Fprintf(p.out, " %s set to %s\n", slot, p.library.TrackSlot(slot).DisplayName)
	case errors.Is(err, library.ErrInvalidWavHeader):
		fmt.Fprintf(p.out, " [!] %s is not a valid WAV file; the %s slot will be skipped\n", filepath.Base(path), slot)
	default:
		fmt.Fprintf(p.out, " [!] %v\n", err)
	}
}

func (p *player) printStatus() {
	for _, slot := range model.AllSlots {
		ts := p.library.TrackSlot(slot)
		name := ts.DisplayName
		if !ts.HasDisplayName() {
			name = "-"
		}

		detail := "missing"
		if p.library.Check(slot) {
			if info, err := p.library.Info(slot); err == nil {
				detail = info.String()
			} else {
				detail = "unreadable"
			}
		} else if ts.HasSource() {
			detail = "invalid wav"
		}
		fmt.Fprintf(p.out, " %-5s : %s (%s)\n", slot, name, detail)
	}

	status := p.engine.Status()
	fmt.Fprintf(p.out, " state : %s, playing=%v, item=%d/%d, repeat=%s\n",
		p.sequencer.State(), status.Playing, status.Index+1, status.Items, status.Repeat)
}

// onEngineUpdate reports playlist transitions; it runs under the dispatcher
func (p *player) onEngineUpdate(status model.EngineStatus) {
	if status.Ended && p.sequencer != nil && p.sequencer.State().IsActive() {
		p.sequencer.OnPlaybackEnded()
		fmt.Fprintln(p.out, " playback ended")
	}
	if status.Index == p.lastIndex {
		return
	}
	p.lastIndex = status.Index
	if status.Index >= 0 && p.sequencer != nil && p.sequencer.State().IsActive() {
		fmt.Fprintf(p.out, " now playing item %d/%d (repeat %s)\n", status.Index+1, status.Items, status.Repeat)
	}
}

func listFiles(line string) []string {
	_, partial, _ := strings.Cut(line, " ")
	dir := filepath.Dir(partial)
	if partial == "" {
		dir = "."
	}
	entries, _ := os.ReadDir(dir)
	var names []string
	for _, e := range entries {
		name := filepath.Join(dir, e.Name())
		if strings.HasPrefix(name, partial) && (e.IsDir() || strings.HasSuffix(strings.ToLower(name), ".wav")) {
			names = append(names, name)
		}
	}
	return names
}
