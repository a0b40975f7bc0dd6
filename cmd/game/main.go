package main

import (
	"embed"
	"flag"
	"io/fs"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/scenecam/internal/application/replay"
	"github.com/younwookim/scenecam/internal/application/scene/level"
	"github.com/younwookim/scenecam/internal/application/system"
	"github.com/younwookim/scenecam/internal/infrastructure/config"
)

//go:embed configs
var configFS embed.FS

func main() {
	// Parse command line flags
	recordFlag := flag.String("record", "", "Record input to file (e.g., -record replay.json)")
	replayFlag := flag.String("replay", "", "Play input back from a recorded file")
	headless := flag.Bool("headless", false, "Run without a window (requires -replay or -frames)")
	frames := flag.Int("frames", 0, "Stop after this many frames (0 runs until the game ends)")
	mute := flag.Bool("mute", false, "Disable audio output")
	flag.Parse()

	if *headless && *replayFlag == "" && *frames <= 0 {
		log.Fatal("-headless needs -replay or -frames to end")
	}

	// Load configurations using embedded filesystem
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		log.Fatalf("Failed to get config subfs: %v", err)
	}
	loader := config.NewFSLoader(fsys, "configs")
	cfg, err := loader.LoadGame()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	bindings, err := system.ParseBindings(cfg.Bindings)
	if err != nil {
		log.Fatalf("Failed to parse bindings: %v", err)
	}

	var (
		input    system.ActionSource = system.NewLiveInput(bindings, system.EbitenKeys{})
		replayer *replay.Replayer
		recorder *replay.Recorder
	)
	startLevel := cfg.StartLevel
	if *replayFlag != "" {
		data, err := replay.LoadReplay(*replayFlag)
		if err != nil {
			log.Fatalf("Failed to load replay: %v", err)
		}
		replayer = replay.NewReplayer(*data)
		input = replayer
		if replayer.Level() != "" {
			startLevel = replayer.Level()
		}
		log.Printf("Replaying %d frames from %s", replayer.TotalFrames(), *replayFlag)
	}
	if *recordFlag != "" {
		recorder = replay.NewRecorder(input, startLevel)
		input = recorder
		log.Printf("Recording input to %s", *recordFlag)
	}

	opts := appOptions{
		startLevel: startLevel,
		mute:       *mute || *headless || !cfg.Audio.Enabled,
		headless:   *headless,
	}
	app, err := newApp(fsys, cfg, input, opts)
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}

	if *headless {
		var done func() bool
		if replayer != nil {
			done = replayer.Done
		}
		n, err := runHeadless(app.game, *frames, done)
		saveRecording(recorder, *recordFlag)
		if err != nil {
			log.Fatalf("Headless run failed after %d frames: %v", n, err)
		}
		log.Printf("Headless run finished after %d frames", n)
		logCameras(app)
		return
	}

	// Set up ebiten
	ebiten.SetWindowSize(cfg.Display.ScreenWidth*cfg.Display.Scale,
		cfg.Display.ScreenHeight*cfg.Display.Scale)
	ebiten.SetWindowTitle(cfg.Display.Title)
	ebiten.SetTPS(cfg.Display.Framerate)

	// Run game
	err = ebiten.RunGame(app.game)
	saveRecording(recorder, *recordFlag)
	if err != nil {
		log.Fatal(err)
	}
}

// logCameras prints where the running level's cameras ended up.
func logCameras(a *app) {
	l, ok := a.game.Current().(*level.Level)
	if !ok {
		log.Printf("No level running")
		return
	}
	for i, c := range l.Cameras() {
		vp := c.Viewport()
		log.Printf("%s camera %d: center=(%.3f, %.3f) width=%.3f viewport=(%.1f, %.1f, %.1f, %.1f)",
			l.Name(), i, c.Center().X(), c.Center().Y(), c.WorldWidth(), vp.X, vp.Y, vp.Width, vp.Height)
	}
}

func saveRecording(r *replay.Recorder, filename string) {
	if r == nil {
		return
	}
	if err := r.Save(filename); err != nil {
		log.Printf("Failed to save replay: %v", err)
		return
	}
	log.Printf("Saved %d frames to %s", r.FrameCount(), filename)
}
