package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/thelolagemann/dmgcore/internal/gameboy"
	"github.com/thelolagemann/dmgcore/internal/joypad"
	"github.com/thelolagemann/dmgcore/internal/ppu"
	"github.com/thelolagemann/dmgcore/pkg/display"
	_ "github.com/thelolagemann/dmgcore/pkg/display/ebiten"
	"github.com/thelolagemann/dmgcore/pkg/display/event"
	_ "github.com/thelolagemann/dmgcore/pkg/display/sdl"
	_ "github.com/thelolagemann/dmgcore/pkg/display/web"
	"github.com/thelolagemann/dmgcore/pkg/emulator"
	"github.com/thelolagemann/dmgcore/pkg/log"
	"github.com/thelolagemann/dmgcore/pkg/perf"
	"github.com/thelolagemann/dmgcore/pkg/statsview"
	"github.com/thelolagemann/dmgcore/pkg/utils"
)

func main() {
	logger := log.New()

	romFile := flag.String("rom", "", "The rom file to load")
	displayDriver := flag.String("driver", "auto", "The display driver to use. Can be auto, sdl, ebiten or web")
	paletteIndex := flag.Int("palette", 0, "The colour palette to start with")
	speed := flag.Float64("speed", 1, "The speed to run the emulator at")
	debug := flag.Bool("debug", false, "Enable debug logging")
	serial := flag.Bool("serial", false, "Write serial output to stdout")
	headless := flag.Int("headless", 0, "Run the given number of frames without a display")
	digest := flag.Bool("digest", false, "Print the digest of the last headless frame")
	screenshot := flag.String("screenshot", "", "Save the last headless frame to a PNG")
	screenshotScale := flag.Int("screenshot-scale", 1, "The scale of the headless screenshot")
	perfFile := flag.String("perf", "", "Save a plot of frame times to a PNG on exit")
	stats := flag.String("statsview", "", "Serve runtime statistics on the given address")

	display.RegisterFlags(flag.CommandLine)
	flag.Parse()

	if *debug {
		logger.SetLevel(logrus.DebugLevel)
	}

	if *romFile == "" {
		if *headless > 0 {
			logger.Fatal("a rom file is required in headless mode")
		}
		file, err := utils.AskForFile("Open ROM", ".")
		if err != nil {
			logger.Fatal(err)
		}
		*romFile = file
	}
	rom, err := utils.LoadFile(*romFile)
	if err != nil {
		logger.Fatal(err)
	}

	opts := []gameboy.Opt{
		gameboy.WithLogger(logger),
		gameboy.WithPalette(*paletteIndex),
	}
	if *serial {
		opts = append(opts, gameboy.WithSerialOutput(os.Stdout))
	}

	if *stats != "" {
		server := statsview.New(*stats, logger)
		server.Start()
		defer server.Stop()
	}

	if *headless > 0 {
		if err := runHeadless(rom, opts, *headless, *digest, *screenshot, *screenshotScale); err != nil {
			logger.Fatal(err)
		}
		return
	}

	emu, err := emulator.New(rom, *speed, opts...)
	if err != nil {
		logger.Fatal(err)
	}

	recorder := perf.NewRecorder(600)
	if *perfFile != "" {
		emu.OnFrame = recorder.Record
	}

	driver := display.GetDriver(*displayDriver)
	if driver == nil {
		logger.Fatal("invalid display driver")
	}
	driver.Initialize(emu)

	fb := make(chan []byte, 60)
	events := make(chan event.Event, 60)
	pressed := make(chan joypad.Button, 10)
	released := make(chan joypad.Button, 10)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errs := make(chan error, 1)
	go func() {
		errs <- emu.Run(ctx, fb, events, pressed, released)
	}()

	if err := driver.Start(fb, events, pressed, released); err != nil {
		logger.Errorf("display driver: %s", err)
	}
	cancel()

	if err := <-errs; err != nil {
		logger.Errorf("emulator stopped: %s", err)
	}

	if *perfFile != "" {
		target := emu.GameBoy().FrameTime()
		if err := recorder.SavePlot(*perfFile, target); err != nil {
			logger.Errorf("saving frame time plot: %s", err)
		} else {
			logger.Infof("average frame time %s (target %s)", recorder.Average(), target)
		}
	}
}

// runHeadless emulates frames as fast as possible, then reports
// on the last one.
func runHeadless(rom []byte, opts []gameboy.Opt, frames int, digest bool, screenshot string, scale int) error {
	gb, err := gameboy.NewGameBoy(rom, opts...)
	if err != nil {
		return err
	}

	start := time.Now()
	var frame gameboy.Frame
	for i := 0; i < frames; i++ {
		if frame, err = gb.Frame(); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
	}
	gb.Logger.Infof("emulated %d frames in %s", frames, time.Since(start))

	if digest {
		fmt.Printf("%016x\n", utils.Digest(frame[:]))
	}
	if screenshot != "" {
		img := utils.FrameImage(gb.Colourise(frame), ppu.ScreenWidth, ppu.ScreenHeight)
		if scale > 1 {
			img = utils.Scale(img, scale)
		}
		if err := utils.SavePNG(screenshot, img); err != nil {
			return err
		}
	}
	return nil
}
