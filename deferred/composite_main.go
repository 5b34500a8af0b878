package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/gekko3d/composite"
	"github.com/gekko3d/composite/deferred/rt/app"
	"github.com/gekko3d/composite/deferred/rt/shade"
	"github.com/gekko3d/composite/deferred/rt/texture"
)

func main() {
	scenePath := flag.String("scene", "scene.yaml", "Scene description (YAML)")
	outPath := flag.String("out", "composite.exr", "Linear EXR output")
	pngPath := flag.String("png", "", "Optional gamma-encoded PNG output")
	mode := flag.String("mode", "", "Debug mode name or number (overrides the scene)")
	lights := flag.Bool("lights", true, "Enable lighting (overrides the scene when set)")
	workers := flag.Int("workers", 0, "Shading goroutines, 0 for GOMAXPROCS (overrides the scene when set)")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	logger := composite.NewDefaultLogger("composite", *debug)
	if err := run(logger, *scenePath, *outPath, *pngPath, *mode, *lights, *workers); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}

func run(logger composite.Logger, scenePath, outPath, pngPath, mode string, lights bool, workers int) error {
	profiler := app.NewProfiler()

	scene, err := composite.LoadScene(scenePath)
	if err != nil {
		return err
	}
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if mode != "" {
		m, err := shade.ParseMode(mode)
		if err != nil {
			return err
		}
		scene.Settings.Shade.Mode = m
	}
	if set["lights"] {
		scene.Settings.Shade.LightsActive = lights
	}
	if set["workers"] {
		scene.Settings.Workers = workers
	}

	var inputs composite.Inputs
	var frame *shade.Frame
	err = profiler.Time("load", func() error {
		var err error
		inputs, frame, err = scene.Load(logger)
		return err
	})
	if err != nil {
		return err
	}

	pass, err := composite.NewPass(inputs, frame, scene.Settings, logger)
	if err != nil {
		return err
	}
	pass.SetProfiler(profiler)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	out, err := pass.Run(ctx)
	if err != nil {
		return err
	}

	err = profiler.Time("encode", func() error {
		if err := texture.SaveEXR(outPath, out); err != nil {
			return err
		}
		if pngPath != "" {
			return texture.SaveDisplayPNG(pngPath, out)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Infof("wrote %s", outPath)
	if logger.DebugEnabled() {
		logger.Debugf("%s", profiler.GetStatsString())
	}
	return nil
}
