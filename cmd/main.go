package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"

	"github.com/richinsley/gosketch/glfwcontext"
	"github.com/richinsley/gosketch/logger"
	"github.com/richinsley/gosketch/options"
	"github.com/richinsley/gosketch/renderer"
	"github.com/richinsley/gosketch/shader"
	"github.com/richinsley/gosketch/sketch"
	"go.uber.org/zap"
)

const windowTitle = "gosketch"

func runSketch(opts *options.SketchOptions, cfg sketch.Config) error {
	if err := glfwcontext.InitGraphics(); err != nil {
		return fmt.Errorf("failed to initialize glfw: %w", err)
	}
	defer glfwcontext.TerminateGraphics()

	// If recording, the window is hidden and the renderer draws offscreen.
	ctx, err := glfwcontext.New(*opts.Width, *opts.Height, windowTitle, !*opts.Record)
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	defer ctx.Shutdown()

	r, err := renderer.New(ctx, renderer.Options{Offscreen: *opts.Record})
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	defer r.Shutdown()

	sk, err := sketch.New(ctx, r, cfg)
	if err != nil {
		return fmt.Errorf("failed to create sketch: %w", err)
	}
	defer sk.Dispose()

	if *opts.Record {
		logger.Log.Info("starting offscreen render loop", zap.Int("frames", opts.Frames()))
		if err := runRecord(ctx, r, sk, opts); err != nil {
			return fmt.Errorf("offscreen rendering failed: %w", err)
		}
		logger.Log.Info("successfully rendered", zap.String("output", *opts.OutputFile))
		return nil
	}

	logger.Log.Info("starting interactive render loop")
	return runInteractive(ctx, sk, cfg.Shaders)
}

func init() {
	runtime.LockOSThread()
}

func main() {
	opts := &options.SketchOptions{
		Variant:    flag.Int("variant", 0, "Sketch variant: 1 (basic) or 2 (fresnel). Overrides the settings file"),
		Width:      flag.Int("width", 1280, "Width of the window or recording"),
		Height:     flag.Int("height", 720, "Height of the window or recording"),
		ConfigFile: flag.String("config", "", "Path to a TOML settings file"),
		ShaderDir:  flag.String("shaders", "", "Directory of shader overrides, reloaded on change"),
		Help:       flag.Bool("help", false, "Show help message"),
		Debug:      flag.Bool("debug", false, "Enable debug logging"),

		Record:     flag.Bool("record", false, "Enable recording mode"),
		Duration:   flag.Float64("duration", 10.0, "Duration to record in seconds"),
		FPS:        flag.Int("fps", 60, "Frames per second for recording"),
		OutputFile: flag.String("output", "output.mp4", "Output file name for recording"),
		FFmpegPath: flag.String("ffmpeg", "", "Path to ffmpeg executable"),
		Codec:      flag.String("codec", "h264", "Video codec for recording: h264 or hevc"),
	}
	flag.Parse()

	if *opts.Help {
		fmt.Println("Sphere shader sketch viewer/recorder")
		flag.PrintDefaults()
		return
	}

	if err := logger.Init(*opts.Debug); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logger.Sync()

	settings, err := options.LoadSettings(*opts.ConfigFile)
	if err != nil {
		logger.Log.Fatal("error loading settings", zap.Error(err))
	}
	cfg, err := sketchConfig(settings, *opts.Variant, shader.NewLibrary(*opts.ShaderDir))
	if err != nil {
		logger.Log.Fatal("invalid configuration", zap.Error(err))
	}

	if err := runSketch(opts, cfg); err != nil {
		logger.Log.Fatal("sketch failed", zap.Error(err))
	}
}
