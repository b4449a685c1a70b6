package main

import (
	"fmt"

	"github.com/richinsley/gosketch/encoder"
	"github.com/richinsley/gosketch/glfwcontext"
	"github.com/richinsley/gosketch/logger"
	"github.com/richinsley/gosketch/options"
	"github.com/richinsley/gosketch/renderer"
	"github.com/richinsley/gosketch/sketch"
	"go.uber.org/zap"
)

const numBuffers = 3

// runRecord drives the sketch one frame at a time and streams each frame
// to the encoder.
func runRecord(ctx *glfwcontext.Context, r *renderer.Renderer, sk *sketch.Sketch, opts *options.SketchOptions) error {
	width, height := r.DrawingBufferSize()
	enc, err := encoder.New(encoder.Options{
		Width:      width,
		Height:     height,
		FPS:        *opts.FPS,
		OutputFile: *opts.OutputFile,
		FFmpegPath: *opts.FFmpegPath,
		Codec:      *opts.Codec,
	})
	if err != nil {
		return err
	}

	frames := make(chan *encoder.Frame, numBuffers)
	done := make(chan error, 1)
	go func() { done <- enc.Run(frames) }()

	total := opts.Frames()
	var renderErr error
	for i := 0; i < total && !ctx.ShouldClose(); i++ {
		ctx.RunFrame()
		if renderErr = sk.Err(); renderErr != nil {
			break
		}
		pixels, err := r.ReadPixels()
		if err != nil {
			renderErr = err
			break
		}
		frames <- &encoder.Frame{Pixels: append([]byte(nil), pixels...), PTS: int64(i)}
		ctx.EndFrame()

		if (i+1)%(*opts.FPS) == 0 {
			logger.Log.Debug("recording", zap.Int("frame", i+1), zap.Int("total", total))
		}
	}
	close(frames)

	encErr := <-done
	if renderErr != nil {
		return fmt.Errorf("render: %w", renderErr)
	}
	return encErr
}
