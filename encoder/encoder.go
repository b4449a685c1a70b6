// Package encoder streams raw RGBA frames to an ffmpeg process.
package encoder

import (
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/richinsley/gosketch/logger"
	ffmpeg "github.com/u2takey/ffmpeg-go"
	"go.uber.org/zap"
)

var errEncoderExited = errors.New("ffmpeg exited")

// Frame represents a single rendered video frame's data, ready for encoding.
type Frame struct {
	Pixels []byte
	PTS    int64
}

// Options describes the raw input and the encoded output.
type Options struct {
	Width      int
	Height     int
	FPS        int
	OutputFile string
	FFmpegPath string
	// Codec is "h264" (default) or "hevc".
	Codec string
}

// Encoder owns one ffmpeg invocation.
type Encoder struct {
	opts Options
	goos string
}

func New(opts Options) (*Encoder, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid frame size %dx%d", opts.Width, opts.Height)
	}
	if opts.FPS <= 0 {
		return nil, fmt.Errorf("invalid frame rate %d", opts.FPS)
	}
	if opts.OutputFile == "" {
		return nil, fmt.Errorf("no output file")
	}
	switch opts.Codec {
	case "":
		opts.Codec = "h264"
	case "h264", "hevc":
	default:
		return nil, fmt.Errorf("unsupported codec %q", opts.Codec)
	}
	return &Encoder{opts: opts, goos: runtime.GOOS}, nil
}

// FrameSize is the byte length every frame must have.
func (e *Encoder) FrameSize() int {
	return e.opts.Width * e.opts.Height * 4
}

// Args returns the ffmpeg input and output arguments.
func (e *Encoder) Args() (inputArgs ffmpeg.KwArgs, outputArgs ffmpeg.KwArgs) {
	inputArgs = ffmpeg.KwArgs{
		"f":         "rawvideo",
		"pix_fmt":   "rgba",
		"s":         fmt.Sprintf("%dx%d", e.opts.Width, e.opts.Height),
		"framerate": e.opts.FPS,
	}

	outputArgs = ffmpeg.KwArgs{
		"pix_fmt":         "yuv420p",
		"color_primaries": "bt709",
		"color_trc":       "bt709",
		"colorspace":      "bt709",
		"b:v":             "25M",
	}

	hevc := e.opts.Codec == "hevc"
	switch e.goos {
	case "darwin":
		if hevc {
			outputArgs["c:v"] = "hevc_videotoolbox"
		} else {
			outputArgs["c:v"] = "h264_videotoolbox"
		}
	default:
		if hevc {
			outputArgs["c:v"] = "libx265"
		} else {
			outputArgs["c:v"] = "libx264"
		}
	}

	if hevc && strings.HasSuffix(strings.ToLower(e.opts.OutputFile), ".mp4") {
		outputArgs["tag:v"] = "hvc1"
	}
	return
}

// Run encodes frames until the channel is closed. If ffmpeg fails, the
// remaining frames are drained so the producer never blocks.
func (e *Encoder) Run(frames <-chan *Frame) error {
	pipeReader, pipeWriter := io.Pipe()
	inputArgs, outputArgs := e.Args()

	ffmpegCmd := ffmpeg.Input("pipe:", inputArgs).
		Output(e.opts.OutputFile, outputArgs).
		OverWriteOutput().WithInput(pipeReader).ErrorToStdOut()
	if e.opts.FFmpegPath != "" {
		ffmpegCmd = ffmpegCmd.SetFfmpegPath(e.opts.FFmpegPath)
	}

	logger.Log.Info("starting encoder",
		zap.String("output", e.opts.OutputFile),
		zap.Any("codec", outputArgs["c:v"]),
		zap.Int("width", e.opts.Width),
		zap.Int("height", e.opts.Height),
		zap.Int("fps", e.opts.FPS))

	errc := make(chan error, 1)
	go func() {
		err := ffmpegCmd.Run()
		pipeReader.CloseWithError(errEncoderExited)
		errc <- err
	}()

	var writeErr error
	written := 0
	for frame := range frames {
		if writeErr != nil {
			continue
		}
		if len(frame.Pixels) != e.FrameSize() {
			writeErr = fmt.Errorf("frame %d has %d bytes, want %d", frame.PTS, len(frame.Pixels), e.FrameSize())
			pipeReader.CloseWithError(writeErr)
			continue
		}
		if _, err := pipeWriter.Write(frame.Pixels); err != nil {
			writeErr = fmt.Errorf("failed to write frame %d: %w", frame.PTS, err)
			continue
		}
		written++
	}
	pipeWriter.Close()

	runErr := <-errc
	if runErr != nil {
		return fmt.Errorf("ffmpeg failed after %d frames: %w", written, runErr)
	}
	if writeErr != nil {
		return writeErr
	}
	logger.Log.Info("encoder finished", zap.Int("frames", written))
	return nil
}
