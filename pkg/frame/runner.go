package frame

import (
	"fmt"

	"github.com/inhies/go-bytesize"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"epaperframe/pkg/preview"
	"epaperframe/pkg/proto"
	"epaperframe/pkg/source"
)

func NewRunner(loader *source.Loader, frame *Frame, sink proto.Sink, logger *zap.Logger) *Runner {
	return &Runner{
		loader: loader,
		frame:  frame,
		sink:   sink,
		logger: logger,
	}
}

// Runner converts one picture and hands the frame to a sink.
type Runner struct {
	loader *source.Loader
	frame  *Frame
	sink   proto.Sink
	viewer *preview.Viewer
	logger *zap.Logger
}

func (r *Runner) SetViewer(v *preview.Viewer) {
	r.viewer = v
}

// Run loads input, converts it and sends the frame. With show set the
// quantized picture is opened in the viewer once the frame has been sent.
func (r *Runner) Run(input string, show bool) error {
	img, err := r.loader.Load(input)
	if err != nil {
		return fmt.Errorf("load image failed: %w", err)
	}

	m, bs, err := r.frame.Encode(img)
	if err != nil {
		return fmt.Errorf("pack frame failed: %w", err)
	}

	if err := r.sink.Send(bs); err != nil {
		return fmt.Errorf("send frame to %s failed: %w", r.sink.Name(), err)
	}

	r.logger.With(
		zap.String("src", input),
		zap.String("dst", r.sink.Name()),
		zap.String("size", bytesize.New(float64(len(bs))).String()),
	).Info("frame done")

	if show {
		if r.viewer == nil {
			return errors.New("no viewer configured")
		}
		if _, err := r.viewer.Show(m); err != nil {
			return err
		}
	}

	return nil
}
