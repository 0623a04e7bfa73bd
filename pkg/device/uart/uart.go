// Package uart streams frames to a panel controller listening on a serial
// port. The frame goes out as raw bytes with no framing.
package uart

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/inhies/go-bytesize"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"epaperframe/pkg/proto"
)

const DefaultBaudRate = 115200

func New(serial *proto.Serial, logger *zap.Logger, opts ...Option) proto.Sink {
	u := &UART{
		serial: serial,
		logger: logger,
		baud:   DefaultBaudRate,
	}

	for _, opt := range opts {
		opt(u)
	}

	return u
}

type UART struct {
	serial   *proto.Serial
	logger   *zap.Logger
	baud     int
	progress bool
}

func (u *UART) Name() string {
	return u.serial.Name()
}

func (u *UART) Send(frame []byte) error {
	if err := u.serial.Open(&proto.Options{
		DTR:      true,
		RTS:      true,
		BaudRate: u.baud,
	}); err != nil {
		return errors.Wrap(err, "open serial failed")
	}

	defer func() {
		if err := u.serial.Close(); err != nil {
			u.logger.With(zap.Error(err)).Info("close serial failed")
		}
	}()

	return u.sendBytes(frame)
}

func (u *UART) sendBytes(bs []byte) error {
	var w io.Writer = u.serial
	if u.progress {
		w = proto.Progress(u.serial, int64(len(bs)), fmt.Sprintf("Sending to %s", u.serial.Name()))
	}

	start := time.Now()
	n, err := io.Copy(w, bytes.NewReader(bs))
	if err != nil {
		return errors.Wrap(err, "serial write failed")
	}

	u.logger.With(
		zap.String("port", u.serial.Name()),
		zap.String("path", u.serial.Path()),
		zap.Int("baud", u.baud),
		zap.String("sent", bytesize.New(float64(n)).String()),
		zap.String("cost", time.Since(start).String()),
	).Debug("transfer")

	return nil
}
