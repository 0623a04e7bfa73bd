package virtual

import (
	"github.com/inhies/go-bytesize"
	"go.uber.org/zap"

	"epaperframe/pkg/palette"
	"epaperframe/pkg/proto"
)

// Mock logs what would have been sent and drops the frame.
func Mock(logger *zap.Logger) proto.Sink {
	return &Mocker{l: logger}
}

type Mocker struct {
	l    *zap.Logger
	sent int
}

func (m *Mocker) Name() string {
	return "virtual"
}

// Sent counts the frames handed to the mock.
func (m *Mocker) Sent() int {
	return m.sent
}

func (m *Mocker) Send(frame []byte) error {
	m.sent++

	var counts [16]int
	for _, b := range frame {
		counts[b>>4]++
		counts[b&0x0f]++
	}

	fields := []zap.Field{
		zap.String("size", bytesize.New(float64(len(frame))).String()),
	}
	for i, n := range counts {
		if n == 0 {
			continue
		}
		name := palette.Name(uint8(i))
		if name == "" {
			name = "invalid"
		}
		fields = append(fields, zap.Int(name, n))
	}

	m.l.With(fields...).Info("frame")
	return nil
}
