package proto

import (
	"strings"

	"github.com/pkg/errors"
	"go.bug.st/serial"
)

var ErrNoPort = errors.New("serial port not found")

// Line settings for the panel controller, always 8N1.
type Options struct {
	DTR      bool
	RTS      bool
	BaudRate int
}

func (o *Options) mode() *serial.Mode {
	return &serial.Mode{
		BaudRate: o.BaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
}

// NewSerial returns a port handle for the first device whose path
// contains name, e.g. "ttyACM" or "usbmodem".
func NewSerial(name string) *Serial {
	return &Serial{
		name: name,
		list: serial.GetPortsList,
		dial: serial.Open,
	}
}

type Serial struct {
	name string
	list func() ([]string, error)
	dial func(path string, mode *serial.Mode) (serial.Port, error)
	port serial.Port
	path string
}

func (s *Serial) Name() string {
	return s.name
}

// Path is the device opened by the last successful Open.
func (s *Serial) Path() string {
	return s.path
}

// Resolve finds the device path matching the configured name.
func (s *Serial) Resolve() (string, error) {
	ports, err := s.list()
	if err != nil {
		return "", errors.Wrap(err, "list serial ports failed")
	}

	path, ok := match(ports, s.name)
	if !ok {
		return "", errors.Wrapf(ErrNoPort, "%q not in [%s]", s.name, strings.Join(ports, ", "))
	}
	return path, nil
}

func (s *Serial) Open(opts *Options) error {
	path, err := s.Resolve()
	if err != nil {
		return err
	}

	port, err := s.dial(path, opts.mode())
	if err != nil {
		return errors.Wrapf(err, "open %s failed", path)
	}

	if err := port.SetDTR(opts.DTR); err != nil {
		_ = port.Close()
		return errors.Wrap(err, "set DTR failed")
	}
	if err := port.SetRTS(opts.RTS); err != nil {
		_ = port.Close()
		return errors.Wrap(err, "set RTS failed")
	}

	s.port, s.path = port, path
	return nil
}

// match returns the first port whose path contains name.
func match(ports []string, name string) (string, bool) {
	if name == "" {
		return "", false
	}
	for _, p := range ports {
		if strings.Contains(p, name) {
			return p, true
		}
	}
	return "", false
}

// Close releases the port. Closing a handle that is not open is a no-op.
func (s *Serial) Close() error {
	if s.port == nil {
		return nil
	}
	err := s.port.Close()
	s.port = nil
	return err
}

func (s *Serial) Write(p []byte) (int, error) {
	if s.port == nil {
		return 0, errors.Errorf("serial port %s not open", s.name)
	}
	return s.port.Write(p)
}
