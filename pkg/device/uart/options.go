package uart

type Option func(u *UART)

func WithBaudRate(baud int) Option {
	return func(u *UART) {
		u.baud = baud
	}
}

func WithProgress() Option {
	return func(u *UART) {
		u.progress = true
	}
}
