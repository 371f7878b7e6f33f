package contracts

// DefaultClientName is the MIDI client name announced to the MIDI subsystem.
const DefaultClientName = "midir reading input"

// DefaultVirtualDeviceName is the name of the synthetic keyboard.
const DefaultVirtualDeviceName = "pedals-remapped"

// ClientOptions defines the configuration options shared by the MIDI client and the virtual keyboard.
type ClientOptions struct {
	Logger            Logger   // Logger for logging events and errors.
	LogLevel          LogLevel // Level of logging to use.
	LogFilePath       string   // File path for logging if file logging is enabled.
	ClientName        string   // Name of the MIDI client.
	VirtualDeviceName string   // Name of the virtual keyboard device.
}

// Option is a function that modifies ClientOptions.
type Option func(*ClientOptions)

// WithLogger sets the logger.
func WithLogger(l Logger) Option {
	return func(opts *ClientOptions) {
		opts.Logger = l
	}
}

// WithLogLevel sets the logging level.
func WithLogLevel(level LogLevel) Option {
	return func(opts *ClientOptions) {
		opts.LogLevel = level
	}
}

// WithLogFile redirects the logger to the given file.
func WithLogFile(path string) Option {
	return func(opts *ClientOptions) {
		opts.LogFilePath = path
	}
}

// WithClientName sets the name under which the MIDI client registers.
func WithClientName(name string) Option {
	return func(opts *ClientOptions) {
		opts.ClientName = name
	}
}

// WithVirtualDeviceName sets the name of the virtual keyboard device.
func WithVirtualDeviceName(name string) Option {
	return func(opts *ClientOptions) {
		opts.VirtualDeviceName = name
	}
}
