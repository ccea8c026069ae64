package emulator

// Status represents the status of the emulator.
// It can be one of the following:
//
//   - Running
//   - Paused
//   - Errored
type Status int

const (
	// Running represents the status of the
	// emulator when it is running.
	Running Status = iota
	// Paused represents the status of the
	// emulator when it has been paused.
	Paused
	// Errored represents the status of the
	// emulator when the CPU has encountered
	// an unrecoverable error.
	Errored
)

func (s Status) String() string {
	switch s {
	case Running:
		return "Running"
	case Paused:
		return "Paused"
	case Errored:
		return "Errored"
	default:
		return "Unknown"
	}
}

func (s Status) IsRunning() bool {
	return s == Running
}

func (s Status) IsPaused() bool {
	return s == Paused
}

func (s Status) IsErrored() bool {
	return s == Errored
}
