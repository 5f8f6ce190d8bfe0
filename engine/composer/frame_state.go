package composer

// FrameState tracks where the composer is in the per-frame recording sequence.
// Transitions are linear: Idle, MainPass, MainPassEnded, OverlayPass,
// Submitted, then back to Idle after presentation. Any error during a frame
// resets the state to Idle.
type FrameState int

const (
	// FrameStateIdle means no frame is being recorded.
	FrameStateIdle FrameState = iota
	// FrameStateMainPass means the depth-tested 3D pass is recording.
	FrameStateMainPass
	// FrameStateMainPassEnded means the 3D pass has ended but the frame's
	// command encoder is still open.
	FrameStateMainPassEnded
	// FrameStateOverlayPass means the 2D overlay pass is recording.
	FrameStateOverlayPass
	// FrameStateSubmitted means the command buffer has been submitted and the
	// frame is awaiting presentation.
	FrameStateSubmitted
)

// String returns the human-readable name of the frame state.
//
// Returns:
//   - string: the state name
func (s FrameState) String() string {
	switch s {
	case FrameStateMainPass:
		return "main-pass"
	case FrameStateMainPassEnded:
		return "main-pass-ended"
	case FrameStateOverlayPass:
		return "overlay-pass"
	case FrameStateSubmitted:
		return "submitted"
	default:
		return "idle"
	}
}
