package barrack

// Reply is the ordered, append-only sequence of encoded outgoing frames
// produced during one handler invocation. The caller owns it and transmits
// the frames only when the handler reports a non-error state.
type Reply struct {
	frames [][]byte
}

func (r *Reply) Append(frame []byte) {
	r.frames = append(r.frames, frame)
}

// Frames returns the frames in append order.
func (r *Reply) Frames() [][]byte {
	return r.frames
}

func (r *Reply) Len() int {
	return len(r.frames)
}
