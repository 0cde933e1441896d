package stacktrace

// Record is a node of an error graph: the error itself, the error that caused
// it and the errors suppressed while handling it. A Record tree is built fresh
// for each rendering and is never modified by the Formatter or the Hasher.
type Record struct {
	Type       string
	Message    string
	Frames     []Frame
	Cause      *Record
	Suppressed []*Record
}

// commonFrames counts the trailing frames that frames shares with the frames
// of the enclosing record.
func commonFrames(frames []Frame, enclosing []Frame) int {
	count := 0
	for i, j := len(frames)-1, len(enclosing)-1; i >= 0 && j >= 0; i, j = i-1, j-1 {
		if !frames[i].equal(&enclosing[j]) {
			break
		}
		count++
	}
	return count
}

// causeChain returns the record followed by its causes, outermost first.
func (r *Record) causeChain() []*Record {
	var chain []*Record
	for record := r; record != nil; record = record.Cause {
		chain = append(chain, record)
	}
	return chain
}

// WithPackaging fills the packaging of every frame of the tree from the build
// information of the running binary, and returns the record.
func (r *Record) WithPackaging() *Record {
	if r == nil {
		return nil
	}
	for index := range r.Frames {
		frame := &r.Frames[index]
		if frame.Packaging == nil {
			frame.Packaging = packagingOf(frame.Class)
		}
	}
	r.Cause.WithPackaging()
	for _, suppressed := range r.Suppressed {
		suppressed.WithPackaging()
	}
	return r
}
