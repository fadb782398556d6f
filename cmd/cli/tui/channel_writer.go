package tui

// ChannelWriter bridges slog output into the TUI: the logger writes here,
// and each write surfaces as one message in the viewport's log pane instead
// of corrupting the terminal behind bubbletea.
type ChannelWriter struct {
	Ch chan<- string
}

// Write forwards the buffer as a single string message. The send blocks
// when the channel is full, so size the channel for bursts.
func (w *ChannelWriter) Write(p []byte) (n int, err error) {
	w.Ch <- string(p)
	return len(p), nil
}
