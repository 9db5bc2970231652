package cellview

// Command is returned by event handlers to ask the [Application] for a side
// effect. Handlers never call into the application themselves.
type Command any

// BatchCommand runs its commands in order.
type BatchCommand []Command

// AppendCommand returns a command running current and then next. Nil commands
// disappear and batches are merged rather than nested.
func AppendCommand(current, next Command) Command {
	switch {
	case next == nil:
		return current
	case current == nil:
		return next
	}
	return append(flatten(current), flatten(next)...)
}

func flatten(cmd Command) BatchCommand {
	if batch, ok := cmd.(BatchCommand); ok {
		return append(BatchCommand(nil), batch...)
	}
	return BatchCommand{cmd}
}

// SetFocusCommand gives Target the keyboard focus.
type SetFocusCommand struct {
	Target Primitive
}

// RedrawCommand marks an event as handled. The screen is redrawn if anything
// became dirty.
type RedrawCommand struct{}

// QuitCommand stops the application.
type QuitCommand struct{}
