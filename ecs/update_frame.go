package ecs

// UpdateFrame is handed to every system run of one scheduler frame.
type UpdateFrame struct {
	DeltaTime float64
	Frame     int64
	EditMode  bool
	Commands  *Commands
	World     *World
}

func newUpdateFrame(dt float64, frame int64, world *World, commands *Commands) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Frame:     frame,
		Commands:  commands,
		World:     world,
	}
}
