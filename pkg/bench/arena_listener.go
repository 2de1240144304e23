package bench

// Forwards every callback to each listener in order
type ArenaListener struct {
	listeners []ListenerLike
}

func NewArenaListener(listeners ...ListenerLike) *ArenaListener {
	al := &ArenaListener{listeners: make([]ListenerLike, 0, len(listeners))}
	for _, l := range listeners {
		if l != nil {
			al.listeners = append(al.listeners, l)
		}
	}
	return al
}

func (al *ArenaListener) Add(l ListenerLike) *ArenaListener {
	al.listeners = append(al.listeners, l)
	return al
}

func (al *ArenaListener) OnMoveMade(info VersusWorkerInfo) {
	for _, l := range al.listeners {
		l.OnMoveMade(info)
	}
}

func (al *ArenaListener) OnFinishedGame(info VersusWorkerInfo) {
	for _, l := range al.listeners {
		l.OnFinishedGame(info)
	}
}

func (al *ArenaListener) OnFinishedWork(info VersusWorkerInfo) {
	for _, l := range al.listeners {
		l.OnFinishedWork(info)
	}
}
