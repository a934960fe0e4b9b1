package service

import (
	"sync"
	"time"
)

// rotator publishes a fixed cycle of status messages while a fusion runs.
// Start publishes the first message immediately and then advances every
// interval, wrapping around. Stop ends the cycle; the session clears the
// message itself when the run settles.
type rotator struct {
	messages []string
	every    time.Duration

	stopOnce sync.Once
	stop     chan struct{}
}

func newRotator(messages []string, every time.Duration) *rotator {
	return &rotator{
		messages: messages,
		every:    every,
		stop:     make(chan struct{}),
	}
}

func (r *rotator) Start(publish func(string)) {
	if len(r.messages) == 0 {
		return
	}
	publish(r.messages[0])

	go func() {
		ticker := time.NewTicker(r.every)
		defer ticker.Stop()

		next := 1
		for {
			select {
			case <-r.stop:
				return
			case <-ticker.C:
				publish(r.messages[next%len(r.messages)])
				next++
			}
		}
	}()
}

func (r *rotator) Stop() {
	r.stopOnce.Do(func() { close(r.stop) })
}
