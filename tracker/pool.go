package tracker

import (
	"sync"

	"keymidi/midi"
)

// pool runs sends on a fixed set of workers. Each note is pinned to one
// worker, whose FIFO queue keeps that note's commands in order.
type pool struct {
	queues []chan midi.Event
	wg     sync.WaitGroup
}

func newPool(workers, depth int, run func(midi.Event)) *pool {
	p := &pool{queues: make([]chan midi.Event, workers)}
	for i := range p.queues {
		q := make(chan midi.Event, depth)
		p.queues[i] = q
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for ev := range q {
				run(ev)
			}
		}()
	}
	return p
}

// submit queues ev on its note's worker. It never blocks: when that queue is
// full the event is refused and submit returns false.
func (p *pool) submit(ev midi.Event) bool {
	select {
	case p.queues[int(ev.Note)%len(p.queues)] <- ev:
		return true
	default:
		return false
	}
}

// close drains all queues and waits for the workers. No submit may follow.
func (p *pool) close() {
	for _, q := range p.queues {
		close(q)
	}
	p.wg.Wait()
}
