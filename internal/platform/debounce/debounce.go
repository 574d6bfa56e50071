package debounce

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrSuperseded: otra llamada con la misma key llegó antes de que venciera la espera.
var ErrSuperseded = errors.New("debounce: superseded by a newer call")

// Debouncer retrasa llamadas por key; solo la última dentro de la ventana sigue adelante.
type Debouncer struct {
	delay time.Duration

	mu      sync.Mutex
	pending map[string]*waiter
	seq     uint64
}

type waiter struct {
	id     uint64
	cancel chan struct{}
}

func New(delay time.Duration) *Debouncer {
	return &Debouncer{
		delay:   delay,
		pending: map[string]*waiter{},
	}
}

// Wait bloquea durante delay. Devuelve nil si nadie la reemplazó,
// ErrSuperseded si llegó otra llamada con la misma key, o ctx.Err() si se canceló.
func (d *Debouncer) Wait(ctx context.Context, key string) error {
	w := d.register(key)
	defer d.release(key, w)

	if d.delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d.delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-w.cancel:
		return ErrSuperseded
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Cancel descarta cualquier espera pendiente para key (p.ej. el modal se cerró).
func (d *Debouncer) Cancel(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if w, ok := d.pending[key]; ok {
		close(w.cancel)
		delete(d.pending, key)
	}
}

func (d *Debouncer) register(key string) *waiter {
	d.mu.Lock()
	defer d.mu.Unlock()

	if prev, ok := d.pending[key]; ok {
		close(prev.cancel)
	}
	d.seq++
	w := &waiter{id: d.seq, cancel: make(chan struct{})}
	d.pending[key] = w
	return w
}

func (d *Debouncer) release(key string, w *waiter) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if cur, ok := d.pending[key]; ok && cur.id == w.id {
		delete(d.pending, key)
	}
}
