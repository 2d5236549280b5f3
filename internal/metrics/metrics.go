package metrics

import (
	"sync/atomic"
	"time"
)

type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Add(n uint64) {
	atomic.AddUint64(&c.value, n)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// Checkout counts checkout attempts since process start.
type Checkout struct {
	Placed    Counter
	Failed    Counter
	ItemsSold Counter
	latencyUS Counter
}

func NewCheckout() *Checkout {
	return &Checkout{}
}

// Observe records one checkout attempt. items is the number of units
// sold and is ignored when err is set.
func (c *Checkout) Observe(d time.Duration, items int, err error) {
	if c == nil {
		return
	}
	if err != nil {
		c.Failed.Inc()
		return
	}
	c.Placed.Inc()
	c.ItemsSold.Add(uint64(items))
	c.latencyUS.Add(uint64(d.Microseconds()))
}

type Snapshot struct {
	OrdersPlaced     uint64  `json:"ordersPlaced"`
	CheckoutFailures uint64  `json:"checkoutFailures"`
	ItemsSold        uint64  `json:"itemsSold"`
	AvgLatencyMS     float64 `json:"avgCheckoutLatencyMs"`
}

func (c *Checkout) Snapshot() Snapshot {
	s := Snapshot{
		OrdersPlaced:     c.Placed.Load(),
		CheckoutFailures: c.Failed.Load(),
		ItemsSold:        c.ItemsSold.Load(),
	}
	if s.OrdersPlaced > 0 {
		s.AvgLatencyMS = float64(c.latencyUS.Load()) / float64(s.OrdersPlaced) / 1000
	}
	return s
}
