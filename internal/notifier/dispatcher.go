package notifier

import (
	"log"
	"sync"
)

// Job is one unit of notification work, typically a closure around a mail send.
type Job func() error

// Runner schedules a job for asynchronous execution. Satisfied by Dispatcher;
// tests substitute a synchronous runner.
type Runner interface {
	Dispatch(job Job)
}

// Dispatcher runs notification jobs on a bounded worker pool so that the
// mutation that scheduled them returns without waiting on email delivery.
// Delivery is best-effort: job errors and panics are logged and dropped,
// never surfaced to the caller, and never retried.
type Dispatcher struct {
	jobs chan Job
	wg   sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// NewDispatcher starts workers goroutines consuming a queue of queueSize jobs.
func NewDispatcher(workers, queueSize int) *Dispatcher {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}

	d := &Dispatcher{jobs: make(chan Job, queueSize)}
	d.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go d.worker()
	}
	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for job := range d.jobs {
		d.run(job)
	}
}

// run executes one job, containing panics and logging failures. Errors stop
// at this boundary so a failed send can never roll back the state change
// that triggered it.
func (d *Dispatcher) run(job Job) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("notifier: job panicked: %v", r)
		}
	}()

	if err := job(); err != nil {
		log.Printf("notifier: job failed: %v", err)
	}
}

// Dispatch enqueues a job and returns immediately. When the queue is full or
// the dispatcher is closed the job is dropped with a log line; callers must
// not depend on delivery.
func (d *Dispatcher) Dispatch(job Job) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		log.Printf("notifier: dispatcher closed, dropping job")
		return
	}
	select {
	case d.jobs <- job:
	default:
		log.Printf("notifier: queue full, dropping job")
	}
}

// Close stops accepting jobs, drains the queue and waits for in-flight jobs.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.jobs)
	d.mu.Unlock()

	d.wg.Wait()
}
