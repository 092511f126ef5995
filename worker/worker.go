// Package worker provides a shared goroutine pool for CPU-bound work, sized
// to the machine.
package worker

import (
	"runtime"
	"sync"
)

var workerQueue = make(chan func(), runtime.NumCPU())

func init() {
	for i := 0; i < runtime.NumCPU(); i++ {
		go worker()
	}
}

func worker() {
	for f := range workerQueue {
		f()
	}
}

// Submit schedules f on the pool. To be used by a function that may be CPU
// intensive.
func Submit(f func()) {
	workerQueue <- f
}

// SubmitAndWait runs every function on the pool and blocks until all of them
// have finished.
func SubmitAndWait(fns ...func()) {
	var wg sync.WaitGroup
	wg.Add(len(fns))
	for _, f := range fns {
		f := f
		Submit(func() {
			defer wg.Done()
			f()
		})
	}
	wg.Wait()
}
