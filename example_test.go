package smartpool_test

import (
	"fmt"
	"sync"
	"time"

	smartpool "github.com/wrenworks/go-smartpool"
)

// ExampleNew demonstrates basic pool usage: submit work, wait for it, shut
// down.
func ExampleNew() {
	pool, err := smartpool.New(smartpool.Options{
		MinWorkers: 2,
		MaxWorkers: 8,
	})
	if err != nil {
		fmt.Println("construction failed:", err)
		return
	}
	defer pool.Shutdown()

	var wg sync.WaitGroup
	wg.Add(1)
	pool.Post(func() {
		fmt.Println("hello from a worker")
		wg.Done()
	})
	wg.Wait()

	// Output: hello from a worker
}

// ExamplePool_PostDelayed demonstrates deferred submission.
func ExamplePool_PostDelayed() {
	pool, err := smartpool.New(smartpool.Options{
		MinWorkers: 1,
		MaxWorkers: 1,
	})
	if err != nil {
		fmt.Println("construction failed:", err)
		return
	}
	defer pool.Shutdown()

	done := make(chan struct{})
	pool.PostDelayed(func() {
		fmt.Println("ran after the delay")
		close(done)
	}, 10*time.Millisecond)
	<-done

	// Output: ran after the delay
}
