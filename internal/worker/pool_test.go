package worker_test

import (
	"fmt"
	"sort"
	"testing"

	"github.com/Manirmaths/Naijaprep/internal/worker"
)

func TestPool_RunsEveryJob(t *testing.T) {
	p := worker.NewPool[int](3, 10)

	for i := 0; i < 10; i++ {
		n := i
		p.Submit(fmt.Sprintf("job-%d", n), func() int { return n * n })
	}

	done := make(chan []int)
	go func() {
		var outputs []int
		for r := range p.Results() {
			outputs = append(outputs, r.Output)
		}
		done <- outputs
	}()

	p.Close()
	outputs := <-done

	if len(outputs) != 10 {
		t.Fatalf("expected 10 results, got %d", len(outputs))
	}
	sort.Ints(outputs)
	if outputs[9] != 81 {
		t.Errorf("expected largest output 81, got %d", outputs[9])
	}
}

func TestPool_CloseIsIdempotent(t *testing.T) {
	p := worker.NewPool[string](1, 1)
	p.Submit("only", func() string { return "ok" })

	r := <-p.Results()
	if r.JobID != "only" || r.Output != "ok" {
		t.Errorf("unexpected result %+v", r)
	}

	p.Close()
	p.Close()

	if _, ok := <-p.Results(); ok {
		t.Error("expected results channel to be closed")
	}
}
