package cache

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"decisionnet/internal/bayes"
	"decisionnet/internal/dataset"
)

func tinyNetwork(t *testing.T) *bayes.Network {
	t.Helper()
	ds, err := dataset.New([]string{"X"}, [][]int{{0}, {1}})
	if err != nil {
		t.Fatal(err)
	}
	net, err := bayes.New(ds, bayes.Structure{{}})
	if err != nil {
		t.Fatal(err)
	}
	return net
}

func TestGetOrCompute_ComputesOncePerKey(t *testing.T) {
	c := NewInMemory(8)
	net := tinyNetwork(t)

	var calls atomic.Int64
	compute := func() (*bayes.Network, error) {
		calls.Add(1)
		return net, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := c.GetOrCompute("digraph { X }", compute)
			if err != nil {
				t.Error(err)
				return
			}
			if got != net {
				t.Error("cache returned a different network")
			}
		}()
	}
	wg.Wait()

	if n := calls.Load(); n != 1 {
		t.Fatalf("expected 1 compute call, got %d", n)
	}
}

func TestGetOrCompute_ErrorsAreNotCached(t *testing.T) {
	c := NewInMemory(8)
	net := tinyNetwork(t)

	boom := errors.New("boom")
	calls := 0
	compute := func() (*bayes.Network, error) {
		calls++
		if calls == 1 {
			return nil, boom
		}
		return net, nil
	}

	if _, err := c.GetOrCompute("k", compute); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	got, err := c.GetOrCompute("k", compute)
	if err != nil {
		t.Fatal(err)
	}
	if got != net {
		t.Fatalf("expected the recomputed network")
	}
	if calls != 2 {
		t.Fatalf("expected 2 compute calls, got %d", calls)
	}
}

func TestGetOrCompute_RespectsMaxItems(t *testing.T) {
	c := NewInMemory(1)
	net := tinyNetwork(t)

	calls := 0
	compute := func() (*bayes.Network, error) {
		calls++
		return net, nil
	}

	if _, err := c.GetOrCompute("a", compute); err != nil {
		t.Fatal(err)
	}
	if _, err := c.GetOrCompute("b", compute); err != nil {
		t.Fatal(err)
	}
	// "b" did not fit, so it is computed again.
	if _, err := c.GetOrCompute("b", compute); err != nil {
		t.Fatal(err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 compute calls, got %d", calls)
	}
	// "a" is still cached.
	if _, err := c.GetOrCompute("a", compute); err != nil {
		t.Fatal(err)
	}
	if calls != 3 {
		t.Fatalf("expected cached hit for a, got %d calls", calls)
	}
}
