package concepts

import (
	"context"
	"errors"
	"testing"
)

// countingExpander records how many times Expand is invoked.
type countingExpander struct {
	calls  int
	result []string
	err    error
}

func (c *countingExpander) Expand(_ context.Context, _ []string, _ int, _ float64) ([]string, error) {
	c.calls++
	return c.result, c.err
}

func TestCachedExpanderHit(t *testing.T) {
	inner := &countingExpander{result: []string{"puppy", "canine"}}
	cached, err := NewCachedExpander(inner, 8)
	if err != nil {
		t.Fatalf("NewCachedExpander() error = %v", err)
	}

	for i := 0; i < 3; i++ {
		got, err := cached.Expand(context.Background(), []string{"dog"}, 15, 0.6)
		if err != nil {
			t.Fatalf("Expand() error = %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("Expand() = %v", got)
		}
	}
	if inner.calls != 1 {
		t.Errorf("inner called %d times, want 1", inner.calls)
	}
}

func TestCachedExpanderKeyIncludesParams(t *testing.T) {
	inner := &countingExpander{result: []string{"x"}}
	cached, err := NewCachedExpander(inner, 8)
	if err != nil {
		t.Fatalf("NewCachedExpander() error = %v", err)
	}

	_, _ = cached.Expand(context.Background(), []string{"dog"}, 15, 0.6)
	_, _ = cached.Expand(context.Background(), []string{"dog"}, 10, 0.6)
	_, _ = cached.Expand(context.Background(), []string{"dog"}, 15, 0.8)

	if inner.calls != 3 {
		t.Errorf("inner called %d times, want 3 distinct keys", inner.calls)
	}
}

func TestCachedExpanderCaseInsensitiveKey(t *testing.T) {
	inner := &countingExpander{result: []string{"x"}}
	cached, _ := NewCachedExpander(inner, 8)

	_, _ = cached.Expand(context.Background(), []string{"Dog"}, 15, 0.6)
	_, _ = cached.Expand(context.Background(), []string{"dog"}, 15, 0.6)

	if inner.calls != 1 {
		t.Errorf("inner called %d times, want 1 (case-insensitive key)", inner.calls)
	}
}

func TestCachedExpanderErrorsNotCached(t *testing.T) {
	inner := &countingExpander{err: errors.New("upstream down")}
	cached, _ := NewCachedExpander(inner, 8)

	if _, err := cached.Expand(context.Background(), []string{"dog"}, 15, 0.6); err == nil {
		t.Fatal("Expand() expected error")
	}
	if _, err := cached.Expand(context.Background(), []string{"dog"}, 15, 0.6); err == nil {
		t.Fatal("Expand() expected error on retry")
	}
	if inner.calls != 2 {
		t.Errorf("inner called %d times, want 2 (errors not cached)", inner.calls)
	}
}
