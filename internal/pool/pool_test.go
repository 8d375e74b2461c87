package pool

import (
	"context"
	"errors"
	"testing"
)

func TestRunPreservesOrder(t *testing.T) {
	jobs := make([]Job, 8)
	for i := range jobs {
		i := i
		jobs[i] = Job{ID: "job", Run: func(ctx context.Context) (any, error) {
			return i * i, nil
		}}
	}
	results, err := Run(context.Background(), jobs, true)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	for i, r := range results {
		if r.Value.(int) != i*i {
			t.Errorf("result[%d] = %v, want %d", i, r.Value, i*i)
		}
	}
}

func TestRunSerializesBelowThreshold(t *testing.T) {
	jobs := []Job{
		{ID: "a", Run: func(ctx context.Context) (any, error) { return 1, nil }},
	}
	results, err := Run(context.Background(), jobs, true)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if results[0].Value.(int) != 1 {
		t.Fatalf("got %v", results[0].Value)
	}
}

func TestRunPropagatesFirstError(t *testing.T) {
	wantErr := errors.New("boom")
	jobs := []Job{
		{ID: "a", Run: func(ctx context.Context) (any, error) { return nil, wantErr }},
		{ID: "b", Run: func(ctx context.Context) (any, error) { return 2, nil }},
	}
	_, err := Run(context.Background(), jobs, false)
	if !errors.Is(err, wantErr) {
		t.Fatalf("got %v, want %v", err, wantErr)
	}
}
