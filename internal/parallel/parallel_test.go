package parallel

import (
	"errors"
	"sync/atomic"
	"testing"
)

func TestFor(t *testing.T) {
	cfg := DefaultConfig()

	var counter int64
	n := 1000

	For(n, func(_ int) {
		atomic.AddInt64(&counter, 1)
	}, cfg)

	if counter != int64(n) {
		t.Errorf("Expected %d, got %d", n, counter)
	}
}

func TestFor_ForcedWorkers(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 4, MinChunkSize: 1}

	seen := make([]int32, 37)
	For(len(seen), func(i int) {
		atomic.AddInt32(&seen[i], 1)
	}, cfg)

	for i, v := range seen {
		if v != 1 {
			t.Errorf("index %d visited %d times", i, v)
		}
	}
}

func TestFor_Sequential(t *testing.T) {
	cfg := Sequential()

	var order []int
	For(5, func(i int) {
		order = append(order, i)
	}, cfg)

	for i, v := range order {
		if v != i {
			t.Fatalf("sequential order broken: %v", order)
		}
	}
}

func TestFor_SmallChunk(t *testing.T) {
	// Small work units fall back to sequential.
	cfg := DefaultConfig()

	var counter int64
	n := cfg.MinChunkSize - 1

	For(n, func(_ int) {
		atomic.AddInt64(&counter, 1)
	}, cfg)

	if counter != int64(n) {
		t.Errorf("Expected %d, got %d", n, counter)
	}
}

func TestForErr(t *testing.T) {
	errBad := errors.New("bad index")

	for name, cfg := range map[string]Config{
		"sequential": Sequential(),
		"parallel":   {Enabled: true, NumWorkers: 3, MinChunkSize: 1},
	} {
		t.Run(name, func(t *testing.T) {
			var counter int64
			err := ForErr(50, func(_ int) error {
				atomic.AddInt64(&counter, 1)
				return nil
			}, cfg)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if counter != 50 {
				t.Errorf("Expected 50, got %d", counter)
			}

			err = ForErr(50, func(i int) error {
				if i == 17 {
					return errBad
				}
				return nil
			}, cfg)
			if !errors.Is(err, errBad) {
				t.Errorf("ForErr error = %v, want %v", err, errBad)
			}
		})
	}
}

func TestDefaultConfig_EnvOverride(t *testing.T) {
	t.Setenv("MLLOSS_NUM_THREADS", "1")
	cfg := DefaultConfig()
	if cfg.NumWorkers != 1 || cfg.Enabled {
		t.Errorf("MLLOSS_NUM_THREADS=1 should disable parallelism, got %+v", cfg)
	}
}

func BenchmarkFor(b *testing.B) {
	cfg := DefaultConfig()
	n := 10000

	b.Run("parallel", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			var sum int64
			For(n, func(i int) {
				atomic.AddInt64(&sum, int64(i))
			}, cfg)
		}
	})

	b.Run("sequential", func(b *testing.B) {
		cfgSeq := cfg
		cfgSeq.Enabled = false
		for i := 0; i < b.N; i++ {
			var sum int64
			For(n, func(i int) {
				atomic.AddInt64(&sum, int64(i))
			}, cfgSeq)
		}
	})
}
