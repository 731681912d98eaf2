package storable

import (
	"testing"
)

// Benchmark tests for the cell primitives.
// Target performance:
// - Get: < 20 ns
// - Set (10 subscribers): < 300 ns
// - Derive chain of 3: < 1 µs per propagation

func BenchmarkGet(b *testing.B) {
	s := New(42)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = s.Get()
	}
}

func BenchmarkSetNoSubscribers(b *testing.B) {
	s := New(0)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		s.Set(i)
	}
}

func BenchmarkSet1Subscriber(b *testing.B) {
	s := New(0)
	s.Subscribe(func(int, bool) {})
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		s.Set(i)
	}
}

func BenchmarkSet10Subscribers(b *testing.B) {
	s := New(0)

	for i := 0; i < 10; i++ {
		s.Subscribe(func(int, bool) {})
	}
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		s.Set(i)
	}
}

func BenchmarkSet100Subscribers(b *testing.B) {
	s := New(0)

	for i := 0; i < 100; i++ {
		s.Subscribe(func(int, bool) {})
	}
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		s.Set(i)
	}
}

func BenchmarkSetSuppressed(b *testing.B) {
	s := New(42)
	s.Subscribe(func(int, bool) {})
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		s.Set(42)
	}
}

func BenchmarkUpdate(b *testing.B) {
	s := New(0)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		s.Update(func(n int) int { return n + 1 })
	}
}

func BenchmarkSubscribeDetach(b *testing.B) {
	s := New(0)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		detach := s.Subscribe(func(int, bool) {})
		detach()
	}
}

func BenchmarkDeriveChain3(b *testing.B) {
	a := New(0)
	c := Derive(Cell[int](a), func(n int) int { return n * 2 })
	d := Derive(Cell[int](c), func(n int) int { return n * 2 })
	e := Derive(Cell[int](d), func(n int) int { return n * 2 })
	defer e.Stop()
	defer d.Stop()
	defer c.Stop()

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		a.Set(i)
		_ = e.Get()
	}
}

func BenchmarkDeriveManyRecompute(b *testing.B) {
	first := New("John")
	last := New("Doe")
	full := DeriveMany(func(values []any) string {
		return values[0].(string) + " " + values[1].(string)
	}, first, last)
	defer full.Stop()

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if i%2 == 0 {
			first.Set("Jane")
		} else {
			first.Set("John")
		}
	}
}

func BenchmarkGroupSubscribe10Sources(b *testing.B) {
	cells := make([]*Storable[int], 10)
	sources := make([]any, 10)
	for i := range cells {
		cells[i] = New(0)
		sources[i] = cells[i]
	}

	detach := GroupSubscribe(func(int) {}, sources...)
	defer detach()

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		for j, c := range cells {
			c.Set(i*10 + j + 1)
		}
	}
}

func BenchmarkIntCellInc(b *testing.B) {
	s := NewInt(0)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		s.Inc()
	}
}

// BenchmarkRealisticForm simulates a small form model:
// five cells, three derived values, one group watcher.
func BenchmarkRealisticForm(b *testing.B) {
	firstName := New("John")
	lastName := New("Doe")
	age := New(30)
	email := New("john@example.com")
	active := NewBool(true)

	fullName := DeriveMany(func(values []any) string {
		return values[0].(string) + " " + values[1].(string)
	}, firstName, lastName)
	defer fullName.Stop()

	isAdult := Derive(Cell[int](age), func(n int) bool { return n >= 18 })
	defer isAdult.Stop()

	canContact := DeriveMany(func(values []any) bool {
		return values[0].(bool) && len(values[1].(string)) > 0
	}, active, email)
	defer canContact.Stop()

	detach := GroupSubscribe(func(int) {}, fullName, isAdult, canContact)
	defer detach()

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if i%2 == 0 {
			firstName.Set("Jane")
			lastName.Set("Smith")
			age.Set(25)
		} else {
			firstName.Set("John")
			lastName.Set("Doe")
			age.Set(30)
		}
		active.Toggle()

		_ = fullName.Get()
		_ = isAdult.Get()
		_ = canContact.Get()
	}
}
