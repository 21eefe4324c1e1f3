package breathing

import (
	"sync"
	"testing"
	"time"
)

// phaseRecorder acumula as fases observadas por um Controller de teste.
type phaseRecorder struct {
	mu     sync.Mutex
	phases []Phase
}

func (r *phaseRecorder) record(p Phase) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.phases = append(r.phases, p)
}

func (r *phaseRecorder) snapshot() []Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Phase, len(r.phases))
	copy(out, r.phases)
	return out
}

func (r *phaseRecorder) waitLen(t *testing.T, n int, timeout time.Duration) []Phase {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		got := r.snapshot()
		if len(got) >= n {
			return got
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("esperava %d fases, obteve %d: %v", n, len(r.snapshot()), r.snapshot())
	return nil
}

func fastPattern(hold, holdPost time.Duration) Pattern {
	return Pattern{
		Key:      "teste",
		Name:     "Teste",
		Inhale:   30 * time.Millisecond,
		Hold:     hold,
		Exhale:   30 * time.Millisecond,
		HoldPost: holdPost,
	}
}

func TestControllerFullCycleOrder(t *testing.T) {
	rec := &phaseRecorder{}
	c := New(rec.record, nil)
	defer c.Stop()

	c.Start(fastPattern(30*time.Millisecond, 30*time.Millisecond))

	// Um ciclo completo mais o reinício: Inspirar, Segurar, Expirar,
	// Aguardar, Inspirar.
	got := rec.waitLen(t, 5, 2*time.Second)
	want := []Phase{PhaseInhale, PhaseHold, PhaseExhale, PhaseHoldPost, PhaseInhale}
	for i, phase := range want {
		if got[i] != phase {
			t.Fatalf("fase %d: esperava %s, obteve %s (sequência %v)", i, phase, got[i], got)
		}
	}
}

func TestControllerSkipsAbsentPhases(t *testing.T) {
	rec := &phaseRecorder{}
	c := New(rec.record, nil)
	defer c.Stop()

	c.Start(fastPattern(0, 0))

	got := rec.waitLen(t, 4, 2*time.Second)
	want := []Phase{PhaseInhale, PhaseExhale, PhaseInhale, PhaseExhale}
	for i, phase := range want {
		if got[i] != phase {
			t.Fatalf("fase %d: esperava %s, obteve %s (sequência %v)", i, phase, got[i], got)
		}
	}
}

func TestControllerStopCancelsPendingTransition(t *testing.T) {
	rec := &phaseRecorder{}
	c := New(rec.record, nil)

	c.Start(fastPattern(30*time.Millisecond, 0))
	if !c.Stop() {
		t.Fatal("Stop deveria retornar true com sessão ativa")
	}

	before := len(rec.snapshot())
	time.Sleep(150 * time.Millisecond)
	after := len(rec.snapshot())
	if after != before {
		t.Fatalf("houve transição de fase após Stop: %v", rec.snapshot())
	}
	if c.Active() {
		t.Fatal("sessão ainda ativa após Stop")
	}
}

func TestControllerStopWithoutSession(t *testing.T) {
	c := New(nil, nil)
	if c.Stop() {
		t.Fatal("Stop sem sessão deveria retornar false")
	}
	if c.Conclude() {
		t.Fatal("Conclude sem sessão deveria retornar false")
	}
}

func TestControllerConcludeCountsOnePause(t *testing.T) {
	var mu sync.Mutex
	pauses := 0
	c := New(nil, func() {
		mu.Lock()
		pauses++
		mu.Unlock()
	})

	c.Start(fastPattern(30*time.Millisecond, 30*time.Millisecond))
	time.Sleep(50 * time.Millisecond)
	if !c.Conclude() {
		t.Fatal("Conclude deveria retornar true com sessão ativa")
	}
	// Segundo Conclude não conta de novo.
	if c.Conclude() {
		t.Fatal("Conclude repetido deveria retornar false")
	}

	mu.Lock()
	defer mu.Unlock()
	if pauses != 1 {
		t.Fatalf("esperava 1 pausa registrada, obteve %d", pauses)
	}
}

func TestControllerSwitchReplacesSession(t *testing.T) {
	rec := &phaseRecorder{}
	c := New(rec.record, nil)
	defer c.Stop()

	first := fastPattern(200*time.Millisecond, 0)
	second := fastPattern(0, 0)
	second.Key = "segunda"

	c.Start(first)
	c.Start(second)

	pattern, active := c.Pattern()
	if !active || pattern.Key != "segunda" {
		t.Fatalf("esperava sessão ativa com a segunda técnica, obteve %q (ativa=%v)", pattern.Key, active)
	}

	// A segunda técnica não tem Segurar; se o timer da primeira tivesse
	// sobrevivido, uma fase Segurar apareceria aqui.
	got := rec.waitLen(t, 4, 2*time.Second)
	for _, phase := range got[1:] {
		if phase == PhaseHold {
			t.Fatalf("transição da sessão substituída ainda disparou: %v", got)
		}
	}
}

func TestControllerPhaseAccessor(t *testing.T) {
	c := New(nil, nil)
	if _, active := c.Phase(); active {
		t.Fatal("controlador novo não deveria ter sessão ativa")
	}

	c.Start(fastPattern(time.Minute, 0))
	defer c.Stop()

	phase, active := c.Phase()
	if !active || phase != PhaseInhale {
		t.Fatalf("esperava Inspirar ativo, obteve %s (ativa=%v)", phase, active)
	}
}

func TestPatternValidate(t *testing.T) {
	cases := []struct {
		name    string
		pattern Pattern
		wantErr bool
	}{
		{"válida completa", fastPattern(time.Second, time.Second), false},
		{"válida mínima", fastPattern(0, 0), false},
		{"sem inspiração", Pattern{Key: "x", Exhale: time.Second}, true},
		{"sem expiração", Pattern{Key: "x", Inhale: time.Second}, true},
		{"pausa negativa", Pattern{Key: "x", Inhale: time.Second, Exhale: time.Second, Hold: -time.Second}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.pattern.Validate()
			if tc.wantErr && err == nil {
				t.Fatal("esperava erro de validação")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("erro inesperado: %v", err)
			}
		})
	}
}

func TestDefaultPatternsAreValid(t *testing.T) {
	patterns := DefaultPatterns()
	if len(patterns) != 3 {
		t.Fatalf("esperava 3 técnicas embutidas, obteve %d", len(patterns))
	}
	for _, p := range patterns {
		if err := p.Validate(); err != nil {
			t.Errorf("técnica embutida inválida: %v", err)
		}
	}
}
