package breathing

import (
	"sync"
	"time"
)

// Phase representa a fase atual do ciclo de respiração.
type Phase string

const (
	PhaseInhale   Phase = "Inspirar"
	PhaseHold     Phase = "Segurar"
	PhaseExhale   Phase = "Expirar"
	PhaseHoldPost Phase = "Aguardar"
)

// Controller conduz o ciclo temporizado de uma sessão de respiração.
// A sessão entra em Inspirar ao iniciar e alterna entre as fases da
// técnica indefinidamente até ser parada ou concluída. Iniciar uma nova
// técnica com uma sessão ativa encerra a anterior antes (nunca há dois
// timers pendentes).
type Controller struct {
	mu         sync.Mutex
	pattern    Pattern
	phase      Phase
	timer      *time.Timer
	generation uint64
	active     bool

	onPhase    func(Phase)
	onConclude func()
}

// New cria um controlador parado. onPhase é chamado a cada entrada de
// fase, inclusive no Inspirar inicial; onConclude é chamado exatamente
// uma vez por Conclude. Ambos podem ser nil e são invocados fora do lock.
func New(onPhase func(Phase), onConclude func()) *Controller {
	return &Controller{
		onPhase:    onPhase,
		onConclude: onConclude,
	}
}

// Start inicia uma sessão com a técnica informada, encerrando a sessão
// anterior se houver.
func (c *Controller) Start(pattern Pattern) {
	c.mu.Lock()
	c.cancelTimerLocked()
	c.generation++
	gen := c.generation
	c.pattern = pattern
	c.phase = PhaseInhale
	c.active = true
	c.timer = time.AfterFunc(pattern.Inhale, func() { c.advance(gen) })
	notify := c.onPhase
	c.mu.Unlock()

	if notify != nil {
		notify(PhaseInhale)
	}
}

// Stop encerra a sessão ativa sem registrar pausa concluída. Retorna
// false se não havia sessão ativa.
func (c *Controller) Stop() bool {
	c.mu.Lock()
	if !c.active {
		c.mu.Unlock()
		return false
	}
	c.stopLocked()
	c.mu.Unlock()
	return true
}

// Conclude encerra a sessão ativa e registra exatamente uma pausa
// concluída via callback. Retorna false se não havia sessão ativa.
func (c *Controller) Conclude() bool {
	c.mu.Lock()
	if !c.active {
		c.mu.Unlock()
		return false
	}
	c.stopLocked()
	done := c.onConclude
	c.mu.Unlock()

	if done != nil {
		done()
	}
	return true
}

// Phase retorna a fase atual e se há sessão ativa.
func (c *Controller) Phase() (Phase, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase, c.active
}

// Active indica se há sessão em andamento.
func (c *Controller) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// Pattern retorna a técnica da sessão ativa.
func (c *Controller) Pattern() (Pattern, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pattern, c.active
}

// advance é o callback do timer: transiciona para a próxima fase e
// agenda a seguinte. O contador de geração descarta callbacks de uma
// sessão já substituída ou encerrada.
func (c *Controller) advance(gen uint64) {
	c.mu.Lock()
	if !c.active || gen != c.generation {
		c.mu.Unlock()
		return
	}

	next, wait := nextPhase(c.pattern, c.phase)
	c.phase = next
	c.timer = time.AfterFunc(wait, func() { c.advance(gen) })
	notify := c.onPhase
	c.mu.Unlock()

	if notify != nil {
		notify(next)
	}
}

func (c *Controller) stopLocked() {
	c.cancelTimerLocked()
	c.generation++
	c.active = false
}

func (c *Controller) cancelTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// nextPhase devolve a fase seguinte do ciclo e sua duração. Fases
// opcionais com duração zero são puladas.
func nextPhase(p Pattern, current Phase) (Phase, time.Duration) {
	switch current {
	case PhaseInhale:
		if p.Hold > 0 {
			return PhaseHold, p.Hold
		}
		return PhaseExhale, p.Exhale
	case PhaseHold:
		return PhaseExhale, p.Exhale
	case PhaseExhale:
		if p.HoldPost > 0 {
			return PhaseHoldPost, p.HoldPost
		}
		return PhaseInhale, p.Inhale
	default: // PhaseHoldPost
		return PhaseInhale, p.Inhale
	}
}
