package audio

import (
	"context"
	"log"
	"sync"
)

// Synthesizer converte texto de guia em áudio PCM codificado em base64.
// Retorno vazio sem erro significa "sem áudio, pular narração".
type Synthesizer interface {
	GenerateSpeech(ctx context.Context, text string) (string, error)
}

// VoiceSender entrega o áudio de narração ao usuário.
type VoiceSender interface {
	SendVoice(wav []byte, caption string) error
}

// Narrator produz a narração falada das sessões de respiração. No
// máximo uma geração de áudio fica em andamento; um pedido novo durante
// uma geração é descartado. Falhas de síntese ou decodificação são
// silenciosas: a sessão segue sem áudio.
type Narrator struct {
	mu       sync.Mutex
	synth    Synthesizer
	sender   VoiceSender
	muted    bool
	inFlight bool
}

func NewNarrator(synth Synthesizer, sender VoiceSender) *Narrator {
	return &Narrator{synth: synth, sender: sender}
}

// ToggleMute inverte o mudo e devolve o estado novo.
func (n *Narrator) ToggleMute() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.muted = !n.muted
	return n.muted
}

func (n *Narrator) Muted() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.muted
}

// PlayGuide sintetiza e envia a narração do texto de guia. Não bloqueia:
// a geração corre em goroutine própria.
func (n *Narrator) PlayGuide(ctx context.Context, text, caption string) {
	n.mu.Lock()
	if n.muted || n.inFlight {
		n.mu.Unlock()
		return
	}
	n.inFlight = true
	n.mu.Unlock()

	go func() {
		defer func() {
			n.mu.Lock()
			n.inFlight = false
			n.mu.Unlock()
		}()

		encoded, err := n.synth.GenerateSpeech(ctx, text)
		if err != nil {
			log.Printf("⚠️ Erro ao gerar narração: %v", err)
			return
		}
		if encoded == "" {
			return
		}

		wav, err := DecodeWAV(encoded)
		if err != nil {
			log.Printf("⚠️ Erro ao decodificar narração: %v", err)
			return
		}

		if err := n.sender.SendVoice(wav, caption); err != nil {
			log.Printf("⚠️ Erro ao enviar narração: %v", err)
		}
	}()
}
