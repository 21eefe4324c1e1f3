package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	chatModel      = "gemini-3-pro-preview"
	ttsModel       = "gemini-2.5-flash-preview-tts"
	ttsVoice       = "Kore"
)

// systemInstruction define a persona "Gizele Anastacio" usada em toda a
// conversa.
const systemInstruction = `Você é a "Gizele Anastacio", uma assistente de inteligência artificial baseada na expertise da Terapeuta Comportamental de Emagrecimento Gizele Anastacio. Seu objetivo é oferecer suporte emocional e comportamental contínuo para clientes em processo de emagrecimento saudável.

Sua filosofia baseia-se em:
1. Terapia Cognitivo-Comportamental (TCC): Identificar pensamentos automáticos e crenças limitantes sobre comida e corpo.
2. Mindful Eating: Incentivar a atenção plena, percepção de sabores e sinais de saciedade.
3. Não-Prescrição: Você NÃO passa dietas ou planos alimentares. Se o usuário pedir o que comer, você foca em "como comer" e orienta a seguir as recomendações do nutricionista ou médico.

Diretrizes de Resposta:
- Identidade: Sempre fale como Gizele Anastacio, sua terapeuta dedicada.
- Tom de Voz: Empático, encorajador, clínico mas acessível, e livre de julgamentos. Use um português acolhedor e profissional.
- Foco no Comportamento: Se o cliente relatar um "deslize", não foque no erro, mas no gatilho (Ex: "O que estava acontecendo no seu dia que te levou a comer isso?").
- Escuta Ativa: Use frases como "Eu entendo que isso seja difícil", "Parece que você está se sentindo pressionado(a)".
- Alerta de Segurança: Se detectar falas sugestivas de transtornos alimentares graves ou automutilação, oriente buscar ajuda profissional imediatamente.

Sempre termine as interações curtas com uma pergunta reflexiva para manter o engajamento do cliente.`

const narrationPrompt = "Aja como a Gizele Anastacio, uma terapeuta calma. Narre as seguintes instruções de forma pausada e acolhedora: "

// ErrBusy indica que já existe uma requisição de chat em andamento.
var ErrBusy = errors.New("já existe uma mensagem em processamento")

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType,omitempty"`
	Data     string `json:"data,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type speechConfig struct {
	VoiceConfig struct {
		PrebuiltVoiceConfig struct {
			VoiceName string `json:"voiceName"`
		} `json:"prebuiltVoiceConfig"`
	} `json:"voiceConfig"`
}

type generationConfig struct {
	ResponseModalities []string      `json:"responseModalities,omitempty"`
	SpeechConfig       *speechConfig `json:"speechConfig,omitempty"`
}

type generateRequest struct {
	SystemInstruction *content          `json:"systemInstruction,omitempty"`
	Contents          []content         `json:"contents"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Client conversa com a API Gemini: chat com histórico de sessão e
// síntese de fala para narração.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client

	mu      sync.Mutex
	history []content
	busy    bool
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

// SendMessage envia o texto do usuário dentro do histórico da conversa e
// devolve a resposta da Gizele. Apenas uma mensagem por vez: chamadas
// concorrentes recebem ErrBusy em vez de entrar em fila.
func (c *Client) SendMessage(ctx context.Context, text string) (string, error) {
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return "", ErrBusy
	}
	c.busy = true
	contents := append(append([]content(nil), c.history...), content{
		Role:  "user",
		Parts: []part{{Text: text}},
	})
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.busy = false
		c.mu.Unlock()
	}()

	req := generateRequest{
		SystemInstruction: &content{Parts: []part{{Text: systemInstruction}}},
		Contents:          contents,
	}

	resp, err := c.generate(ctx, chatModel, req)
	if err != nil {
		return "", err
	}

	reply := firstText(resp)
	if reply == "" {
		return "", fmt.Errorf("resposta sem texto")
	}

	c.mu.Lock()
	c.history = append(c.history,
		content{Role: "user", Parts: []part{{Text: text}}},
		content{Role: "model", Parts: []part{{Text: reply}}},
	)
	c.mu.Unlock()

	return reply, nil
}

// GenerateSpeech sintetiza a narração do texto de guia e devolve o PCM
// em base64. Retorno vazio sem erro significa que não há áudio.
func (c *Client) GenerateSpeech(ctx context.Context, text string) (string, error) {
	cfg := &generationConfig{ResponseModalities: []string{"AUDIO"}}
	cfg.SpeechConfig = &speechConfig{}
	cfg.SpeechConfig.VoiceConfig.PrebuiltVoiceConfig.VoiceName = ttsVoice

	req := generateRequest{
		Contents: []content{{
			Parts: []part{{Text: narrationPrompt + text}},
		}},
		GenerationConfig: cfg,
	}

	resp, err := c.generate(ctx, ttsModel, req)
	if err != nil {
		return "", err
	}
	return firstInlineData(resp), nil
}

// ResetHistory descarta o histórico da conversa atual.
func (c *Client) ResetHistory() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.history = nil
}

func (c *Client) generate(ctx context.Context, model string, reqBody generateRequest) (*generateResponse, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY não definido")
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("erro ao montar requisição: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("erro ao criar requisição: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("erro de conexão com a API: %w", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler resposta: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		var apiErr apiError
		if err := json.Unmarshal(respBody, &apiErr); err == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("API retornou %d: %s", httpResp.StatusCode, apiErr.Error.Message)
		}
		return nil, fmt.Errorf("API retornou %d", httpResp.StatusCode)
	}

	var resp generateResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("erro ao decodificar resposta: %w", err)
	}
	return &resp, nil
}

func firstText(resp *generateResponse) string {
	for _, cand := range resp.Candidates {
		for _, p := range cand.Content.Parts {
			if p.Text != "" {
				return p.Text
			}
		}
	}
	return ""
}

func firstInlineData(resp *generateResponse) string {
	for _, cand := range resp.Candidates {
		for _, p := range cand.Content.Parts {
			if p.InlineData != nil && p.InlineData.Data != "" {
				return p.InlineData.Data
			}
		}
	}
	return ""
}
