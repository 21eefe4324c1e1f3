package audio

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
)

// SampleRate é a taxa fixa do áudio de narração retornado pelo Gemini:
// PCM mono de 16 bits a 24 kHz.
const SampleRate = 24000

// DecodePCM decodifica o payload base64 de narração em amostras
// normalizadas no intervalo [-1.0, 1.0]. O payload é uma sequência de
// amostras int16 little-endian.
func DecodePCM(encoded string) ([]float32, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("base64 inválido: %w", err)
	}
	if len(raw)%2 != 0 {
		return nil, fmt.Errorf("payload PCM com %d bytes: esperava múltiplo de 2", len(raw))
	}

	samples := make([]float32, len(raw)/2)
	for i := range samples {
		sample := int16(binary.LittleEndian.Uint16(raw[2*i:]))
		samples[i] = float32(sample) / 32768.0
	}
	return samples, nil
}

// WAVFromPCM embala amostras PCM16 cruas em um contêiner WAV mono, o
// formato que o Telegram aceita como arquivo de áudio.
func WAVFromPCM(raw []byte, sampleRate int) []byte {
	const (
		numChannels   = 1
		bitsPerSample = 16
	)
	byteRate := sampleRate * numChannels * bitsPerSample / 8
	blockAlign := numChannels * bitsPerSample / 8

	header := make([]byte, 44)
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], uint32(36+len(raw)))
	copy(header[8:12], "WAVE")
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], 1) // PCM
	binary.LittleEndian.PutUint16(header[22:24], numChannels)
	binary.LittleEndian.PutUint32(header[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(header[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(header[34:36], bitsPerSample)
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], uint32(len(raw)))

	return append(header, raw...)
}

// DecodeWAV decodifica o payload base64 e devolve o áudio já embalado
// em WAV, pronto para envio.
func DecodeWAV(encoded string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("base64 inválido: %w", err)
	}
	if len(raw)%2 != 0 {
		return nil, fmt.Errorf("payload PCM com %d bytes: esperava múltiplo de 2", len(raw))
	}
	return WAVFromPCM(raw, SampleRate), nil
}
