// Copyright 2025 Zunetech
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package model

import "encoding/json"

// PersonaProfile is the strategist identity that conditions every generative
// call: the system instruction sets the voice, and the context memory carries
// the audience avatar, performance history, and editing rules the model is
// expected to reason over.
type PersonaProfile struct {
	Project           string         `json:"project"`
	Version           string         `json:"version"`
	SystemInstruction string         `json:"system_instruction"`
	ContextMemory     map[string]any `json:"context_memory"`
}

// MemoryDump serializes the context memory for embedding in a prompt. Object
// keys marshal in sorted order, so the same memory always yields the same
// prompt text.
func (p *PersonaProfile) MemoryDump() string {
	if p == nil || p.ContextMemory == nil {
		return "{}"
	}
	b, err := json.MarshalIndent(p.ContextMemory, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(b)
}

// Clone returns a copy of the persona with an independently serialized
// context memory, so callers can mutate their copy freely.
func (p *PersonaProfile) Clone() *PersonaProfile {
	out := *p
	if p.ContextMemory != nil {
		// Round-trip through JSON to deep-copy the nested structure.
		b, err := json.Marshal(p.ContextMemory)
		if err == nil {
			var m map[string]any
			if json.Unmarshal(b, &m) == nil {
				out.ContextMemory = m
			}
		}
	}
	return &out
}

// DefaultPersona returns the factory profile for the Zunetech project: the
// "Social GOD" strategist persona with its target-audience avatar, the win
// and fail history of past videos, the published-content log, and the CapCut
// editing rules. Resetting the stored persona restores this profile.
func DefaultPersona() *PersonaProfile {
	return &PersonaProfile{
		Project: "Zunetech - Dominação Digital",
		Version: "2.1",
		SystemInstruction: "Você é o 'Social GOD', um estrategista lendário de redes sociais com 50M+ seguidores. " +
			"Você age como um coach de elite para o perfil 'Zunetech'. \n\n" +
			"SUA PERSONALIDADE:\n" +
			"- Tom de voz: Autoritário, confiante, levemente arrogante ('Eu vi o código'), mas extremamente técnico e útil.\n" +
			"- Foco: Crescimento exponencial, retenção e gatilhos psicológicos.\n" +
			"- Você não dá dicas genéricas. Você dá ordens de batalha.\n\n" +
			"O PROJETO ZUNETECH:\n" +
			"- Nicho: Tecnologia para classe C/D (Brasil), focado em 'vantagem', 'hacks', 'economia' e 'curiosidade'.\n" +
			"- Avatar Alvo: 'Lucas' (Brasileiro, 18-34 anos, usa Android intermediário, quer status, odeia travamento e bateria ruim).\n" +
			"- Estilo de Vídeo: Ganchos visuais nos primeiros 3s (Veo/Prints), edição dinâmica no CapCut, sem 'Talking Head' estático no início.\n\n" +
			"REGRAS DE OURO:\n" +
			"1. Nunca comece um vídeo com 'Oi gente'. Comece com o problema ou a promessa.\n" +
			"2. Use gatilhos de Medo, Curiosidade e Ganância.\n" +
			"3. Se o vídeo é autoral, a edição deve ter cortes a cada 2s e zoom in/out.\n" +
			"4. Priorize tutoriais de Android, WhatsApp e funções escondidas.",
		ContextMemory: map[string]any{
			"avatar_profile": map[string]any{
				"name":         "Lucas (O Brasileiro Conectado)",
				"demographics": "Classe C/D, 18-34 anos, Usuário de Samsung linha A / Motorola / Xiaomi.",
				"psychographics": map[string]any{
					"desires":  "Parecer ter um celular melhor (iPhone), economizar dinheiro, não ser passado para trás, descobrir segredos.",
					"fears":    "Bateria viciada, memória cheia, celular travando, ser excluído do grupo, perder o WhatsApp.",
					"triggers": "Gambiarra inteligente, Vingança contra preços altos, Funções secretas.",
				},
			},
			"performance_history": map[string]any{
				"wins": []any{
					"Remix Samsung vs iPhone Zoom (17.8k views) - Gatilho: Guerra de Marcas/Visual.",
					"Sol Artificial da China (5.5k views) - Gatilho: Curiosidade Extrema/Medo.",
				},
				"fails": []any{
					"Dicas de Sites de Produtividade (Gamma App, DNS v1) - Motivo: Intro falada lenta, tema 'trabalho', falta de gancho visual imediato.",
				},
				"learned_lessons": []any{
					"Não aparecer falando nos primeiros 3 segundos.",
					"Usar B-Rolls, Prints de Notícia ou Animações Veo no gancho.",
					"Focar em Hardware e WhatsApp > Focar em Sites de PC.",
				},
			},
			"content_log_scripts": []any{
				map[string]any{"id": "001", "title": "Photopea (Photoshop Grátis)", "status": "Published"},
				map[string]any{"id": "002", "title": "TinyWow (PDFs/Utilidade)", "status": "Published"},
				map[string]any{"id": "003", "title": "Gamma App v1 (Slides IA)", "status": "Published - Low Performance"},
				map[string]any{"id": "004", "title": "Cleanup.pictures (Borracha Mágica)", "status": "Published"},
				map[string]any{"id": "005", "title": "Palette.fm (Colorir Fotos Antigas)", "status": "Published"},
				map[string]any{"id": "006", "title": "Ouvir Áudio Escondido (WhatsApp)", "status": "Published"},
				map[string]any{"id": "007", "title": "Sol Artificial China (News)", "status": "Published - High Performance"},
				map[string]any{"id": "008", "title": "SnackPrompt (ChatGPT Turbo)", "status": "Published"},
				map[string]any{"id": "009", "title": "Xiaomi 17 vs iPhone 17 (Batalha)", "status": "Scripted"},
				map[string]any{"id": "010", "title": "Senha Wi-Fi (QR Code)", "status": "Scripted"},
				map[string]any{"id": "011", "title": "WhatsApp Parando 2026 (News)", "status": "Scripted - High Priority"},
				map[string]any{"id": "012", "title": "Android Turbinado (Escala Animação)", "status": "Scripted"},
				map[string]any{"id": "013", "title": "Matador de Anúncios (DNS Adguard)", "status": "Scripted"},
				map[string]any{"id": "014", "title": "Porto Sujo (Falso Defeito)", "status": "Scripted"},
				map[string]any{"id": "015", "title": "Status WhatsApp 4K (HD)", "status": "Scripted"},
			},
			"capcut_technical_rules": []any{
				"Zoom Digital de 10-15% a cada corte de fala.",
				"Legendas dinâmicas (Spring/Typewriter) com cores destaque (Amarelo/Verde).",
				"Remoção total de silêncios (Auto Cut).",
				"Uso de Trilhas Trending em volume baixo (10-15%).",
			},
		},
	}
}
