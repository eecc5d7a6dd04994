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

// Package model defines the data structures for the application. This file
// provides factory functions for hardcoded example instances. They document
// the shape the structured-output schema expects from the model and serve as
// fixtures for the workflow tests.
package model

import "time"

// GetExampleScript creates a fully populated sample script in the shape the
// generation workflow produces.
//
// Outputs:
//   - *ScriptContent: a pointer to a hardcoded script document.
func GetExampleScript() *ScriptContent {
	return &ScriptContent{
		ID:              "8f14e45f-ceea-467f-9575-127504b86b33",
		Topic:           "Senha Wi-Fi (QR Code)",
		Title:           "Descubra a senha do Wi-Fi em 5 segundos",
		VideoStartText:  "Seu vizinho NÃO quer que você saiba disso.",
		HookVisualDesc:  "Close em uma tela de Android mostrando um QR Code de Wi-Fi sendo escaneado.",
		VeoPrompt:       "Extreme close-up of an Android phone screen scanning a glowing Wi-Fi QR code, dramatic lighting, vertical video.",
		AlternativeHook: "Pare de digitar senha de Wi-Fi. Existe um jeito secreto.",
		CtaText:         "Segue a Zunetech pra mais segredos do Android.",
		CtaPlacement:    "Fim",
		ScriptScenes: []ScriptScene{
			{
				TimeSegment:    "0-3s",
				VisualCue:      "QR Code gigante na tela com zoom in agressivo.",
				AudioNarration: "Seu vizinho NÃO quer que você saiba disso.",
			},
			{
				TimeSegment:    "3-8s",
				VisualCue:      "Screen recording: Configurações > Wi-Fi > Compartilhar.",
				AudioNarration: "Entra nas configurações de Wi-Fi e toca em compartilhar.",
			},
		},
		Outro:      "Testa agora e me conta nos comentários.",
		CaptionSEO: "Aprenda a compartilhar a senha do Wi-Fi por QR Code em qualquer Android. #dicas",
		Hashtags:   []string{"#android", "#wifi", "#zunetech"},
		Duration:   "10s",
		Timestamp:  time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC),
	}
}

// GetExampleTrends creates a small set of sample trending topics in the shape
// the trend-discovery call returns.
//
// Outputs:
//   - []TrendingTopic: a slice of hardcoded trends.
func GetExampleTrends() []TrendingTopic {
	return []TrendingTopic{
		{Title: "WhatsApp parando em celulares antigos", Reason: "Medo de perder o aplicativo gera cliques imediatos."},
		{Title: "IA que restaura fotos antigas", Reason: "Forte apelo emocional e compartilhamento em família."},
	}
}
