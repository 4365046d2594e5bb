package app

import (
	"strings"
	"unicode/utf8"

	"place_sentiment/internal/domain"
)

// Message returns the one user-facing status line for an outcome kind.
// Messages are pt-BR, like the default review language.
func Message(kind domain.OutcomeKind) string {
	switch kind {
	case domain.OutcomeFound:
		return "Avaliações encontradas."
	case domain.OutcomePlaceNotFound:
		return "Nenhum lugar encontrado com essa consulta."
	case domain.OutcomeNoReviews:
		return "Nenhuma avaliação encontrada para este lugar."
	case domain.OutcomeTransientError:
		return "O serviço de lugares está indisponível, tente novamente."
	}
	return "Resultado de busca inesperado."
}

// Truncate shortens text to at most n runes, marking the cut with an ellipsis.
// Newlines are flattened so excerpts fit on one line.
func Truncate(text string, n int) string {
	text = strings.Join(strings.Fields(text), " ")
	if n <= 0 || utf8.RuneCountInString(text) <= n {
		return text
	}
	if n == 1 {
		return "…"
	}
	r := []rune(text)
	return strings.TrimRight(string(r[:n-1]), " ") + "…"
}
