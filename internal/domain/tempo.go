package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatarDuracao escreve a duração no formato HH:MM:SS usado nas súmulas.
func FormatarDuracao(d time.Duration) string {
	total := int64(d / time.Second)
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

// ParseDuracao aceita HH:MM:SS ou MM:SS.
func ParseDuracao(s string) (time.Duration, error) {
	partes := strings.Split(strings.TrimSpace(s), ":")
	if len(partes) < 2 || len(partes) > 3 {
		return 0, fmt.Errorf("%w: duracao %q fora do formato HH:MM:SS", ErrValidacao, s)
	}
	if len(partes) == 2 {
		partes = append([]string{"0"}, partes...)
	}

	valores := make([]int, 3)
	for i, p := range partes {
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 {
			return 0, fmt.Errorf("%w: duracao %q fora do formato HH:MM:SS", ErrValidacao, s)
		}
		if i > 0 && v > 59 {
			return 0, fmt.Errorf("%w: duracao %q com minutos ou segundos acima de 59", ErrValidacao, s)
		}
		valores[i] = v
	}

	return time.Duration(valores[0])*time.Hour +
		time.Duration(valores[1])*time.Minute +
		time.Duration(valores[2])*time.Second, nil
}
