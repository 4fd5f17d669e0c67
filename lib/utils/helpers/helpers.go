package helpers

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

func IsContextDone(ctx context.Context) bool {
	if ctx == nil {
		return true
	}
	select {
	case <-ctx.Done():
		return true
	default:
	}
	return false
}

// FmtHHMM форматирует минуты в строку вида "02:30".
func FmtHHMM(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ParseHHMM разбирает длительность в минуты.
// Поддерживаются форматы "90", "1:30", "1h30", "1.5" (часы).
func ParseHHMM(value string) int {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return 0
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	if strings.Contains(v, "h") {
		parts := strings.SplitN(v, "h", 2)
		h, _ := strconv.Atoi(parts[0])
		m := 0
		if len(parts) == 2 && parts[1] != "" {
			m, _ = strconv.Atoi(parts[1])
		}
		return h*60 + m
	}
	if strings.Contains(v, ":") {
		parts := strings.SplitN(v, ":", 2)
		h, _ := strconv.Atoi(parts[0])
		m, _ := strconv.Atoi(parts[1])
		return h*60 + m
	}
	if f, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", "."), 64); err == nil {
		return int(f*60 + 0.5)
	}
	return 0
}
