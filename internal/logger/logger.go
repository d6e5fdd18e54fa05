package logger

import (
	"context"
	"fmt"
	"log"
	"strings"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelError
)

var currentLevel = LevelInfo

func SetLevel(l Level) {
	currentLevel = l
}

func Debug(ctx context.Context, msg string, fields ...interface{}) {
	if currentLevel > LevelDebug {
		return
	}
	log.Printf("[DEBUG] %s%s", msg, formatFields(fields))
}

func Info(ctx context.Context, msg string, fields ...interface{}) {
	if currentLevel > LevelInfo {
		return
	}
	log.Printf("[INFO] %s%s", msg, formatFields(fields))
}

func Error(ctx context.Context, err error, msg string, fields ...interface{}) {
	if err != nil {
		log.Printf("[ERROR] %s: %v%s", msg, err, formatFields(fields))
		return
	}
	log.Printf("[ERROR] %s%s", msg, formatFields(fields))
}

// formatFields renders key/value pairs as " k1=v1 k2=v2". An odd
// trailing value is printed on its own.
func formatFields(fields []interface{}) string {
	if len(fields) == 0 {
		return ""
	}

	var sb strings.Builder
	for i := 0; i+1 < len(fields); i += 2 {
		fmt.Fprintf(&sb, " %v=%v", fields[i], fields[i+1])
	}
	if len(fields)%2 != 0 {
		fmt.Fprintf(&sb, " %v", fields[len(fields)-1])
	}
	return sb.String()
}
