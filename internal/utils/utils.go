package utils

import (
	"strings"

	"github.com/sirupsen/logrus"
	log "github.com/sirupsen/logrus"
	"golang.org/x/text/cases"
)

var Log = logrus.New()

func SetLogLevel(level string) {
	// We are not using logrus' trace and panic levels
	switch strings.ToLower(level) {
	case "debug":
		Log.SetLevel(log.DebugLevel)
	case "info":
		Log.SetLevel(log.InfoLevel)
	case "warning", "warn":
		Log.SetLevel(log.WarnLevel)
	case "error":
		Log.SetLevel(log.ErrorLevel)
	case "fatal":
		Log.SetLevel(log.FatalLevel)
	default:
		log.Fatal("Bad error level string")
	}
}

// Fold returns the Unicode case-folded form of s. A Caser keeps state, so a
// fresh one is built per call to stay safe across goroutines.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// HasDuplicates reports the values that occur more than once in names,
// compared case-insensitively, in first-seen order.
func HasDuplicates(names []string) []string {
	seen := make(map[string]int, len(names))
	var dups []string
	for _, n := range names {
		k := Fold(n)
		seen[k]++
		if seen[k] == 2 {
			dups = append(dups, n)
		}
	}
	return dups
}
