package diagnostics

import "fmt"

type Severity string

const (
	Info Severity = "info"
	Warn Severity = "warning"
	Err  Severity = "error"
)

type Diagnostic struct {
	Severity       Severity       `json:"severity"`
	Code           string         `json:"code"`
	Summary        string         `json:"summary"`
	Detail         string         `json:"detail,omitempty"`
	LikelyCauses   []string       `json:"likely_causes,omitempty"`
	SuggestedFixes []string       `json:"suggested_fixes,omitempty"`
	Evidence       map[string]any `json:"evidence,omitempty"`
}

// Reporter receives diagnostics; the preview hub fans them out to /diag.
type Reporter interface {
	Report(d Diagnostic)
}

// FlushFailed describes a frame the LED driver refused.
func FlushFailed(err error, effect string, seed uint32) Diagnostic {
	return Diagnostic{
		Severity:     Warn,
		Code:         "LED.FLUSH",
		Summary:      "LED flush failed; frame dropped",
		Detail:       err.Error(),
		LikelyCauses: []string{"SPI port busy or unplugged", "strip shorter than configured"},
		Evidence:     map[string]any{"effect": effect, "seed": seed},
	}
}

// DriverFallback records that hardware init failed and the sim took over.
func DriverFallback(driver string, err error) Diagnostic {
	return Diagnostic{
		Severity:       Err,
		Code:           "LED.FALLBACK",
		Summary:        fmt.Sprintf("%s driver unavailable; using sim", driver),
		Detail:         err.Error(),
		SuggestedFixes: []string{"check -spi-port", "run as a user with SPI access"},
	}
}

// Switched announces a new effect on the lamp.
func Switched(effect string, tick uint64) Diagnostic {
	return Diagnostic{
		Severity: Info,
		Code:     "SEQ.SWITCH",
		Summary:  "effect switched",
		Evidence: map[string]any{"effect": effect, "tick": tick},
	}
}
