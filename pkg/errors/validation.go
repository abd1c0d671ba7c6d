package errors

import (
	"regexp"
	"strings"
	"time"
	"unicode"
)

// outputNameRegex matches RandR output names as printed by xrandr
// (e.g. "eDP-1", "DisplayPort-0", "HDMI-A-0").
var outputNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9-]*$`)

// ValidateOutputName validates an output (link) name before it is passed
// verbatim to xrandr's --output flag.
func ValidateOutputName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidOutput, "output name cannot be empty")
	}
	if len(name) > 64 {
		return New(ErrCodeInvalidOutput, "output name too long (max 64 characters)")
	}
	if !outputNameRegex.MatchString(name) {
		return New(ErrCodeInvalidOutput, "invalid output name: %q", name)
	}
	return nil
}

// ValidateBinary validates the name or path of an external command.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters or whitespace
//   - No shell metacharacters
func ValidateBinary(name string) error {
	if name == "" {
		return New(ErrCodeInvalidConfig, "command cannot be empty")
	}

	for _, r := range name {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidConfig, "command %q contains whitespace or control characters", name)
		}
	}

	if strings.ContainsAny(name, ";|&$`<>*?") {
		return New(ErrCodeInvalidConfig, "command %q contains shell metacharacters", name)
	}

	return nil
}

// Supported probe backends.
const (
	ProbeXrandr = "xrandr"
	ProbeRandR  = "randr"
)

// ValidateProbe validates a probe backend name.
func ValidateProbe(name string) error {
	switch name {
	case ProbeXrandr, ProbeRandR:
		return nil
	}
	return New(ErrCodeInvalidConfig, "unknown probe backend %q (want %s or %s)", name, ProbeXrandr, ProbeRandR)
}

// maxSettleDelay bounds the pause between argument groups.
const maxSettleDelay = time.Minute

// ValidateSettleDelay validates the pause between consecutive xrandr invocations.
func ValidateSettleDelay(d time.Duration) error {
	if d < 0 {
		return New(ErrCodeInvalidConfig, "settle delay cannot be negative")
	}
	if d > maxSettleDelay {
		return New(ErrCodeInvalidConfig, "settle delay too long (max %s)", maxSettleDelay)
	}
	return nil
}
