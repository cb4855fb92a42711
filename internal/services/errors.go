package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrProbe         = errors.New("probe failure")
	ErrApply         = errors.New("apply failure")
	ErrTimeout       = errors.New("timeout")
	ErrValidation    = errors.New("validation error")
	ErrConfiguration = errors.New("configuration error")
)

// Wrap builds an error message that includes stage context while tagging it with
// the provided marker for later classification. The marker should be one of the
// exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrValidation
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// CommandFailure tags an external command error with marker, converting
// deadline expiry into ErrTimeout so callers can report it separately.
func CommandFailure(marker error, stage, operation string, ctxErr, err error) error {
	if errors.Is(ctxErr, context.DeadlineExceeded) {
		return Wrap(ErrTimeout, stage, operation, "external command timed out", err)
	}
	return Wrap(marker, stage, operation, "", err)
}

// Classify returns the short name of the marker carried by err, or "error"
// when none of the known markers match.
func Classify(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "timeout"
	case errors.Is(err, ErrProbe):
		return "probe_failure"
	case errors.Is(err, ErrApply):
		return "apply_failure"
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	case errors.Is(err, ErrValidation):
		return "validation"
	default:
		return "error"
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
