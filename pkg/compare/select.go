package compare

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dennissergeev/exo-lightning-msci-project/pkg/domain"
	"github.com/dennissergeev/exo-lightning-msci-project/pkg/ports"
)

// ParseWhere splits a key=value provenance filter.
func ParseWhere(expr string) (key, value string, err error) {
	key, value, ok := strings.Cut(expr, "=")
	if !ok || key == "" {
		return "", "", fmt.Errorf("%w: invalid filter %q (want key=value)", domain.ErrConfigValidation, expr)
	}
	return key, value, nil
}

// FindByAttribute returns the stored labels whose provenance has key set to
// value. Stores implementing ports.AttributeFinder answer from their index;
// the others are scanned. A run that disappears during the scan is skipped.
func FindByAttribute(ctx context.Context, store ports.ResultReader, key, value string) ([]string, error) {
	if finder, ok := store.(ports.AttributeFinder); ok {
		return finder.FindByAttribute(ctx, key, value)
	}

	labels, err := store.List(ctx)
	if err != nil {
		return nil, err
	}
	matches := []string{}
	for _, label := range labels {
		result, err := store.Load(ctx, label)
		if err != nil {
			if errors.Is(err, domain.ErrRunNotFound) {
				continue
			}
			return nil, err
		}
		if v, ok := result.Attribute(key); ok && v == value {
			matches = append(matches, label)
		}
	}
	return matches, nil
}
