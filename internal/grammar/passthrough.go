package grammar

import (
	"context"

	"murmur/internal/domain"
)

// Passthrough is the corrector used when grammar correction is disabled.
type Passthrough struct{}

func (Passthrough) Correct(_ context.Context, text string) domain.CorrectionResult {
	return domain.CorrectionResult{Success: true, Corrected: text, Original: text}
}
