package file

import (
	"fmt"

	"cms-platform/pkg/apperrors"
)

// HardSizeCap is the ceiling no settings value can raise.
const HardSizeCap = 10 << 20 // 10 MiB

// UploadBodyCap bounds the raw request body on the upload route before any
// multipart parsing: the hard file cap plus headroom for multipart framing.
const UploadBodyCap = HardSizeCap + 1<<20

// allowedTypes maps sniffed MIME types to the extension stored files get.
// The allowlist is deliberately short: images and PDF documents only.
var allowedTypes = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/gif":       ".gif",
	"image/webp":      ".webp",
	"application/pdf": ".pdf",
}

// EffectiveSizeCap returns the enforced limit: the configured value, never
// above the hard cap.
func EffectiveSizeCap(configured int64) int64 {
	if configured <= 0 || configured > HardSizeCap {
		return HardSizeCap
	}
	return configured
}

// CheckPolicy validates a sniffed content type and size against the upload
// policy. The content type must come from the file bytes, not the client's
// declared header.
func CheckPolicy(contentType string, size, configuredCap int64) *apperrors.AppError {
	limit := EffectiveSizeCap(configuredCap)
	if size > limit {
		return apperrors.NewPayloadTooLarge(fmt.Sprintf("File exceeds the %d byte limit.", limit))
	}
	if _, ok := allowedTypes[contentType]; !ok {
		return apperrors.NewUnsupportedMediaType("File type is not allowed.")
	}
	return nil
}

// extensionFor returns the canonical extension for an allowed content type.
func extensionFor(contentType string) string {
	return allowedTypes[contentType]
}
