package identity

import (
	"fmt"
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

const keyPrefix = "go-landing:"

// UUID derives a stable identifier from key. Callers namespace keys by entity
// kind so pages, segments and translations never collide.
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// PageUUID identifies the stored page backing a content variant.
func PageUUID(variant string) uuid.UUID {
	return UUID(keyPrefix + "page:" + strings.ToLower(strings.TrimSpace(variant)))
}

// SegmentUUID identifies the segment at ordinal within a page.
func SegmentUUID(pageID uuid.UUID, ordinal int) uuid.UUID {
	return UUID(fmt.Sprintf("%ssegment:%s:%d", keyPrefix, pageID, ordinal))
}

// TranslationUUID identifies the n-th imported translation of a segment in
// one locale.
func TranslationUUID(segmentID uuid.UUID, locale string, n int) uuid.UUID {
	return UUID(fmt.Sprintf("%stranslation:%s:%s:%d", keyPrefix, segmentID, strings.ToLower(strings.TrimSpace(locale)), n))
}
