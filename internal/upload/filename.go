package upload

import (
	"fmt"
	"math/rand"
	"path"
	"strings"
	"time"
)

const (
	suffixLen     = 7
	suffixCharset = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// VideoPath builds a storage path for a new video:
// {userId}/{unixMillis}-{7-char random suffix}.{original extension}.
// The user-id prefix is the storage namespace: every write and delete verifies
// it against the authenticated caller.
func VideoPath(userID, originalFilename string) string {
	ext := strings.TrimPrefix(path.Ext(originalFilename), ".")
	if ext == "" {
		ext = "mp4"
	}
	return fmt.Sprintf("%s/%d-%s.%s", userID, time.Now().UnixMilli(), randomSuffix(), ext)
}

// PosterPath derives the poster storage path from a video storage path:
// {userId}/{video-basename-without-extension}-poster.jpg.
func PosterPath(userID, videoPath string) string {
	base := path.Base(videoPath)
	name, _, _ := strings.Cut(base, ".")
	return fmt.Sprintf("%s/%s-poster.jpg", userID, name)
}

// OwnedBy reports whether a storage path falls under the given user's
// namespace. This prefix comparison is the sole access-control mechanism for
// storage objects; callers must check it before any delete.
func OwnedBy(storagePath, userID string) bool {
	owner, _, found := strings.Cut(storagePath, "/")
	return found && owner == userID && userID != ""
}

func randomSuffix() string {
	b := make([]byte, suffixLen)
	for i := range b {
		b[i] = suffixCharset[rand.Intn(len(suffixCharset))]
	}
	return string(b)
}
