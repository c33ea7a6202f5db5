package middleware

import "testing"

func TestSanitizePath(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"video id", "/api/videos/9b1c2d3e", "/api/videos/:videoId"},
		{"video like", "/api/videos/9b1c2d3e/like", "/api/videos/:videoId/like"},
		{"video comments", "/api/videos/9b1c2d3e/comments", "/api/videos/:videoId/comments"},
		{"sign is static", "/api/videos/sign", "/api/videos/sign"},
		{"profile id", "/api/profiles/user-1", "/api/profiles/:userId"},
		{"username lookup", "/api/profiles/by-username/alice", "/api/profiles/by-username/:username"},
		{"comment id", "/api/comments/abc/replies", "/api/comments/:commentId/replies"},
		{"static routes untouched", "/api/stats", "/api/stats"},
		{"root", "/", "/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizePath(tt.path); got != tt.want {
				t.Errorf("sanitizePath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}
