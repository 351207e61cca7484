package s3

import "testing"

func TestApplyPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
		key    string
		want   string
	}{
		{name: "no prefix", prefix: "", key: "owner/avatar.png", want: "owner/avatar.png"},
		{name: "simple prefix", prefix: "avatars", key: "owner/avatar.png", want: "avatars/owner/avatar.png"},
		{name: "prefix trailing slash", prefix: "avatars/", key: "owner/avatar.png", want: "avatars/owner/avatar.png"},
		{name: "prefix and key slashes", prefix: "/avatars/", key: "/owner/avatar.png", want: "avatars/owner/avatar.png"},
		{name: "nested prefix", prefix: "app/avatars", key: "owner/avatar.png", want: "app/avatars/owner/avatar.png"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := applyPrefix(tt.prefix, tt.key); got != tt.want {
				t.Fatalf("applyPrefix(%q, %q) = %q, want %q", tt.prefix, tt.key, got, tt.want)
			}
		})
	}
}
