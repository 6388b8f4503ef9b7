package storage

import "testing"

func TestIsObjectKey(t *testing.T) {
	tests := []struct {
		ref  string
		want bool
	}{
		{"photos/0b5e-sunset.jpg", true},
		{"videos/clip.mp4", true},
		{"covers/hero.png", true},
		{"https://youtube.com/watch?v=1", false},
		{"http://cdn.example.com/photos/a.jpg", false},
		{"avatars/a.jpg", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsObjectKey(tt.ref); got != tt.want {
			t.Errorf("IsObjectKey(%q) = %v, want %v", tt.ref, got, tt.want)
		}
	}
}

func TestConfigValidate(t *testing.T) {
	full := Config{Endpoint: "minio:9000", AccessKey: "a", SecretKey: "s", Bucket: "b"}
	if err := full.validate(); err != nil {
		t.Errorf("Expected full config to validate, got %v", err)
	}

	missing := full
	missing.Bucket = ""
	if err := missing.validate(); err == nil {
		t.Error("Expected missing bucket to fail validation")
	}

	if got := full.url("minio:9000"); got != "http://minio:9000" {
		t.Errorf("Unexpected url %q", got)
	}
	full.UseSSL = true
	if got := full.url("s3.example.com"); got != "https://s3.example.com" {
		t.Errorf("Unexpected url %q", got)
	}
}
