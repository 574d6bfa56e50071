package roles

import (
	"context"
	"errors"
	"testing"

	"med-reminder/internal/ports/capabilities"
)

func TestResolver_Table(t *testing.T) {
	r := NewResolver(false)
	ctx := context.Background()

	tests := []struct {
		role string
		cap  capabilities.Capability
		want bool
	}{
		{"admin", capabilities.AuditRead, true},
		{"ADMIN", capabilities.UsersManage, true},
		{"moderator", capabilities.CatalogWrite, true},
		{"moderator", capabilities.UsersManage, false},
		{"user", capabilities.CatalogWrite, false},
		{"", capabilities.StatsRead, false},
	}
	for _, tt := range tests {
		got, err := r.Has(ctx, tt.role, tt.cap)
		if err != nil {
			t.Fatalf("%s/%s: %v", tt.role, tt.cap, err)
		}
		if got != tt.want {
			t.Errorf("%s/%s = %v, want %v", tt.role, tt.cap, got, tt.want)
		}
	}
}

func TestResolver_UnknownAndAllowAll(t *testing.T) {
	r := NewResolver(true)
	if ok, _ := r.Has(context.Background(), "user", capabilities.LogsRead); !ok {
		t.Fatalf("allowAll should grant")
	}
	if _, err := r.Has(context.Background(), "admin", "pets:write"); !errors.Is(err, ErrUnknownCapability) {
		t.Fatalf("expected ErrUnknownCapability, got %v", err)
	}
}
