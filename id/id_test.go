package id_test

import (
	"strings"
	"testing"

	"github.com/abakedjoetato/beacon/id"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		newFn  func() id.ID
		prefix string
	}{
		{"SubscriptionID", id.NewSubscriptionID, "sub_"},
		{"DispatchID", id.NewDispatchID, "disp_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.newFn().String()
			if !strings.HasPrefix(got, tt.prefix) {
				t.Errorf("expected prefix %q, got %q", tt.prefix, got)
			}
		})
	}
}

func TestNew(t *testing.T) {
	i := id.New(id.PrefixSubscription)
	if i.IsNil() {
		t.Fatal("expected non-nil ID")
	}
	if i.Prefix() != id.PrefixSubscription {
		t.Errorf("expected prefix %q, got %q", id.PrefixSubscription, i.Prefix())
	}
}

func TestParseRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		newFn   func() id.ID
		parseFn func(string) (id.ID, error)
	}{
		{"SubscriptionID", id.NewSubscriptionID, id.ParseSubscriptionID},
		{"DispatchID", id.NewDispatchID, id.ParseDispatchID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orig := tt.newFn()
			parsed, err := tt.parseFn(orig.String())
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if parsed.String() != orig.String() {
				t.Errorf("round trip: got %s, want %s", parsed, orig)
			}
		})
	}
}

func TestParseWithPrefix_Mismatch(t *testing.T) {
	sub := id.NewSubscriptionID()
	if _, err := id.ParseDispatchID(sub.String()); err == nil {
		t.Error("expected prefix mismatch error")
	}
}

func TestParse_Empty(t *testing.T) {
	if _, err := id.Parse(""); err == nil {
		t.Error("expected error for empty string")
	}
}

func TestNil(t *testing.T) {
	if !id.Nil.IsNil() {
		t.Error("Nil.IsNil() = false, want true")
	}
	if id.Nil.String() != "" {
		t.Errorf("Nil.String() = %q, want empty", id.Nil.String())
	}
}

func TestTextMarshaling(t *testing.T) {
	orig := id.NewDispatchID()

	data, err := orig.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText: %v", err)
	}

	var parsed id.ID
	if err := parsed.UnmarshalText(data); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}
	if parsed.String() != orig.String() {
		t.Errorf("round trip: got %s, want %s", parsed, orig)
	}

	var nilID id.ID
	if err := nilID.UnmarshalText(nil); err != nil {
		t.Fatalf("UnmarshalText(nil): %v", err)
	}
	if !nilID.IsNil() {
		t.Error("expected Nil after unmarshaling empty text")
	}
}

func TestKSortable(t *testing.T) {
	a := id.NewDispatchID().String()
	b := id.NewDispatchID().String()
	if !(a < b) {
		t.Skip("same-millisecond IDs are not strictly ordered")
	}
}
