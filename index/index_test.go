package index

import (
	"testing"

	"github.com/sourcekit-bridge/xlangrename/snapshot"
)

func TestRoleHas(t *testing.T) {
	r := RoleDefinition | RoleCall
	if !r.Has(RoleDefinition) {
		t.Error("Has(RoleDefinition) = false, want true")
	}
	if !r.Has(RoleCall) {
		t.Error("Has(RoleCall) = false, want true")
	}
	if r.Has(RoleReference) {
		t.Error("Has(RoleReference) = true, want false")
	}
}

func TestUsageForRoles(t *testing.T) {
	tests := []struct {
		roles Role
		want  Usage
	}{
		{RoleDefinition, Definition},
		{RoleDeclaration, Definition},
		{RoleDefinition | RoleCall, Definition}, // definition wins
		{RoleCall, Call},
		{RoleReference, Reference},
		{RoleReference | RoleCall, Call}, // call wins over reference
		{0, Reference},
	}
	for _, tt := range tests {
		if got := UsageForRoles(tt.roles); got != tt.want {
			t.Errorf("UsageForRoles(%v) = %v, want %v", tt.roles, got, tt.want)
		}
	}
}

func TestSymbolKindIsMethod(t *testing.T) {
	tests := []struct {
		kind SymbolKind
		want bool
	}{
		{InstanceMethod, true},
		{ClassMethod, true},
		{SymbolKindOther, false},
	}
	for _, tt := range tests {
		if got := tt.kind.IsMethod(); got != tt.want {
			t.Errorf("%v.IsMethod() = %v, want %v", tt.kind, got, tt.want)
		}
	}
}

func TestLanguageFamily(t *testing.T) {
	tests := []struct {
		lang Language
		want snapshot.Language
	}{
		{LanguageSwift, snapshot.Swift},
		{LanguageObjectiveC, snapshot.Clang},
		{LanguageC, snapshot.Clang},
		{LanguageCPlusPlus, snapshot.Clang},
		{LanguageUnknown, snapshot.Unknown},
	}
	for _, tt := range tests {
		if got := tt.lang.Family(); got != tt.want {
			t.Errorf("%v.Family() = %v, want %v", tt.lang, got, tt.want)
		}
	}
}
