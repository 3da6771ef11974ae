package types

import "testing"

func TestIsFnSig(t *testing.T) {
	tests := []struct {
		typeStr string
		want    bool
	}{
		{"int,int->int", true},
		{"->void", true},
		{"int", false},
		{"{x,y,}", false},
	}
	for _, tt := range tests {
		if got := IsFnSig(tt.typeStr); got != tt.want {
			t.Errorf("IsFnSig(%q) = %v, want %v", tt.typeStr, got, tt.want)
		}
	}
}

func TestIsStructName(t *testing.T) {
	tests := []struct {
		typeStr string
		want    bool
	}{
		{"{x,y,}", true},
		{"{}", true},
		{"int", false},
		{"int->bool", false},
	}
	for _, tt := range tests {
		if got := IsStructName(tt.typeStr); got != tt.want {
			t.Errorf("IsStructName(%q) = %v, want %v", tt.typeStr, got, tt.want)
		}
	}
}

func TestIsVoid(t *testing.T) {
	if !IsVoid("void") {
		t.Error("expected void to be void")
	}
	if IsVoid("int") {
		t.Error("expected int not to be void")
	}
}

func TestIsPrimitive(t *testing.T) {
	for _, p := range []string{"bool", "void", "int", "string"} {
		if !IsPrimitive(p) {
			t.Errorf("expected %q to be primitive", p)
		}
	}
	for _, np := range []string{"{x,}", "int->int", Error} {
		if IsPrimitive(np) {
			t.Errorf("expected %q not to be primitive", np)
		}
	}
}
