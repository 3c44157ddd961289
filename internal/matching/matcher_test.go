package matching

import "testing"

func TestNameMatcher(t *testing.T) {
	m := NewNameMatcher()

	tests := []struct {
		a, b string
		want bool
	}{
		{"João Silva", "JOAO SILVA", true},
		{"José Antônio", "jose antonio", true},
		{"Rota Marcos Pereira", "Marcos Pereira", true},
		{"ROTA marcos", "Marcos Pereira", true},
		{"Carlos", "Carlos Eduardo Souza", true},
		{"Paulo Henrique", "Paulo Roberto", true},
		{"Ana", "Anabela", false},
		{"Ana Maria", "Ana Paula", false},
		{"Luiz", "Luis", false},
		{"", "", false},
		{"Marcos", "", false},
	}

	for _, tt := range tests {
		if got := m.Match(tt.a, tt.b); got != tt.want {
			t.Errorf("Match(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
		if got := m.Match(tt.b, tt.a); got != tt.want {
			t.Errorf("Match(%q, %q) = %v, want %v (symmetry)", tt.b, tt.a, got, tt.want)
		}
	}
}

func TestNormalizeDriverName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Rota João", "joao"},
		{"ROTA  João", "joao"},
		{"Rota\tJoão", "joao"},
		{"rota\u00a0Marcos", "marcos"},
		{"Rotatória Silva", "rotatoria silva"},
		{"Rota", "rota"},
		{"  Maria  ", "maria"},
	}
	for _, tt := range tests {
		if got := NormalizeDriverName(tt.in); got != tt.want {
			t.Errorf("NormalizeDriverName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNameMatcherReflexive(t *testing.T) {
	m := NewNameMatcher()
	for _, name := range []string{"Zé", "Bia", "Maria das Graças", "ÁLVARO", "Rota Sul"} {
		if !m.Match(name, name) {
			t.Errorf("expected %q to match itself", name)
		}
	}
}

func TestNameMatcherDiacriticInsensitive(t *testing.T) {
	m := NewNameMatcher()
	if !m.Match("Conceição", "CONCEICAO") {
		t.Fatal("expected diacritics to be ignored")
	}
}

func TestCityMatcher(t *testing.T) {
	m := NewCityMatcher()

	tests := []struct {
		a, b string
		want bool
	}{
		{"Ribeirão Preto/SP", "RIBEIRAO PRETO", true},
		{"São Carlos", "Sao Carlos/SP", true},
		{"Jardinópolis", "Jardinopolis", true},
		{"Rota Sul", "Sul", false},
		{"Luís Antônio", "Luis Antonio/SP", true},
		{"Serrana", "Sertãozinho", false},
		{"/SP", "SP", false},
	}

	for _, tt := range tests {
		if got := m.Match(tt.a, tt.b); got != tt.want {
			t.Errorf("Match(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSameCity(t *testing.T) {
	if !SameCity("Cravinhos/SP", "cravinhos") {
		t.Error("expected state suffix to be ignored")
	}
	if SameCity("Guará", "Guaraci") {
		t.Error("expected exact comparison")
	}
	if SameCity("", "") {
		t.Error("empty names must not match")
	}
}

func TestFold(t *testing.T) {
	if got := Fold("  Ribeirão Preto "); got != "ribeirao preto" {
		t.Errorf("unexpected fold %q", got)
	}
}
