package generator

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func paymentMethodSpec() VariantSpec {
	return VariantSpec{
		Name:     "PaymentMethod",
		Location: "Payment.method",
		Alternatives: []AlternativeSpec{
			{Name: "Card", Type: "CreditCard"},
			{Type: "BankAccount"},
		},
	}
}

func TestGenerateVariant(t *testing.T) {
	gen := NewVariantGenerator("testpkg")

	result, err := gen.GenerateVariant(paymentMethodSpec())
	if err != nil {
		t.Fatalf("GenerateVariant failed: %v", err)
	}

	expected := []string{
		"type PaymentMethod struct",
		`var paymentMethodAlternatives = unions.Register[PaymentMethod]("Payment.method",`,
		`unions.Alt("Card", PaymentMethodFromCard),`,
		`unions.Alt("BankAccount", PaymentMethodFromBankAccount),`,
		"func PaymentMethodFromCard(value CreditCard) PaymentMethod",
		"func (u PaymentMethod) IsCard() bool",
		"func (u PaymentMethod) AsCard() (CreditCard, bool)",
		"func (u PaymentMethod) AsBankAccount() (BankAccount, bool)",
		"func (u *PaymentMethod) UnmarshalJSON(data []byte) error",
		"// PaymentMethod is a union of 2 alternatives.",
	}
	for _, want := range expected {
		if !strings.Contains(result, want) {
			t.Errorf("generated code missing %q", want)
		}
	}

	// Declared order must survive into the registration.
	if strings.Index(result, `"Card"`) > strings.Index(result, `"BankAccount"`) {
		t.Error("alternatives registered out of declared order")
	}
}

func TestGenerateVariantDefaultsLocation(t *testing.T) {
	spec := paymentMethodSpec()
	spec.Location = ""

	result, err := NewVariantGenerator("testpkg").GenerateVariant(spec)
	if err != nil {
		t.Fatalf("GenerateVariant failed: %v", err)
	}
	if !strings.Contains(result, `unions.Register[PaymentMethod]("PaymentMethod",`) {
		t.Error("location should default to the type name")
	}
}

func TestGenerateFormatsFile(t *testing.T) {
	gen := NewVariantGenerator("testpkg")

	code, err := gen.Generate([]VariantSpec{
		paymentMethodSpec(),
		{
			Name: "Scalar",
			Alternatives: []AlternativeSpec{
				{Type: "string"},
				{Type: "[]int"},
			},
		},
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	src := string(code)
	if !strings.HasPrefix(src, "// Code generated by paykit generate variants. DO NOT EDIT.") {
		t.Error("missing generated code header")
	}
	if !strings.Contains(src, "package testpkg") {
		t.Error("missing package clause")
	}
	if !strings.Contains(src, `import "`+UnionsImportPath+`"`) {
		t.Error("missing unions import")
	}
	if !strings.Contains(src, "func ScalarFromIntSlice(value []int) Scalar") {
		t.Error("slice alternative should be named after its element type")
	}
	if !strings.Contains(src, "\tunions.Union\n") {
		t.Error("output is not gofmt'ed")
	}
}

func TestGenerateRejectsInvalidSpecs(t *testing.T) {
	tests := []struct {
		name string
		spec VariantSpec
	}{
		{"no name", VariantSpec{Alternatives: []AlternativeSpec{{Type: "string"}}}},
		{"no alternatives", VariantSpec{Name: "Empty"}},
		{"missing type", VariantSpec{Name: "X", Alternatives: []AlternativeSpec{{Name: "A"}}}},
		{"duplicate names", VariantSpec{Name: "X", Alternatives: []AlternativeSpec{{Type: "string"}, {Name: "String", Type: "[]byte"}}}},
	}

	gen := NewVariantGenerator("testpkg")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := gen.Generate([]VariantSpec{tt.spec}); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestGenerateFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "variants_gen.go")

	if err := NewVariantGenerator("testpkg").GenerateFile([]VariantSpec{paymentMethodSpec()}, out); err != nil {
		t.Fatalf("GenerateFile failed: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	if !strings.Contains(string(data), "type PaymentMethod struct") {
		t.Error("output missing type declaration")
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
			t.Fatal(err)
		}
		return path
	}

	cfg, err := LoadConfig(write("ok.yml", `
package: models
variants:
  - name: MetadataValue
    location: metadata
    alternatives:
      - name: String
        type: string
      - name: Number
        type: float64
`))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Package != "models" || len(cfg.Variants) != 1 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if got := cfg.Variants[0].Alternatives[1].Type; got != "float64" {
		t.Errorf("second alternative type = %q", got)
	}

	bad := map[string]string{
		"no_package.yml": "variants: []\n",
		"bad_yaml.yml":   "package: [\n",
		"empty_alts.yml": "package: models\nvariants:\n  - name: X\n",
	}
	for name, body := range bad {
		if _, err := LoadConfig(write(name, body)); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}

	if _, err := LoadConfig(filepath.Join(dir, "missing.yml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestModelsConfigGenerates(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("..", "..", "pkg", "models", "variants.yml"))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	code, err := NewVariantGenerator(cfg.Package, cfg.Imports...).Generate(cfg.Variants)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	for _, want := range []string{
		"\t\"encoding/json\"\n",
		"func MetadataValueFromNumber(value json.Number) MetadataValue",
		"func FilterClausesFromConditions(value []FilterCondition) FilterClauses",
		"func (u CheckoutCustomer) AsAttachExisting() (AttachExistingCustomer, bool)",
		`unions.Register[EventCreate]("EventsIngest.events",`,
	} {
		if !strings.Contains(string(code), want) {
			t.Errorf("generated models missing %q", want)
		}
	}
}

func TestCleanTypeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"string", "String"},
		{"*User", "User"},
		{"models.User", "User"},
		{"*models.User", "User"},
		{"[]string", "StringSlice"},
		{"[]*models.User", "UserSlice"},
		{"map[string]int", "StringToIntMap"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if result := cleanTypeName(tt.input); result != tt.expected {
				t.Errorf("cleanTypeName(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestGenerateWithImports(t *testing.T) {
	code, err := NewVariantGenerator("testpkg", "encoding/json", "time").Generate([]VariantSpec{{
		Name: "Stamp",
		Alternatives: []AlternativeSpec{
			{Name: "Time", Type: "time.Time"},
			{Name: "Raw", Type: "json.Number"},
		},
	}})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	want := "import (\n\t\"encoding/json\"\n\t\"time\"\n\n\t\"" + UnionsImportPath + "\"\n)\n"
	if !strings.Contains(string(code), want) {
		t.Errorf("import block not rendered as expected:\n%s", code)
	}
	if !strings.Contains(string(code), "func StampFromRaw(value json.Number) Stamp") {
		t.Error("qualified alternative type not kept")
	}
}
