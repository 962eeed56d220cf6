package commands

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"pcquote/services"
	"pcquote/testhelpers"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	prev := clock
	clock = func() time.Time { return time.Date(2025, 3, 14, 17, 30, 0, 0, time.UTC) }
	t.Cleanup(func() { clock = prev })

	shop := testhelpers.NewTestShop(t)
	cmd := NewQuoteCommand(shop)
	if len(args) > 0 && args[0] == "presets" {
		cmd = NewPresetsCommand(shop)
		args = args[1:]
	}
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestQuoteCommand_DefaultBuild(t *testing.T) {
	out, err := runCommand(t, "--name", "Jane Doe", "--zip", "84101")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	for _, want := range []string{
		"UtahPCs Build Request — Jane Doe",
		"Reference: UTAH-Q-250314-",
		"ZIP: 84101 (UT local)",
		"Estimate (pre-tax): $910.00",
		"Tax: $70.53",
		"Total: $980.53",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
}

func TestQuoteCommand_PresetSetAndExtras(t *testing.T) {
	out, err := runCommand(t, "--preset", "office", "--set", "gpu=4060", "--extra", "rgb", "--extra", "rgb", "--json")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	r, err := services.ParseStructuredExport([]byte(strings.TrimSpace(out)))
	if err != nil {
		t.Fatalf("--json output does not parse: %v", err)
	}
	if r.Configuration.Selection[services.CategoryGPU] != "4060" {
		t.Errorf("gpu = %q", r.Configuration.Selection[services.CategoryGPU])
	}
	// office parts + 4060, rgb once, labor.
	want := services.Cents(51500 + 32000 + 6000 + 24500)
	if r.Breakdown.Subtotal != want {
		t.Errorf("subtotal = %d, want %d", r.Breakdown.Subtotal, want)
	}
}

func TestQuoteCommand_NoExtras(t *testing.T) {
	out, err := runCommand(t, "--preset", "creator4k", "--no-extras")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, "Extras: None") {
		t.Errorf("output missing \"Extras: None\"\n%s", out)
	}
}

func TestQuoteCommand_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown preset", []string{"--preset", "ultra"}, `unknown preset "ultra"`},
		{"bad set", []string{"--set", "gpu"}, "expected category=id"},
		{"unknown category", []string{"--set", "fan=noctua"}, `unknown category "fan"`},
		{"unknown item", []string{"--set", "gpu=5090"}, "unknown item"},
		{"unknown extra", []string{"--extra", "neon"}, "unknown extra"},
		{"exclusive flags", []string{"--extra", "rgb", "--no-extras"}, "none of the others can be"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCommand(t, tt.args...)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestQuoteCommand_InvalidConfigurationIsTyped(t *testing.T) {
	_, err := runCommand(t, "--set", "ram=128")
	var invalid *services.InvalidConfigurationError
	if !errors.As(err, &invalid) {
		t.Fatalf("error = %v, want *InvalidConfigurationError", err)
	}
	if invalid.Category != services.CategoryRAM || invalid.ID != "128" {
		t.Errorf("error = %+v", invalid)
	}
}

func TestPresetsCommand(t *testing.T) {
	out, err := runCommand(t, "presets")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 5 {
		t.Fatalf("lines = %d, want header + 4\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[1], "gaming1080") || !strings.Contains(lines[1], "$1,427.69") {
		t.Errorf("first preset line = %q", lines[1])
	}
	if !strings.HasPrefix(lines[4], "office") || !strings.Contains(lines[4], "$980.53") {
		t.Errorf("last preset line = %q", lines[4])
	}
}
