package pauli

import (
	"fmt"
	"sort"
	"strings"
)

// Normalize canonicalizes preset names and reference aliases.
func Normalize(name string) string {
	normalized := strings.TrimSpace(strings.ToLower(name))
	normalized = strings.ReplaceAll(normalized, "_", "-")
	normalized = strings.ReplaceAll(normalized, " ", "-")
	normalized = strings.Trim(normalized, "-")
	if normalized == "" {
		return ""
	}
	if canonical, ok := canonicalPresetName(normalized); ok {
		return canonical
	}
	return normalized
}

func canonicalPresetName(alias string) (string, bool) {
	switch alias {
	case "heisenberg", "xxx", "heisenberg-xxx", "xyz":
		return "heisenberg", true
	case "xy", "xy-model":
		return "xy", true
	case "xxz", "xxz-chain":
		return "xxz", true
	case "ising-zz", "ising", "zz":
		return "ising-zz", true
	}

	compact := strings.ReplaceAll(alias, "-", "")
	switch compact {
	case "heisenbergxxx":
		return "heisenberg", true
	case "xymodel":
		return "xy", true
	case "xxzchain":
		return "xxz", true
	case "isingzz":
		return "ising-zz", true
	default:
		return "", false
	}
}

// Preset resolves a named Hamiltonian, accepting the aliases Normalize knows.
func Preset(name string) (Hamiltonian, error) {
	h, ok := presetHamiltonian(Normalize(name))
	if !ok {
		return Hamiltonian{}, fmt.Errorf("unknown hamiltonian preset: %s", name)
	}
	return h, nil
}

func presetHamiltonian(canonical string) (Hamiltonian, bool) {
	switch canonical {
	case "heisenberg":
		return Hamiltonian{
			Name: "heisenberg",
			Terms: []Term{
				{Coefficient: 1, Observable: XX},
				{Coefficient: 1, Observable: YY},
				{Coefficient: 1, Observable: ZZ},
			},
		}, true
	case "xy":
		return Hamiltonian{
			Name: "xy",
			Terms: []Term{
				{Coefficient: 1, Observable: XX},
				{Coefficient: 1, Observable: YY},
			},
		}, true
	case "xxz":
		return Hamiltonian{
			Name: "xxz",
			Terms: []Term{
				{Coefficient: 1, Observable: XX},
				{Coefficient: 1, Observable: YY},
				{Coefficient: 2, Observable: ZZ},
			},
		}, true
	case "ising-zz":
		return Hamiltonian{
			Name: "ising-zz",
			Terms: []Term{
				{Coefficient: 1, Observable: ZZ},
			},
		}, true
	default:
		return Hamiltonian{}, false
	}
}

// PresetNames lists the canonical preset names in sorted order.
func PresetNames() []string {
	names := []string{"heisenberg", "ising-zz", "xxz", "xy"}
	sort.Strings(names)
	return names
}
