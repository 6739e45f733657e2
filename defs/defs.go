// Package defs holds the immutable, data-driven per-species bot
// configuration. Definitions are loaded once at startup into a process-wide
// read-only registry and shared by reference; nothing mutates them at
// runtime.
package defs

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// Kind identifies a bot species.
type Kind string

const (
	Mutant   Kind = "mutant"
	Parasite Kind = "parasite"
	Zombie   Kind = "zombie"
)

// Hostility classifies who a species attacks on sight.
type Hostility string

const (
	HostileToEveryone     Hostility = "everyone"
	HostileToOtherSpecies Hostility = "other_species"
	HostileToPlayer       Hostility = "player"
)

// ClipDef describes one animation clip by name and authored length in
// seconds. Clip content lives with the animation host; the core only needs
// timing.
type ClipDef struct {
	Name   string  `yaml:"name"`
	Length float32 `yaml:"length"`
}

// AttackDefinition is one melee animation's combat data.
type AttackDefinition struct {
	Clip ClipDef `yaml:"clip"`
	// HitTime is the authored timestamp of the contact signal within the
	// clip, in unscaled clip seconds.
	HitTime float32 `yaml:"hit_time"`
	Damage  float32 `yaml:"damage"`
	Speed   float32 `yaml:"speed"`
}

// Definition is the full per-species configuration.
type Definition struct {
	Kind                Kind      `yaml:"-"`
	Scale               float32   `yaml:"scale"`
	Health              float32   `yaml:"health"`
	WalkSpeed           float32   `yaml:"walk_speed"`
	CloseCombatDistance float32   `yaml:"close_combat_distance"`
	CanUseWeapons       bool      `yaml:"can_use_weapons"`
	Hostility           Hostility `yaml:"hostility"`
	HeadName            string    `yaml:"head_name"`

	PainSounds   []string `yaml:"pain_sounds"`
	ScreamSounds []string `yaml:"scream_sounds"`
	IdleSounds   []string `yaml:"idle_sounds"`
	AttackSounds []string `yaml:"attack_sounds"`

	IdleClip   ClipDef `yaml:"idle_clip"`
	WalkClip   ClipDef `yaml:"walk_clip"`
	ScreamClip ClipDef `yaml:"scream_clip"`
	AimClip    ClipDef `yaml:"aim_clip"`
	DyingClip  ClipDef `yaml:"dying_clip"`

	Attacks []AttackDefinition `yaml:"attacks"`
}

type table struct {
	Bots map[Kind]*Definition `yaml:"bots"`
}

// Load parses a species table from YAML and validates it.
func Load(data []byte) (map[Kind]*Definition, error) {
	var t table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse bot definitions: %w", err)
	}
	if len(t.Bots) == 0 {
		return nil, fmt.Errorf("parse bot definitions: empty table")
	}
	for kind, def := range t.Bots {
		if def == nil {
			return nil, fmt.Errorf("bot definition %q: empty entry", kind)
		}
		def.Kind = kind
		if err := validate(def); err != nil {
			return nil, fmt.Errorf("bot definition %q: %w", kind, err)
		}
	}
	return t.Bots, nil
}

func validate(def *Definition) error {
	switch def.Hostility {
	case HostileToEveryone, HostileToOtherSpecies, HostileToPlayer:
	default:
		return fmt.Errorf("unknown hostility %q", def.Hostility)
	}
	if def.Health <= 0 {
		return fmt.Errorf("health must be positive, got %v", def.Health)
	}
	if def.WalkSpeed <= 0 {
		return fmt.Errorf("walk_speed must be positive, got %v", def.WalkSpeed)
	}
	if def.CloseCombatDistance <= 0 {
		return fmt.Errorf("close_combat_distance must be positive, got %v", def.CloseCombatDistance)
	}
	if len(def.Attacks) == 0 {
		return fmt.Errorf("at least one attack is required")
	}
	for i, atk := range def.Attacks {
		if atk.Clip.Length <= 0 {
			return fmt.Errorf("attack %d: clip length must be positive", i)
		}
		if atk.HitTime < 0 || atk.HitTime > atk.Clip.Length {
			return fmt.Errorf("attack %d: hit_time %v outside clip length %v", i, atk.HitTime, atk.Clip.Length)
		}
		if atk.Speed <= 0 {
			return fmt.Errorf("attack %d: speed must be positive", i)
		}
	}
	for _, clip := range []ClipDef{def.IdleClip, def.WalkClip, def.ScreamClip, def.DyingClip} {
		if clip.Name == "" || clip.Length <= 0 {
			return fmt.Errorf("clip %q: name and positive length required", clip.Name)
		}
	}
	if def.CanUseWeapons && (def.AimClip.Name == "" || def.AimClip.Length <= 0) {
		return fmt.Errorf("aim_clip required when can_use_weapons is set")
	}
	return nil
}

// Kinds returns the kinds present in a table in a stable order.
func Kinds(defs map[Kind]*Definition) []Kind {
	out := make([]Kind, 0, len(defs))
	for k := range defs {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
