package defs

import (
	"errors"
	"strings"
	"testing"
)

const minimalTable = `
bots:
  mutant:
    scale: 1.0
    health: 100
    walk_speed: 1.0
    close_combat_distance: 1.0
    can_use_weapons: false
    hostility: player
    head_name: "Head"
    pain_sounds: [pain.ogg]
    attack_sounds: [swing.ogg]
    idle_clip: { name: idle.anim, length: 1.0 }
    walk_clip: { name: walk.anim, length: 1.0 }
    scream_clip: { name: scream.anim, length: 1.0 }
    dying_clip: { name: dying.anim, length: 1.0 }
    attacks:
      - clip: { name: attack.anim, length: 1.0 }
        hit_time: 0.5
        damage: 20
        speed: 1.3
`

func TestLoad(t *testing.T) {
	t.Run("minimal", func(t *testing.T) {
		defs, err := Load([]byte(minimalTable))
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		def, ok := defs[Mutant]
		if !ok {
			t.Fatalf("expected mutant entry")
		}
		if def.Kind != Mutant {
			t.Fatalf("expected kind filled in, got %q", def.Kind)
		}
		if def.Health != 100 || def.Attacks[0].Damage != 20 {
			t.Fatalf("unexpected values: %+v", def)
		}
	})

	t.Run("embedded_table", func(t *testing.T) {
		data, err := defaultFS.ReadFile("bots.yaml")
		if err != nil {
			t.Fatalf("embedded table missing: %v", err)
		}
		defs, err := Load(data)
		if err != nil {
			t.Fatalf("embedded table invalid: %v", err)
		}
		for _, kind := range []Kind{Mutant, Parasite, Zombie} {
			if _, ok := defs[kind]; !ok {
				t.Fatalf("embedded table missing %q", kind)
			}
		}
		if !defs[Zombie].CanUseWeapons {
			t.Fatalf("zombie should be armed")
		}
		if defs[Zombie].AimClip.Length <= 0 {
			t.Fatalf("armed species needs an aim clip")
		}
	})

	rejects := []struct {
		name    string
		mutate  func(string) string
		wantErr string
	}{
		{
			name:    "bad_hostility",
			mutate:  func(s string) string { return strings.Replace(s, "hostility: player", "hostility: nobody", 1) },
			wantErr: "hostility",
		},
		{
			name:    "no_attacks",
			mutate:  func(s string) string { return s[:strings.Index(s, "    attacks:")] },
			wantErr: "attack",
		},
		{
			name:    "hit_time_outside_clip",
			mutate:  func(s string) string { return strings.Replace(s, "hit_time: 0.5", "hit_time: 2.5", 1) },
			wantErr: "hit_time",
		},
		{
			name:    "zero_health",
			mutate:  func(s string) string { return strings.Replace(s, "health: 100", "health: 0", 1) },
			wantErr: "health",
		},
		{
			name:    "empty",
			mutate:  func(string) string { return "bots: {}" },
			wantErr: "empty",
		},
	}

	for _, c := range rejects {
		t.Run(c.name, func(t *testing.T) {
			_, err := Load([]byte(c.mutate(minimalTable)))
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), c.wantErr) {
				t.Fatalf("expected error mentioning %q, got %v", c.wantErr, err)
			}
		})
	}
}

func TestRegistry(t *testing.T) {
	t.Cleanup(Reset)

	Reset()
	if _, err := Get(Mutant); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind before init, got %v", err)
	}

	defs, err := Load([]byte(minimalTable))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if err := Init(defs); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	def, err := Get(Mutant)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if def.Kind != Mutant {
		t.Fatalf("unexpected definition: %+v", def)
	}

	if _, err := Get(Zombie); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind for missing kind, got %v", err)
	}

	if got := All(); len(got) != 1 || got[0] != Mutant {
		t.Fatalf("unexpected kinds: %v", got)
	}

	Reset()
	if _, err := Get(Mutant); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind after reset, got %v", err)
	}
}

func TestInitDefault(t *testing.T) {
	t.Cleanup(Reset)
	if err := InitDefault(); err != nil {
		t.Fatalf("init default failed: %v", err)
	}
	if len(All()) != 3 {
		t.Fatalf("expected 3 shipped species, got %v", All())
	}
}
