package anim

import "testing"

func testClip() Clip {
	return Clip{
		Name:    "attack.anim",
		Length:  1.0,
		Signals: []Signal{{ID: "hit", Time: 0.5}},
	}
}

func TestPlaybackAdvance(t *testing.T) {
	cases := []struct {
		name      string
		speed     float32
		steps     int
		dt        float32
		wantEnded bool
	}{
		{"half_way", 1.0, 5, 0.1, false},
		{"exact_end", 1.0, 10, 0.1, true},
		{"fast", 2.0, 5, 0.1, true},
		{"slow", 0.5, 10, 0.1, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := NewPlayback(testClip())
			p.SetEnabled(true).SetSpeed(c.speed)
			for i := 0; i < c.steps; i++ {
				p.Update(c.dt)
			}
			if p.HasEnded() != c.wantEnded {
				t.Fatalf("expected ended=%v at pos %v", c.wantEnded, p.Position())
			}
		})
	}
}

func TestPlaybackDisabledDoesNotAdvance(t *testing.T) {
	p := NewPlayback(testClip())
	p.Update(0.5)
	if p.Position() != 0 {
		t.Fatalf("disabled playback moved to %v", p.Position())
	}
}

func TestPlaybackRewind(t *testing.T) {
	p := NewPlayback(testClip())
	p.SetEnabled(true)
	for i := 0; i < 12; i++ {
		p.Update(0.1)
	}
	if !p.HasEnded() {
		t.Fatalf("expected ended")
	}
	p.Rewind()
	if p.HasEnded() || p.Position() != 0 {
		t.Fatalf("rewind did not reset: pos=%v", p.Position())
	}
}

func TestPlaybackSignals(t *testing.T) {
	t.Run("emitted_once_when_crossed", func(t *testing.T) {
		p := NewPlayback(testClip())
		p.SetEnabled(true)
		var events []Event
		for i := 0; i < 10; i++ {
			p.Update(0.1)
			for {
				ev, ok := p.PopEvent()
				if !ok {
					break
				}
				events = append(events, ev)
			}
		}
		if len(events) != 1 || events[0].Signal != "hit" {
			t.Fatalf("expected one hit event, got %v", events)
		}
	})

	t.Run("not_emitted_before_timestamp", func(t *testing.T) {
		p := NewPlayback(testClip())
		p.SetEnabled(true)
		p.Update(0.4)
		if _, ok := p.PopEvent(); ok {
			t.Fatalf("signal emitted early at pos %v", p.Position())
		}
	})

	t.Run("speed_scales_signal_timing", func(t *testing.T) {
		p := NewPlayback(testClip())
		p.SetEnabled(true).SetSpeed(1.3)
		p.Update(0.3)
		if _, ok := p.PopEvent(); ok {
			t.Fatalf("signal emitted early")
		}
		p.Update(0.1)
		if _, ok := p.PopEvent(); !ok {
			t.Fatalf("signal not emitted after crossing at speed 1.3")
		}
	})

	t.Run("loop_emits_each_cycle", func(t *testing.T) {
		clip := testClip()
		clip.Loop = true
		p := NewPlayback(clip)
		p.SetEnabled(true)
		count := 0
		for i := 0; i < 25; i++ {
			p.Update(0.1)
			for {
				if _, ok := p.PopEvent(); !ok {
					break
				}
				count++
			}
		}
		if count != 3 {
			t.Fatalf("expected 3 emissions over 2.5 looped seconds, got %d", count)
		}
	})

	t.Run("queue_is_bounded", func(t *testing.T) {
		clip := testClip()
		clip.Loop = true
		p := NewPlayback(clip)
		p.SetEnabled(true)
		for i := 0; i < 50*maxQueuedEvents; i++ {
			p.Update(0.1)
		}
		drained := 0
		for {
			if _, ok := p.PopEvent(); !ok {
				break
			}
			drained++
		}
		if drained > maxQueuedEvents {
			t.Fatalf("queue grew past cap: %d", drained)
		}
	})
}

func TestMachine(t *testing.T) {
	idle := NewPlayback(Clip{Name: "idle", Length: 1, Loop: true})
	walk := NewPlayback(Clip{Name: "walk", Length: 1, Loop: true})
	dead := NewPlayback(Clip{Name: "dead", Length: 1})

	m := NewMachine("idle", map[string]*Playback{
		"idle": idle,
		"walk": walk,
		"dead": dead,
	})

	if m.Active() != "idle" || !idle.Enabled() {
		t.Fatalf("initial state not applied")
	}

	m.Transition("walk", true)
	if m.Active() != "walk" {
		t.Fatalf("expected walk, got %q", m.Active())
	}
	if idle.Enabled() || !walk.Enabled() {
		t.Fatalf("playback enable flags wrong after transition")
	}

	// Transition to the same state is a no-op.
	walk.Update(0.5)
	m.Transition("walk", true)
	if walk.Position() != 0.5 {
		t.Fatalf("same-state transition rewound the clip")
	}

	// Without rewind the new clip keeps its position.
	dead.SetEnabled(true)
	dead.Update(0.25)
	dead.SetEnabled(false)
	m.Transition("dead", false)
	if dead.Position() != 0.25 {
		t.Fatalf("no-rewind transition moved the clip to %v", dead.Position())
	}

	m.Update(0.1)
	if dead.Position() <= 0.25 {
		t.Fatalf("machine update did not advance active playback")
	}
}
