package nav

import (
	"testing"

	"github.com/milk9111/stationfall/common"
)

func TestAStar(t *testing.T) {
	cases := []struct {
		name     string
		blocked  map[Cell]bool
		start    Cell
		goal     Cell
		wantPath bool
	}{
		{
			name:     "open_grid",
			start:    Cell{0, 0},
			goal:     Cell{4, 4},
			wantPath: true,
		},
		{
			name: "around_wall",
			blocked: map[Cell]bool{
				{2, 0}: true, {2, 1}: true, {2, 2}: true, {2, 3}: true,
			},
			start:    Cell{0, 2},
			goal:     Cell{4, 2},
			wantPath: true,
		},
		{
			name: "fully_walled",
			blocked: map[Cell]bool{
				{2, 0}: true, {2, 1}: true, {2, 2}: true, {2, 3}: true, {2, 4}: true,
			},
			start:    Cell{0, 2},
			goal:     Cell{4, 2},
			wantPath: false,
		},
		{
			name:     "same_cell",
			start:    Cell{1, 1},
			goal:     Cell{1, 1},
			wantPath: true,
		},
		{
			name:     "goal_out_of_bounds",
			start:    Cell{0, 0},
			goal:     Cell{9, 9},
			wantPath: false,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			isBlocked := func(x, y int) bool { return c.blocked[Cell{x, y}] }
			path := AStar(c.start.X, c.start.Y, c.goal.X, c.goal.Y, 5, 5, isBlocked, 2000)
			if c.wantPath && len(path) == 0 {
				t.Fatalf("expected a path")
			}
			if !c.wantPath && len(path) != 0 {
				t.Fatalf("expected no path, got %v", path)
			}
			if len(path) > 0 {
				if path[0] != c.start {
					t.Fatalf("path should start at %v, got %v", c.start, path[0])
				}
				if path[len(path)-1] != c.goal {
					t.Fatalf("path should end at %v, got %v", c.goal, path[len(path)-1])
				}
				for i := 1; i < len(path); i++ {
					dx := path[i].X - path[i-1].X
					dy := path[i].Y - path[i-1].Y
					if dx*dx+dy*dy != 1 {
						t.Fatalf("non-adjacent step %v -> %v", path[i-1], path[i])
					}
					if c.blocked[path[i]] {
						t.Fatalf("path crosses blocked cell %v", path[i])
					}
				}
			}
		})
	}
}

func TestGridAgent(t *testing.T) {
	grid := &Grid{Width: 10, Height: 10, CellSize: 1, Blocked: func(x, y int) bool { return false }}
	agent := NewGridAgent(grid)

	pos := common.Vec3{X: 0.5, Z: 0.5}
	goal := common.Vec3{X: 8.5, Z: 0.5}
	agent.Update(0.016, pos, goal)

	dir := agent.Direction()
	if dir.X <= 0 {
		t.Fatalf("expected direction toward +X, got %+v", dir)
	}
	if len(agent.Path()) == 0 {
		t.Fatalf("expected a path")
	}

	// Arriving at the goal cell steers at the goal itself.
	arrived := NewGridAgent(grid)
	near := common.Vec3{X: 8.0, Z: 0.5}
	arrived.Update(0.016, near, goal)
	dir = arrived.Direction()
	if dir.X <= 0.9 {
		t.Fatalf("expected nearly straight +X at goal cell, got %+v", dir)
	}
}
