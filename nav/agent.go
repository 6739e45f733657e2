package nav

import (
	"github.com/milk9111/stationfall/common"
)

// Grid is a walkability grid over the XZ plane.
type Grid struct {
	Width    int
	Height   int
	CellSize float32
	Origin   common.Vec3
	Blocked  func(x, y int) bool
}

// Cell maps a world position to grid coordinates.
func (g *Grid) Cell(pos common.Vec3) (int, int) {
	if g == nil || g.CellSize <= 0 {
		return 0, 0
	}
	x := int((pos.X - g.Origin.X) / g.CellSize)
	y := int((pos.Z - g.Origin.Z) / g.CellSize)
	return x, y
}

// Center returns the world position at a cell's center, on the grid plane.
func (g *Grid) Center(x, y int) common.Vec3 {
	if g == nil {
		return common.Vec3{}
	}
	return common.Vec3{
		X: g.Origin.X + (float32(x)+0.5)*g.CellSize,
		Y: g.Origin.Y,
		Z: g.Origin.Z + (float32(y)+0.5)*g.CellSize,
	}
}

// GridAgent steers along A* paths over a grid. It recomputes the path when
// the goal cell moves or a recalc interval elapses, and otherwise follows the
// current waypoint list.
type GridAgent struct {
	grid *Grid

	// RecalcInterval is how long a computed path stays fresh, in seconds.
	RecalcInterval float32
	// MaxNodes caps the A* search.
	MaxNodes int
	// WaypointReach is the distance at which a waypoint counts as reached.
	WaypointReach float32

	path        []Cell
	pathIndex   int
	recalcTimer float32
	lastGoalX   int
	lastGoalY   int
	direction   common.Vec3
}

// NewGridAgent creates an agent over the given grid.
func NewGridAgent(grid *Grid) *GridAgent {
	return &GridAgent{
		grid:           grid,
		RecalcInterval: 0.25,
		MaxNodes:       2000,
		WaypointReach:  0.3,
		lastGoalX:      -1,
		lastGoalY:      -1,
	}
}

// Update recomputes or follows the path and refreshes the desired direction.
func (a *GridAgent) Update(dt float32, position, goal common.Vec3) {
	if a == nil || a.grid == nil {
		return
	}
	a.recalcTimer -= dt

	sx, sy := a.grid.Cell(position)
	gx, gy := a.grid.Cell(goal)
	if a.recalcTimer <= 0 || gx != a.lastGoalX || gy != a.lastGoalY || len(a.path) == 0 {
		a.path = AStar(sx, sy, gx, gy, a.grid.Width, a.grid.Height, a.grid.Blocked, a.MaxNodes)
		a.pathIndex = 0
		a.recalcTimer = a.RecalcInterval
		a.lastGoalX = gx
		a.lastGoalY = gy
	}

	if len(a.path) == 0 {
		// No path; steer straight at the goal and let physics sort it out.
		a.direction = goal.Sub(position).Normalized()
		return
	}

	if a.pathIndex >= len(a.path) {
		a.pathIndex = len(a.path) - 1
	}
	wp := a.grid.Center(a.path[a.pathIndex].X, a.path[a.pathIndex].Y)
	for position.DistanceTo(wp) <= a.WaypointReach && a.pathIndex < len(a.path)-1 {
		a.pathIndex++
		wp = a.grid.Center(a.path[a.pathIndex].X, a.path[a.pathIndex].Y)
	}

	target := wp
	if a.pathIndex == len(a.path)-1 {
		// Final cell: head for the actual goal, not the cell center.
		target = goal
	}
	a.direction = target.Sub(position).Normalized()
}

// Direction returns the latest desired unit direction.
func (a *GridAgent) Direction() common.Vec3 {
	if a == nil {
		return common.Vec3{}
	}
	return a.direction
}

// Path returns the current waypoint list as world positions.
func (a *GridAgent) Path() []common.Vec3 {
	if a == nil || a.grid == nil || len(a.path) == 0 {
		return nil
	}
	out := make([]common.Vec3, len(a.path))
	for i, c := range a.path {
		out[i] = a.grid.Center(c.X, c.Y)
	}
	return out
}
