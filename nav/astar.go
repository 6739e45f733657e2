// Package nav provides a grid-based navigation agent. The core consumes it
// through the world.Navigator contract; hosts with a real navmesh supply
// their own implementation.
package nav

import "container/heap"

// Cell is a grid cell in a path.
type Cell struct {
	X int
	Y int
}

// AStar finds a path from start to goal on a 4-way unit-cost grid.
// isBlocked reports cells that cannot be traversed. maxNodes caps how many
// cells the search expands so a sealed-off goal cannot stall a tick.
func AStar(startX, startY, goalX, goalY, width, height int, isBlocked func(x, y int) bool, maxNodes int) []Cell {
	if width <= 0 || height <= 0 {
		return nil
	}
	if startX == goalX && startY == goalY {
		return []Cell{{X: startX, Y: startY}}
	}
	if startX < 0 || startY < 0 || startX >= width || startY >= height {
		return nil
	}
	if goalX < 0 || goalY < 0 || goalX >= width || goalY >= height {
		return nil
	}
	if isBlocked != nil && isBlocked(goalX, goalY) {
		return nil
	}

	start := startY*width + startX
	goal := goalY*width + goalX

	const unseen = -1
	cost := make([]int, width*height)
	for i := range cost {
		cost[i] = unseen
	}
	parent := make([]int, width*height)
	cost[start] = 0
	parent[start] = start

	open := &searchQueue{{idx: start, cost: 0, rank: manhattan(startX, startY, goalX, goalY)}}
	heap.Init(open)

	expanded := 0
	for open.Len() > 0 && expanded < maxNodes {
		cur := heap.Pop(open).(searchNode)
		if cur.cost > cost[cur.idx] {
			continue // a cheaper route to this cell was queued later
		}
		if cur.idx == goal {
			return walkBack(parent, start, goal, width)
		}
		expanded++

		cx := cur.idx % width
		cy := cur.idx / width
		for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			nx, ny := cx+d[0], cy+d[1]
			if nx < 0 || ny < 0 || nx >= width || ny >= height {
				continue
			}
			if isBlocked != nil && isBlocked(nx, ny) {
				continue
			}
			ni := ny*width + nx
			nc := cur.cost + 1
			if cost[ni] != unseen && nc >= cost[ni] {
				continue
			}
			cost[ni] = nc
			parent[ni] = cur.idx
			heap.Push(open, searchNode{idx: ni, cost: nc, rank: nc + manhattan(nx, ny, goalX, goalY)})
		}
	}
	return nil
}

// walkBack follows parent links from the goal to the start, then reverses.
func walkBack(parent []int, start, goal, width int) []Cell {
	var rev []Cell
	for idx := goal; ; idx = parent[idx] {
		rev = append(rev, Cell{X: idx % width, Y: idx / width})
		if idx == start {
			break
		}
	}
	path := make([]Cell, len(rev))
	for i, c := range rev {
		path[len(rev)-1-i] = c
	}
	return path
}

func manhattan(x1, y1, x2, y2 int) int {
	dx := x1 - x2
	if dx < 0 {
		dx = -dx
	}
	dy := y1 - y2
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// searchNode is an open-set entry. Stale entries are skipped on pop by
// comparing against the best known cost.
type searchNode struct {
	idx  int
	cost int
	rank int
}

type searchQueue []searchNode

func (q searchQueue) Len() int           { return len(q) }
func (q searchQueue) Less(i, j int) bool { return q[i].rank < q[j].rank }
func (q searchQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }

func (q *searchQueue) Push(x any) { *q = append(*q, x.(searchNode)) }

func (q *searchQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}
