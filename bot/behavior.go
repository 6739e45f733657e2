package bot

import (
	"github.com/milk9111/stationfall/bt"
	"github.com/milk9111/stationfall/defs"
)

type node = bt.Node[TickContext]

func leaf(l bt.Leaf[TickContext]) *node { return bt.NewLeaf(l) }
func sequence(children ...*node) *node  { return bt.Sequence(children...) }
func selector(children ...*node) *node  { return bt.Selector(children...) }

// newBehaviorTree builds the fixed per-species decision tree. The whole tree
// re-evaluates from the root every tick; leaves that span ticks carry their
// own timers.
func newBehaviorTree(def *defs.Definition) *bt.Tree[TickContext] {
	branches := []*node{
		leaf(&threatenTarget{}),
		sequence(
			leaf(isTargetCloseBy{}),
			leaf(canMeleeAttack{}),
			leaf(&doMeleeAttack{}),
		),
	}
	if def.CanUseWeapons {
		branches = append(branches, sequence(
			leaf(canUseWeapon{}),
			leaf(&aimAndShoot{}),
		))
	}
	branches = append(branches, leaf(moveToTarget{}))

	return bt.NewTree(sequence(
		leaf(findTarget{}),
		selector(branches...),
	))
}
