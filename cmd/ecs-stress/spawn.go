package main

import (
	"math/rand"

	"github.com/plus3/kiln/ecs"
)

// SpawnRandomEntity spawns an entity holding numComponents distinct
// generated components and joins it to every generated system. Systems skip
// members that lack the components they read or write.
func SpawnRandomEntity(w *ecs.World, rng *rand.Rand, numComponents int) ecs.EntityId {
	id := w.Spawn("Stress")
	for _, c := range rng.Perm(componentCount)[:min(numComponents, componentCount)] {
		spawners[c](w, id, rng)
	}
	for _, name := range systemNames {
		w.JoinSystem(id, name)
	}
	return id
}

// churn destroys up to n random live members of the first system and queues as
// many replacements, exercising reclamation and deferred spawns.
func churn(w *ecs.World, cmds *ecs.Commands, rng *rand.Rand, n int) {
	members := w.Systems.Get(systemNames[0]).Base().Entities()
	for _, i := range rng.Perm(len(members))[:min(n, len(members))] {
		if w.Get(members[i]).IsPendingDestroy() {
			continue
		}
		cmds.Destroy(members[i])
		cmds.Defer(func() {
			SpawnRandomEntity(w, rng, rng.Intn(5)+1)
		})
	}
}
