// Profiling:
// go build ./profile/query
// go tool pprof -http=":8000" -nodefraction=0.001 ./query mem.pprof

package main

import (
	"github.com/TheBitDrifter/silo"
	"github.com/pkg/profile"
)

type comp1 struct {
	V int64
	W int64
}

type comp2 struct {
	V int64
	W int64
}

var (
	c1 = silo.FactoryNewComponent[comp1]()
	c2 = silo.FactoryNewComponent[comp2]()
)

func main() {
	count := 20
	iters := 1000
	entities := 1000
	p := profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
	run(count, iters, entities)
	p.Stop()
}

func run(rounds, iters, numEntities int) {
	for range rounds {
		w := silo.Factory.NewWorld()
		view := silo.Factory.NewView(c1.Write(), c2.Read())

		for range iters {
			ids, _ := w.NewEntities(numEntities)
			for _, id := range ids {
				c1.AddTo(w, id, comp1{V: 1})
				c2.AddTo(w, id, comp2{V: 1, W: 1})
			}
			for row := range w.Query(view) {
				a := c1.GetFromRow(row)
				b := c2.ReadFromRow(row)
				a.V += b.V
				a.W += b.W
				w.EnqueueRemoveEntities(row.Entity())
			}
		}
		_ = w.Close()
	}
}
