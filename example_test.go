package silo_test

import (
	"fmt"

	"github.com/TheBitDrifter/silo"
)

// Position is a simple component for 2D coordinates
type Position struct {
	X float64
	Y float64
}

// Velocity is a simple component for 2D movement
type Velocity struct {
	X float64
	Y float64
}

// Player tags the controlled entity
type Player struct {
	Slot uint8
}

// Example shows basic silo usage with entity creation and queries
func Example_basic() {
	world := silo.Factory.NewWorld()

	// Define components
	position := silo.FactoryNewComponent[Position]()
	velocity := silo.FactoryNewComponent[Velocity]()
	player := silo.FactoryNewComponent[Player]()

	// Create entities
	statics, _ := world.NewEntities(5)
	for _, e := range statics {
		position.AddTo(world, e, Position{})
	}
	movers, _ := world.NewEntities(3)
	for _, e := range movers {
		position.AddTo(world, e, Position{})
		velocity.AddTo(world, e, Velocity{X: 1})
	}

	// Create the player
	hero, _ := world.AddEntity()
	position.AddTo(world, hero, Position{X: 10, Y: 20})
	velocity.AddTo(world, hero, Velocity{X: 1, Y: 2})
	player.AddTo(world, hero, Player{Slot: 1})

	// Count entities with position and velocity
	view := silo.Factory.NewView(position.Read(), velocity.Read())
	matchCount := 0
	for range world.Query(view) {
		matchCount++
	}
	fmt.Printf("Found %d entities with position and velocity\n", matchCount)

	// Move the player
	view = silo.Factory.NewView(position.Write(), velocity.Read(), player.Read())
	cursor := silo.Factory.NewCursor(view, world)
	for cursor.Next() {
		pos := position.GetFromCursor(cursor)
		vel := velocity.ReadFromCursor(cursor)
		slot := player.ReadFromCursor(cursor).Slot

		pos.X += vel.X
		pos.Y += vel.Y

		fmt.Printf("Moved player %d to position (%.1f, %.1f)\n", slot, pos.X, pos.Y)
	}

	// Output:
	// Found 4 entities with position and velocity
	// Moved player 1 to position (11.0, 22.0)
}

// Example_queries shows how to narrow a view with query operations
func Example_queries() {
	world := silo.Factory.NewWorld()

	position := silo.FactoryNewComponent[Position]()
	velocity := silo.FactoryNewComponent[Velocity]()
	player := silo.FactoryNewComponent[Player]()

	spawn := func(n int, withVelocity, withPlayer bool) {
		ids, _ := world.NewEntities(n)
		for _, e := range ids {
			position.AddTo(world, e, Position{})
			if withVelocity {
				velocity.AddTo(world, e, Velocity{})
			}
			if withPlayer {
				player.AddTo(world, e, Player{})
			}
		}
	}
	spawn(3, false, false)
	spawn(3, true, false)
	spawn(3, false, true)
	spawn(3, true, true)

	query := silo.Factory.NewQuery()

	// AND query: entities with position AND velocity
	view := silo.Factory.NewView(position.Read()).Where(query.And(position, velocity))
	cursor := silo.Factory.NewCursor(view, world)
	fmt.Printf("AND query matched %d entities\n", cursor.TotalMatched())

	// OR query: entities with velocity OR player
	view = silo.Factory.NewView(position.Read()).Where(query.Or(velocity, player))
	cursor = silo.Factory.NewCursor(view, world)
	fmt.Printf("OR query matched %d entities\n", cursor.TotalMatched())

	// NOT query: entities with position but NOT velocity
	view = silo.Factory.NewView(position.Read()).Where(query.Not(velocity))
	cursor = silo.Factory.NewCursor(view, world)
	fmt.Printf("NOT query matched %d entities\n", cursor.TotalMatched())

	// Output:
	// AND query matched 6 entities
	// OR query matched 9 entities
	// NOT query matched 6 entities
}

// Example_deferred shows structural changes queued while a query runs
func Example_deferred() {
	world := silo.Factory.NewWorld()
	position := silo.FactoryNewComponent[Position]()

	ids, _ := world.NewEntities(4)
	for i, e := range ids {
		position.AddTo(world, e, Position{X: float64(i)})
	}

	view := silo.Factory.NewView(position.Read())
	for row := range world.Query(view) {
		if position.ReadFromRow(row).X >= 2 {
			if err := world.RemoveEntity(row.Entity()); err != nil {
				fmt.Println("Direct removal:", err)
			}
			world.EnqueueRemoveEntities(row.Entity())
		}
	}
	fmt.Printf("%d entities remain\n", world.Len())

	// Output:
	// Direct removal: world is currently locked
	// Direct removal: world is currently locked
	// 2 entities remain
}
