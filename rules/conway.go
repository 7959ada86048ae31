package rules

/*
ApplyConwayRules applies Conway's Game of Life rules to determine the next state of a cell.

Conway's Game of Life rules (B3/S23): (alive && neighbors == 2) || neighbors == 3
*/
func ApplyConwayRules(neighbors int, alive bool) bool {
	return (alive && neighbors == 2) || neighbors == 3
}

// ShouldSwitch reports whether a cell flips its state in the next generation:
// a live cell dies with fewer than 2 or more than 3 live neighbors, a dead
// cell is born with exactly 3.
func ShouldSwitch(alive bool, neighbors int) bool {
	return ApplyConwayRules(neighbors, alive) != alive
}
