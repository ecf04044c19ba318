package matrix_test

import (
	"fmt"

	"github.com/katalvlaran/temporalis/matrix"
)

// ExampleSolve computes the supply of a two-process chain: one unit of A
// needs two units of B.
func ExampleSolve() {
	a, _ := matrix.NewIdentity(2)
	_ = a.Set(1, 0, -2)

	supply, err := matrix.Solve(a, []float64{1, 0})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(supply)
	// Output: [1 2]
}
