package convolution_test

import (
	"fmt"

	"github.com/katalvlaran/temporalis/convolution"
)

// ExampleConvolve spreads a release of 10 units over two relative offsets.
func ExampleConvolve() {
	release := convolution.Series{Basis: convolution.Relative, Times: []int64{0, 60}, Amounts: []float64{4, 6}}
	delay := convolution.Series{Basis: convolution.Relative, Times: []int64{0, 60}, Amounts: []float64{0.5, 0.5}}

	out, err := convolution.Convolve(release, delay)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(out.Times, out.Amounts)
	// Output: [0 60 120] [2 5 3]
}

// ExampleConsolidate merges colliding keys and drops cancelled ones.
func ExampleConsolidate() {
	keys, amounts, _ := convolution.Consolidate([]int64{3, 1, 3, 2, 2}, []float64{1, 1, 1, 5, -5})
	fmt.Println(keys, amounts)
	// Output: [1 3] [1 2]
}
