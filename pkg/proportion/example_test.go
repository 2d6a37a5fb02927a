package proportion_test

import (
	"fmt"

	"github.com/matzehuels/sharechart/pkg/proportion"
)

func ExampleNormalize() {
	items := proportion.Series{
		{Name: "Police", Value: 1},
		{Name: "Parks", Value: 1},
		{Name: "Roads", Value: 1},
	}
	for _, it := range proportion.Normalize(items) {
		fmt.Printf("%s %d%%\n", it.Name, it.Percent)
	}
	// Output:
	// Police 34%
	// Parks 33%
	// Roads 33%
}

func ExampleBuildPieGeometry() {
	items := proportion.Normalize(proportion.Series{
		{Name: "Residential", Value: 75},
		{Name: "Commercial", Value: 25},
	})
	wedges, err := proportion.BuildPieGeometry(items, proportion.NewPieConfig(180, 216))
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, w := range wedges {
		fmt.Printf("%s %.4f %.4f %d %s\n", w.Item.Name, w.Slice.StartAngle, w.Slice.EndAngle, w.Slice.LargeArc, w.Label.Side)
	}
	// Output:
	// Residential -1.5708 3.1416 1 start
	// Commercial 3.1416 4.7124 0 end
}

func ExampleScaleFraction() {
	fill, err := proportion.ScaleFraction(42, 35)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("%.0f%%\n", fill)

	_, err = proportion.ScaleFraction(42, 0)
	fmt.Println(err)
	// Output:
	// 120%
	// INVALID_CONFIGURATION: scale max must be a positive number, got 0
}
