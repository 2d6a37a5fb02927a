package pie_test

import (
	"fmt"

	"github.com/matzehuels/sharechart/pkg/proportion"
	"github.com/matzehuels/sharechart/pkg/render/pie"
)

func ExampleBuild() {
	l, err := pie.Build(proportion.Series{
		{Name: "Property tax", Value: 620},
		{Name: "User fees", Value: 250},
		{Name: "Grants", Value: 130},
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	for i, w := range l.Wedges {
		fmt.Printf("%s %s %s\n", pie.LabelText(w.Item), l.Colors[i], w.Label.Side)
	}
	// Output:
	// Property tax 62% #9b87d3 start
	// User fees 25% #1f77b4 end
	// Grants 13% #d62728 end
}
