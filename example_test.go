package rql_test

import (
	"fmt"

	"github.com/petal-labs/rql"
)

func ExampleValidator_Validate() {
	v := rql.NewValidator(rql.ValidatorConfig{
		Diagnostic: func(msg string) { fmt.Println("diagnostic:", msg) },
	})

	fmt.Println(v.Validate("or(and(eq(name,John),eq(surname,Doe)),eq(surname,Smith))"))
	fmt.Println(v.Validate("and(eq(name,John))"))
	// Output:
	// true
	// diagnostic: Node 'and' should have at least 2 nested nodes
	// false
}

func ExampleExtractNodes() {
	nodes, _ := rql.ExtractNodes("not(in(name,(John,Liam)))")
	for _, n := range rql.AnnotateNestedCount(nodes) {
		fmt.Println(n)
	}
	// Output:
	// not(...)@1[1]
	// in(...)@2[1]
	// name(John,Liam)@3
}
