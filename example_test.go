package bspp_test

import (
	"fmt"

	"github.com/sansecio/bspp"
	"github.com/sansecio/bspp/env"
)

func ExampleProcess() {
	e := env.New(env.Builtins(), map[string]string{"DEBUG": "true"})

	src := `let greeting = "hello"
#if DEBUG then
let () = print_endline greeting
#end
`
	out, err := bspp.Process("example.ml", src, e)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(out)
	// Output:
	// let greeting = "hello"
	// let () = print_endline greeting
}
