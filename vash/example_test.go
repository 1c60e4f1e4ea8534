package vash_test

import (
	"fmt"
	"strings"

	"github.com/okavatti/vash/vash"
)

func ExampleRender() {
	pix, tree, err := vash.Render(vash.Algorithm11, nil, strings.NewReader("hello"), 32, 16)
	if err != nil {
		panic(err)
	}
	fmt.Println(len(pix), tree.Root().Op())
	// Output: 1536 RGB
}

func ExampleKnownAlgorithms() {
	for _, info := range vash.KnownAlgorithms() {
		fmt.Println(info.Name, info.Deprecated)
	}
	// Output:
	// 1.1 false
	// 1 true
	// 1-fast true
}
