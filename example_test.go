package arkiv_test

import (
	"fmt"
	"log"

	"github.com/hupe1980/arkiv"
)

func ExampleMarshal() {
	typ := arkiv.SliceOf(arkiv.Uint32)

	data, err := arkiv.Marshal(typ, []uint32{10, 20, 30})
	if err != nil {
		log.Fatal(err)
	}

	view, err := arkiv.Access(typ, data)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(view.Len(), view.At(1))
	// Output: 3 20
}

func ExampleAccess_untrusted() {
	typ := arkiv.SliceOf(arkiv.String)

	data, err := arkiv.Marshal(typ, []string{"alpha", "beta"})
	if err != nil {
		log.Fatal(err)
	}

	// Flip a byte in the header, as a hostile sender might.
	data[len(data)-1] ^= 0xFF

	if _, err := arkiv.Access(typ, data); err != nil {
		fmt.Println("rejected")
	}
	// Output: rejected
}

func ExampleMapOf() {
	typ := arkiv.MapOf(arkiv.String, arkiv.Uint32)

	data, err := arkiv.Marshal(typ, map[string]uint32{"a": 1, "b": 2})
	if err != nil {
		log.Fatal(err)
	}

	view, err := arkiv.Access(typ, data)
	if err != nil {
		log.Fatal(err)
	}

	v, ok := view.Get("b")
	fmt.Println(v, ok)
	// Output: 2 true
}
