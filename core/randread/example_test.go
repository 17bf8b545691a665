package randread_test

import (
	"fmt"
	"io"
	"log"

	"github.com/FocuswithJustin/randread/core/randread"
)

func ExampleNewBuffer() {
	r := randread.NewBuffer([]byte("hello world"))
	defer r.Close()

	if err := r.Seek(6); err != nil {
		log.Fatal(err)
	}

	buf := make([]byte, 16)
	n, err := r.Read(buf)
	if err != nil && err != io.EOF {
		log.Fatal(err)
	}

	fmt.Println(string(buf[:n]))
	// Output: world
}

func ExampleBuffer_CreateView() {
	r := randread.NewBuffer([]byte("hello world"))
	defer r.Close()

	v, err := r.CreateView(0, 5)
	if err != nil {
		log.Fatal(err)
	}
	defer v.Close()

	buf := make([]byte, 16)
	n, err := v.Read(buf)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(string(buf[:n]))
	// Output: hello
}
