package main

import (
	"github.com/architeacher/device-tracker/internal/runtime"
)

func main() {
	runtime.New().Run()
}
