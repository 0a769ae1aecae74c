// Package vehicle builds descriptions from independently named parts.
package vehicle

import "fmt"

// Car composes two describers instead of inheriting from either.
type Car struct {
	Machine     func() string
	FourWheeler func() string
}

// NewCar creates a Car with the default describers.
func NewCar() Car {
	return Car{
		Machine:     func() string { return "Machine" },
		FourWheeler: func() string { return "Four wheeler" },
	}
}

// Describe joins both parts into one sentence.
func (c Car) Describe() string {
	return fmt.Sprintf("I am a %s Car with %s", c.FourWheeler(), c.Machine())
}
