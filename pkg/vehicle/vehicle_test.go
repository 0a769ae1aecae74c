package vehicle

import "testing"

func TestCar_Describe(t *testing.T) {
	tests := []struct {
		name string
		car  Car
		want string
	}{
		{"defaults", NewCar(), "I am a Four wheeler Car with Machine"},
		{
			"replaced part",
			Car{
				Machine:     func() string { return "Engine" },
				FourWheeler: NewCar().FourWheeler,
			},
			"I am a Four wheeler Car with Engine",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.car.Describe(); got != tt.want {
				t.Errorf("Describe() = %q, want %q", got, tt.want)
			}
		})
	}
}
