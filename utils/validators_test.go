package utils

import "testing"

func TestValidateTimeOfDay(t *testing.T) {
	valid := []string{"00:00", "08:30", "17:00", "23:59"}
	for _, s := range valid {
		if !ValidateTimeOfDay(s) {
			t.Errorf("%q should be a valid time of day", s)
		}
	}

	invalid := []string{"", "24:00", "7:5:0", "noon", "17:60", "170:0"}
	for _, s := range invalid {
		if ValidateTimeOfDay(s) {
			t.Errorf("%q should be rejected", s)
		}
	}
}
