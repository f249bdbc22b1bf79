package client

// SandboxNumbers are well-known MSISDNs the sandbox environment recognizes,
// keyed by country. Success numbers complete immediately; failure numbers
// fail after acceptance, which is useful for exercising callback handling.
type SandboxNumbers struct {
	Success map[string]string
	Failure map[string]string
}

// SandboxTestNumbers returns the sandbox test phone numbers.
func SandboxTestNumbers() SandboxNumbers {
	return SandboxNumbers{
		Success: map[string]string{
			"ghana":    "233540000001",
			"kenya":    "254700000001",
			"uganda":   "256700000001",
			"tanzania": "255700000001",
			"rwanda":   "250700000001",
		},
		Failure: map[string]string{
			"ghana":    "233540000002",
			"kenya":    "254700000002",
			"uganda":   "256700000002",
			"tanzania": "255700000002",
			"rwanda":   "250700000002",
		},
	}
}
