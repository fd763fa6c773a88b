package strain

// Accumulate integrates a strain rate over one time step with the trapezoidal
// rule. deltaTime is the unsigned step length in My.
func Accumulate(total, prevRate, currRate Strain, deltaTime float64) Strain {
	return total.Add(prevRate.Add(currRate).Scale(0.5 * deltaTime))
}
