package account

// SetHashCostForTest lowers the bcrypt cost so tests stay fast.
func SetHashCostForTest(cost int) func() {
	prev := hashCost
	hashCost = cost
	return func() { hashCost = prev }
}
