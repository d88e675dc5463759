package logic

// EvaluateRoot evaluates the graph rooted at root against the current
// activation state of its owner. Nothing is cached between calls.
//
// It panics with an *InvalidEvaluationError if root is not valid.
func EvaluateRoot(root Node) bool {
	if root == nil {
		panic(&InvalidEvaluationError{})
	}
	MustBeValid(root)
	return root.Evaluate()
}

// MustBeValid panics with an *InvalidEvaluationError if n is not valid.
// Gate implementations call it first thing in Evaluate.
func MustBeValid(n Node) {
	if !n.IsValid() {
		panic(&InvalidEvaluationError{GUID: n.GUID()})
	}
}
