package ir

import "fmt"

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

// newValidationError creates a new ValidationError.
func newValidationError(path, message string) error {
	return &ValidationError{Path: path, Message: message}
}

// ValidRepeat reports whether r is an allowed repeat count.
func ValidRepeat(r int64) bool {
	return r >= RepeatIndefinite
}

// Validate checks a tree and returns all validation errors. Paths look like
// "seq/par[1]/media[0]".
func Validate(root Node) []error {
	if root == nil {
		return []error{newValidationError("", "tree is empty")}
	}
	var errs []error
	validateNode(root, root.Kind().String(), &errs)
	return errs
}

func validateNode(n Node, path string, errs *[]error) {
	if !ValidRepeat(n.RepeatCount()) {
		*errs = append(*errs, newValidationError(path,
			fmt.Sprintf("invalid repeat count %d", n.RepeatCount())))
	}
	// Blank locators are valid; exporters drop them.
	if _, ok := n.(*Media); ok {
		return
	}
	for i, child := range Children(n) {
		if child == nil {
			*errs = append(*errs, newValidationError(fmt.Sprintf("%s/[%d]", path, i), "nil child"))
			continue
		}
		validateNode(child, fmt.Sprintf("%s/%s[%d]", path, child.Kind(), i), errs)
	}
}
