package compiler

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/fluxgraph/fluxgraph/fxerr"
	"github.com/fluxgraph/fluxgraph/signal"
)

// conditionPattern matches "<signal_path> <op> <number>", the only rule
// condition syntax the compiler supports.
var conditionPattern = regexp.MustCompile(`^([A-Za-z0-9_./-]+)\s*(<=|>=|==|!=|<|>)\s*([-+]?(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?)$`)

// conditionFunc evaluates a compiled rule condition against the live
// signal store.
type conditionFunc func(*signal.Store) bool

// compileCondition parses expr into a closure over a single interned
// signal and comparison. ruleID is carried only for the error message.
func compileCondition(expr string, ns *signal.Namespace, ruleID string) (conditionFunc, error) {
	trimmed := strings.TrimSpace(expr)
	match := conditionPattern.FindStringSubmatch(trimmed)
	if match == nil {
		return nil, &fxerr.BadRuleCondition{RuleID: ruleID}
	}

	signalPath := match[1]
	op := match[2]
	rhs, err := strconv.ParseFloat(match[3], 64)
	if err != nil {
		return nil, &fxerr.BadRuleCondition{RuleID: ruleID}
	}
	signalID := ns.Intern(signalPath)

	switch op {
	case "<":
		return func(s *signal.Store) bool { return s.ReadValue(signalID) < rhs }, nil
	case "<=":
		return func(s *signal.Store) bool { return s.ReadValue(signalID) <= rhs }, nil
	case ">":
		return func(s *signal.Store) bool { return s.ReadValue(signalID) > rhs }, nil
	case ">=":
		return func(s *signal.Store) bool { return s.ReadValue(signalID) >= rhs }, nil
	case "==":
		return func(s *signal.Store) bool { return s.ReadValue(signalID) == rhs }, nil
	default: // "!="
		return func(s *signal.Store) bool { return s.ReadValue(signalID) != rhs }, nil
	}
}
