package canopy

import "github.com/charmbracelet/log"

// globalDebug enables tree diagnostics in container operations.
var globalDebug bool

// SetDebug enables or disables debug checks. When enabled, tree operations
// warn about deep trees and crowded containers, and the package logger is
// lowered to debug level so deserializer diagnostics are visible.
func SetDebug(enabled bool) {
	globalDebug = enabled
	if enabled {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}
}

// IsDebug reports whether debug checks are enabled.
func IsDebug() bool { return globalDebug }

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n Node) {
	depth := 0
	for p := n; p != nil; p = parentNode(p) {
		depth++
	}
	if depth > debugMaxTreeDepth {
		logger.Warn("tree depth exceeds threshold",
			"depth", depth, "threshold", debugMaxTreeDepth, "type", n.TypeName(), "id", n.Attributes().ID())
	}
}

// debugCheckChildCount warns if a container has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(c *ContainerBase) {
	if len(c.children) > debugMaxChildCount {
		logger.Warn("container child count exceeds threshold",
			"type", c.TypeName(), "id", c.attrs.ID(), "children", len(c.children), "threshold", debugMaxChildCount)
	}
}
