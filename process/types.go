package process

import (
	"fmt"
	"strings"
)

// ProcessID represents a unique identifier for a process
type ProcessID int

// ThreadID represents a unique identifier for a thread
type ThreadID uint32

// ProcessInfo contains the snapshot entry for a process
type ProcessInfo struct {
	PID     ProcessID // Process ID
	PPID    ProcessID // Parent Process ID
	Name    string    // Executable name
	Threads int       // Number of threads
}

// ThreadInfo contains the snapshot entry for a thread
type ThreadInfo struct {
	TID      ThreadID
	OwnerPID ProcessID
}

// ProcessTreeNode represents a node in a process tree
type ProcessTreeNode struct {
	Process  ProcessInfo
	Children []*ProcessTreeNode
}

// String renders the tree as name(pid) with children in brackets, e.g. "cmd.exe(4)[conhost.exe(8)]"
func (n *ProcessTreeNode) String() string {
	var sb strings.Builder
	n.write(&sb)
	return sb.String()
}

func (n *ProcessTreeNode) write(sb *strings.Builder) {
	fmt.Fprintf(sb, "%s(%d)", n.Process.Name, n.Process.PID)
	if len(n.Children) == 0 {
		return
	}
	sb.WriteByte('[')
	for i, child := range n.Children {
		if i > 0 {
			sb.WriteString(", ")
		}
		child.write(sb)
	}
	sb.WriteByte(']')
}
